package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/prompt"
)

type renderFlags struct {
	values      string
	set         []string
	contract    string
	interactive bool
	sample      bool
	output      string
}

func (a *app) renderCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [template-id|file]",
		Short: "Fill a template and export the document",
		Long: `Render fills a template's placeholders and exports the result in the
configured format. Bindings are layered in this order, later sources
winning: sample data (--sample), the projected contract (--contract), the
values file (--values), --set pairs and finally interactive answers.

The template may be omitted when the contract names one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			var bindings model.RenderContext
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}

			if flags.contract != "" {
				projected, contract, err := ws.projectContract(ctx, flags.contract)
				if err != nil {
					return err
				}
				bindings = projected
				if ref == "" {
					ref = contract.TemplateID
				}
			}
			if ref == "" {
				return errors.New("a template id or file is required")
			}

			def, err := ws.resolveTemplate(ctx, ref)
			if err != nil {
				return err
			}

			if flags.sample {
				bindings = ws.engine.SynthesizeSample(def.Variables).Merge(bindings)
			}
			if flags.values != "" {
				values, err := readValues(flags.values)
				if err != nil {
					return err
				}
				bindings = bindings.Merge(values)
			}
			set, err := parseAssignments(flags.set)
			if err != nil {
				return err
			}
			bindings = bindings.Merge(set)

			if flags.interactive {
				driver := a.driver
				if driver == nil {
					driver = prompt.NewSurveyDriver()
				}
				collector := prompt.New(driver,
					prompt.WithValues(bindings),
					prompt.WithRegistry(ws.engine.Registry()),
				)
				bindings, err = collector.Collect(ctx, def)
				if err != nil {
					return fmt.Errorf("failed to collect values: %w", err)
				}
			}

			doc := ws.engine.Render(def, bindings)
			for _, name := range doc.Unresolved {
				a.logger.Warn().Str("placeholder", name).Msg("placeholder left unresolved")
			}

			out, err := ws.engine.Export(ctx, a.v.GetString(keyFormat), doc, def)
			if err != nil {
				return err
			}
			return a.emit(a.out, flags.output, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.values, "values", "", "YAML or JSON file of variable values")
	f.StringArrayVar(&flags.set, "set", nil, "bind a variable (name=value), repeatable")
	f.StringVar(&flags.contract, "contract", "", "project values from a stored contract")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for each variable")
	f.BoolVar(&flags.sample, "sample", false, "start from synthesized sample values")
	f.StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
