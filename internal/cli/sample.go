package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) sampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <template-id|file>",
		Short: "Print the synthesized sample values for a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			def, err := ws.resolveTemplate(ctx, args[0])
			if err != nil {
				return err
			}
			return writeJSON(a.out, ws.engine.SynthesizeSample(def.Variables))
		},
	}
}
