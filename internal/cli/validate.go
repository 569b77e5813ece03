package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var errInvalidTemplate = errors.New("template is invalid")

func (a *app) validateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <template-id|file>",
		Short: "Check a template definition and list every issue",
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

			result := ws.engine.Validate(def)
			if asJSON {
				if err := writeJSON(a.out, result); err != nil {
					return err
				}
			} else if result.Valid {
				fmt.Fprintf(a.out, "%s: ok\n", def.ID)
			} else {
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "PATH\tCODE\tMESSAGE")
				for _, issue := range result.Issues {
					fmt.Fprintf(w, "%s\t%s\t%s\n", issue.Path, issue.Code, issue.Message)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if !result.Valid {
				return fmt.Errorf("%s: %w (%d issues)", def.ID, errInvalidTemplate, len(result.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
