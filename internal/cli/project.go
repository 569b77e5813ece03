package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) projectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project <contract-id>",
		Short: "Print the render context projected from a stored contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			projected, _, err := ws.projectContract(ctx, args[0])
			if err != nil {
				return err
			}
			return writeJSON(a.out, projected)
		},
	}
}
