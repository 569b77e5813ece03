package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-doctemplate/pkg/model"
)

func (a *app) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Manage the template catalog",
	}
	cmd.AddCommand(
		a.templatesListCmd(),
		a.templatesShowCmd(),
		a.templatesImportCmd(),
		a.templatesStatsCmd(),
		a.templatesActivateCmd(true),
		a.templatesActivateCmd(false),
		a.templatesDeleteCmd(),
	)
	return cmd
}

func (a *app) templatesListCmd() *cobra.Command {
	var (
		category   string
		search     string
		activeOnly bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			var defs []model.TemplateDefinition
			switch {
			case category != "":
				defs, err = ws.catalog.ByCategory(ctx, model.Category(category))
			case search != "":
				defs, err = ws.catalog.Search(ctx, search)
			case activeOnly:
				defs, err = ws.catalog.Active(ctx)
			default:
				defs, err = ws.catalog.List(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list templates: %w", err)
			}

			if asJSON {
				return writeJSON(a.out, defs)
			}
			if len(defs) == 0 {
				fmt.Fprintln(a.out, "No templates found.")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tVARIABLES\tACTIVE")
			for _, def := range defs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\n", def.ID, def.Name, def.Category.Label(), len(def.Variables), def.IsActive)
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&category, "category", "", "only active templates of this category")
	f.StringVar(&search, "search", "", "match name, description or category")
	f.BoolVar(&activeOnly, "active", false, "only active templates")
	f.BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func (a *app) templatesShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <template-id>",
		Short: "Print a template definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			def, err := ws.catalog.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.out, def)
			}
			return writeYAML(a.out, def)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON instead of YAML")
	return cmd
}

func (a *app) templatesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|dir>...",
		Short: "Validate and store template definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			for _, path := range args {
				saved, err := ws.importTemplates(ctx, path)
				for _, def := range saved {
					fmt.Fprintf(a.out, "imported %s (%s)\n", def.ID, def.Name)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) templatesStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			stats, err := ws.catalog.Stats(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total:\t%d\n", stats.Total)
			fmt.Fprintf(w, "Active:\t%d\n", stats.Active)
			fmt.Fprintf(w, "Inactive:\t%d\n", stats.Inactive)
			for _, top := range stats.TopCategories {
				fmt.Fprintf(w, "  %s\t%d\n", top.Category.Label(), top.Count)
			}
			return w.Flush()
		},
	}
}

func (a *app) templatesActivateCmd(active bool) *cobra.Command {
	use, short, done := "activate", "Offer templates for new documents", "activated"
	if !active {
		use, short, done = "deactivate", "Hide templates from new documents", "deactivated"
	}
	return &cobra.Command{
		Use:   use + " <template-id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			for _, id := range args {
				def, err := ws.catalog.SetActive(ctx, id, active)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s %s\n", def.ID, done)
			}
			return nil
		},
	}
}

func (a *app) templatesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <template-id>...",
		Short: "Remove templates from the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			for _, id := range args {
				if err := ws.catalog.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s deleted\n", id)
			}
			return nil
		},
	}
}
