package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-doctemplate/pkg/records"
)

// recordBundle is the file layout accepted by records import.
type recordBundle struct {
	Customers   []records.Customer   `yaml:"customers"`
	Contractors []records.Contractor `yaml:"contractors"`
	Contracts   []records.Contract   `yaml:"contracts"`
}

func readRecordBundle(path string) (recordBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return recordBundle{}, fmt.Errorf("failed to read records: %w", err)
	}
	var bundle recordBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return recordBundle{}, fmt.Errorf("failed to parse records %s: %w", path, err)
	}
	return bundle, nil
}

func (a *app) recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage customers, contractors and contracts",
	}
	cmd.AddCommand(a.recordsImportCmd(), a.recordsListCmd())
	return cmd
}

func (a *app) recordsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Store records from YAML or JSON bundles",
		Long: `Import reads files with top-level customers, contractors and contracts
lists and upserts every entry by id. Without --db the records only live for
the duration of the command.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			for _, path := range args {
				bundle, err := readRecordBundle(path)
				if err != nil {
					return err
				}
				if err := ws.storeBundle(ctx, bundle, time.Now().UTC()); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s: %d customers, %d contractors, %d contracts\n",
					path, len(bundle.Customers), len(bundle.Contractors), len(bundle.Contracts))
			}
			return nil
		},
	}
}

func (a *app) recordsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored contracts with their totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ws, err := a.openWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.close()

			contracts, err := ws.contracts.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list contracts: %w", err)
			}
			if len(contracts) == 0 {
				fmt.Fprintln(a.out, "No contracts found.")
				return nil
			}

			format := ws.engine.Registry().Formatter()
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tTEMPLATE\tTOTAL")
			for _, c := range contracts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Status, c.TemplateID, format.Currency(c.TotalCost()))
			}
			return w.Flush()
		},
	}
}

func (ws *workspace) storeBundle(ctx context.Context, bundle recordBundle, now time.Time) error {
	for _, c := range bundle.Customers {
		stampRecord(&c.CreatedAt, &c.UpdatedAt, now)
		if err := ws.customers.Put(ctx, c.ID, c); err != nil {
			return fmt.Errorf("failed to store customer %q: %w", c.ID, err)
		}
	}
	for _, c := range bundle.Contractors {
		stampRecord(&c.CreatedAt, &c.UpdatedAt, now)
		if err := ws.contractors.Put(ctx, c.ID, c); err != nil {
			return fmt.Errorf("failed to store contractor %q: %w", c.ID, err)
		}
	}
	for _, c := range bundle.Contracts {
		stampRecord(&c.CreatedAt, &c.UpdatedAt, now)
		if err := ws.contracts.Put(ctx, c.ID, c); err != nil {
			return fmt.Errorf("failed to store contract %q: %w", c.ID, err)
		}
	}
	return nil
}

func stampRecord(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
