package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/chitfund/internal/storage"
	"github.com/mmynk/chitfund/internal/storage/sqlite"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Load a JSON group snapshot into the database",
		Long: `Load a JSON group snapshot, such as a browser backup, into the database.

Older snapshots are migrated to the current schema before saving. The
database must be empty unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			data, err := storage.Decode(raw)
			if err != nil {
				return err
			}
			if _, err := storage.Migrate(data); err != nil {
				return err
			}

			store, err := sqlite.New(rootOpts.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			_, exists, err := store.Info(cmd.Context())
			if err != nil {
				return err
			}
			if exists && !force {
				return errors.New("database already holds a group; use --force to replace it")
			}
			if err := store.Save(cmd.Context(), data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %q: %d members, %d payments, %d loans\n",
				data.Settings.Name, len(data.Members), len(data.Records), len(data.LoansIssued))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing group")
	return cmd
}
