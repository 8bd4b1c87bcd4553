package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/chitfund/internal/storage/sqlite"
)

// StatusResult describes the stored snapshot.
type StatusResult struct {
	Database      string `json:"database"`
	Initialized   bool   `json:"initialized"`
	SchemaVersion int    `json:"schemaVersion,omitempty"`
	Members       int    `json:"members"`
	Records       int    `json:"records"`
	Loans         int    `json:"loans"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the database holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(rootOpts.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			info, ok, err := store.Info(cmd.Context())
			if err != nil {
				return err
			}
			result := StatusResult{Database: rootOpts.DBPath, Initialized: ok}
			if ok {
				result.SchemaVersion = info.SchemaVersion
				result.Members = info.Members
				result.Records = info.Records
				result.Loans = info.Loans
				result.UpdatedAt = info.UpdatedAt.Format("2006-01-02 15:04:05Z07:00")
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			if !ok {
				fmt.Fprintf(out, "%s: empty\n", result.Database)
				return nil
			}
			fmt.Fprintf(out, "%s: schema v%d, %d members, %d payments, %d loans, updated %s\n",
				result.Database, result.SchemaVersion, result.Members, result.Records, result.Loans, result.UpdatedAt)
			return nil
		},
	}
}
