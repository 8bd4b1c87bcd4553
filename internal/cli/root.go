// Package cli implements the chitfund command line tool, which works directly
// on the group database for reports, seeding and imports.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/chitfund/internal/book"
	"github.com/mmynk/chitfund/internal/config"
	"github.com/mmynk/chitfund/internal/storage"
	"github.com/mmynk/chitfund/internal/storage/sqlite"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath string
	Format string // "text" | "json"

	// Filled from configuration when not set by flags.
	GroupName string
	Locale    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the chitfund CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "chitfund",
		Short: "chitfund - savings group ledger",
		Long:  "Inspect, seed and report on a savings group ledger stored in SQLite.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.resolve()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the SQLite database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewStatementCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// resolve fills unset options from configuration.
func (o *RootOptions) resolve() error {
	if o.DBPath != "" && o.GroupName != "" && o.Locale != "" {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.DBPath == "" {
		o.DBPath = cfg.DBPath
	}
	if o.GroupName == "" {
		o.GroupName = cfg.GroupName
	}
	if o.Locale == "" {
		o.Locale = cfg.Locale
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openBook loads the group from the database. The returned close function
// flushes pending saves before closing the database.
func openBook(ctx context.Context, opts *RootOptions, bookOpts ...book.Option) (*book.Book, func(), error) {
	store, err := sqlite.New(opts.DBPath)
	if err != nil {
		return nil, nil, err
	}
	data, err := storage.Open(ctx, store, opts.GroupName)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	b := book.New(data, append([]book.Option{book.WithSaver(store)}, bookOpts...)...)
	return b, func() {
		b.Close()
		store.Close()
	}, nil
}
