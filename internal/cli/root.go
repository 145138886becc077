// Package cli wires configuration, logging and the dataset into the
// salesdash commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"salesdash/internal/config"
	"salesdash/internal/log"
)

type rootOptions struct {
	dataFile string
	port     int
	logLevel string
}

// NewRootCommand builds the salesdash command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "salesdash",
		Short:         "Monthly sales dashboard",
		Long:          "Load a Month/Sales CSV and explore it as a web dashboard or a terminal report.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.dataFile, "data", "d", "", "Sales CSV file (overrides SALESDASH_DATA_FILE)")
	flags.IntVarP(&opts.port, "port", "p", 0, "HTTP port (overrides SALESDASH_PORT)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(newServeCommand(opts), newReportCommand(opts))
	return root
}

// Execute is the main entry point called from main.go.
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

// setup loads and validates the configuration, applies flag overrides and
// builds the process logger.
func (o *rootOptions) setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if o.dataFile != "" {
		cfg.DataFile = o.dataFile
	}
	if o.port != 0 {
		cfg.Port = o.port
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    os.Stderr,
	})
	log.SetDefault(logger)
	return cfg, logger, nil
}
