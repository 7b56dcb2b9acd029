// Package cli implements the command-line interface for salesmart.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"salesmart/internal/config"
	"salesmart/internal/logging"
	"salesmart/internal/mart"
	"salesmart/pkg/version"
)

// options carries global flags and the loaded config between commands.
type options struct {
	cfgFile  string
	logLevel string
	logJSON  bool
	cfg      *config.Config
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "salesmart",
		Short: "Build the WideWorldImporters sales star schema",
		Long: `salesmart extracts invoice lines, customers, salespeople, stock items and
suppliers from a WideWorldImporters database, builds a calendar, four
dimensions and an aggregated sales fact, and replaces those tables in an
analytical store (Postgres, SQL Server or SQLite).

Every run rebuilds every table.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "",
		"config file (default: ./salesmart.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false,
		"emit JSON log lines instead of console output")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newTablesCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Info())
		},
	})
	return root
}

func (o *options) initConfig(logOut io.Writer) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	o.cfg = cfg

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: !o.logJSON,
		Output: logOut,
	})
	return nil
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables a run produces",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range mart.Catalogue() {
				cols := make([]string, len(t.Columns))
				for i, c := range t.Columns {
					cols[i] = fmt.Sprintf("%s %s", c.Name, c.Type)
					if c.PrimaryKey {
						cols[i] += " pk"
					}
				}
				cmd.Printf("%-13s %s\n", t.Name, strings.Join(cols, ", "))
			}
		},
	}
}
