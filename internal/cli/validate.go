package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"salesmart/internal/config"
	"salesmart/internal/logging"
	"salesmart/internal/storage"
)

func newValidateCmd(opts *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration without connecting to anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkConfig(opts.cfg, dryRun); err != nil {
				return err
			}
			cmd.Println("configuration is valid")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate for a run that persists nothing")
	return cmd
}

// checkConfig logs every issue and fails when any is an error. The storage
// kind must also be compiled into this binary.
func checkConfig(cfg *config.Config, dryRun bool) error {
	issues := config.Validate(cfg, dryRun)
	if !dryRun && cfg.Storage.Kind != "" && !slices.Contains(storage.ListKinds(), cfg.Storage.Kind) {
		issues = append(issues, config.Issue{
			Severity: config.SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("backend %q is not built in (available: %v)", cfg.Storage.Kind, storage.ListKinds()),
		})
	}
	for _, iss := range issues {
		ev := logging.Warn()
		if iss.Severity == config.SeverityError {
			ev = logging.Error()
		}
		ev.Str("path", iss.Path).Msg(iss.Message)
	}
	if config.HasErrors(issues) {
		return fmt.Errorf("configuration is invalid")
	}
	return nil
}
