// Command dbfixtures truncates and reloads test fixtures in Redis, MongoDB
// and Kafka from JSON fixture files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbukum/dbfixtures/fixture"
	"github.com/kbukum/dbfixtures/logger"
	"github.com/kbukum/dbfixtures/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   serviceName,
		Short: "Load test fixtures into Redis, MongoDB and Kafka",
		Long: `dbfixtures truncates the targets named in a fixture file and inserts the
file's fixtures, for every backend section of the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newLoadCmd(), newVersionCmd())
	return root
}

func newLoadCmd() *cobra.Command {
	var (
		configFile string
		fixtures   []string
		targets    []string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Truncate targets and insert fixtures",
		Example: `  dbfixtures load --config config.yml --fixtures testdata/fixtures
  dbfixtures load -f 'fixtures/*.json' --target users --target events
  dbfixtures load -f testdata/base -f testdata/overrides.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
				if err := cfg.Logging.Validate(); err != nil {
					return err
				}
			}
			opts, err := resolveOptions(cfg, configFile, fixtures, targets)
			if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			if cfg.Logging.Output == "stdout" {
				out = cmd.OutOrStdout()
			}
			log := logger.NewWithWriter(&cfg.Logging, cfg.Name, out)
			return runLoad(cmd.Context(), cfg, opts, log)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "configuration file path")
	cmd.Flags().StringArrayVarP(&fixtures, "fixtures", "f", nil, "fixture file, directory or glob, repeatable and merged in order (overrides the config)")
	cmd.Flags().StringSliceVarP(&targets, "target", "t", nil, "only load these targets (repeatable)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return cmd
}

func runLoad(ctx context.Context, cfg *Config, opts LoadOptions, log *logger.Logger) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	loader, err := fixture.NewLoader(reg, fixture.WithCache())
	if err != nil {
		return err
	}
	root, err := loader.LoadAll(opts.Fixtures...)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}

	log.Info("Loading fixtures", logger.Fields(
		"paths", opts.Fixtures,
		"version", version.Get().Version,
	))
	return loadAll(ctx, root, backends(cfg, log), opts.Targets, log)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, version.Get())
		},
	}
}
