package commands

import (
	"context"
	"errors"
	"fmt"
	"greatschools/cmd/greatschools/globals"
	"greatschools/lib/configutil"
	"greatschools/lib/greatschools"
	"greatschools/lib/telemetry"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const keyEnv = "GREATSCHOOLS_KEY"

var (
	configPath string
	hostname   string
	key        string
	timeout    int
	concurrent bool
	verbose    bool
)

var tel telemetry.Telemetry

var rootCmd = &cobra.Command{
	Use:           "greatschools",
	Short:         "greatschools is a CLI for querying the GreatSchools school information API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := telemetry.InitSlog(os.Stderr, verbose)

		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "greatschools-cli")
		if err != nil {
			slog.Warn("failed to setup telemetry", "err", err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Logger = logger

		client, err := greatschools.NewClient(cfg)
		if err != nil {
			return err
		}
		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{Client: client}))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "greatschools.json5", "Path to a json5 config file, <name>.local.json5 overrides it.")
	flags.StringVar(&hostname, "host", "", "Hostname of the api, [scheme://]host[:port].")
	flags.StringVar(&key, "key", "", fmt.Sprintf("API key, defaults to $%s.", keyEnv))
	flags.IntVar(&timeout, "timeout", 0, "Request timeout in seconds.")
	flags.BoolVar(&concurrent, "concurrent", false, "Use the pooled transport.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug traces of every request.")
}

// loadConfig merges, from lowest to highest priority: the config file,
// the environment and flags that were explicitly set.
func loadConfig(cmd *cobra.Command) (greatschools.Config, error) {
	cfg, err := configutil.ReadConfig[greatschools.Config](configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if cfg.Key == "" {
		cfg.Key = os.Getenv(keyEnv)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Hostname = hostname
	}
	if flags.Changed("key") {
		cfg.Key = key
	}
	if flags.Changed("timeout") {
		if timeout <= 0 {
			return cfg, fmt.Errorf("--timeout must be positive")
		}
		cfg.TimeoutSeconds = timeout
	}
	if flags.Changed("concurrent") {
		cfg.UseConcurrentTransport = concurrent
	}
	return cfg, nil
}

// shutdownTelemetry flushes the providers, cobra skips post-run hooks when a
// command fails so it runs after Execute instead.
var shutdownTelemetry = func() {
	err := tel.Shutdown(context.Background())
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
}

func execute(ctx context.Context) error {
	defer shutdownTelemetry()
	return rootCmd.ExecuteContext(ctx)
}

func ExecuteContext(ctx context.Context) {
	if err := execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
