package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"metascrape/cmd/metascrape/globals"
	"metascrape/internal/components/configutil"
	"metascrape/internal/components/telemetry"
	"metascrape/internal/scrapers/metacritic"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	dumpDir    *string
)

var otelProviders telemetry.Otel

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file to read, a missing file means defaults.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug information.")
	dumpDir = rootCmd.PersistentFlags().String("dump", "", "A directory to write every HTTP exchange to.")
}

var rootCmd = &cobra.Command{
	Use:   "metascrape",
	Short: "metascrape is a CLI for reading game pages off of metacritic.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		cfg, err := configutil.ReadConfigOr(*configPath, defaultConfig())
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		otelProviders, err = telemetry.SetupOtel(cmd.Context(), "metascrape", cfg.Otlp)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}

		var output telemetry.MessageOutput
		if *dumpDir != "" {
			fsOutput, err := telemetry.NewFilesystemOutput(*dumpDir)
			if err != nil {
				return fmt.Errorf("create dump directory: %w", err)
			}
			output = fsOutput
			slog.Info("dumping http exchanges", "dir", fsOutput.Directory())
		}

		client := metacritic.NewClient(cfg.clientOptions(output), telemetry.SlogAPI{})
		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Client: client,
		}))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := otelProviders.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
