package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/transport/app"
	"github.com/kilianp07/transport/config"
	"github.com/kilianp07/transport/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "transport",
	Short: "Transportation problem solver service",
	Long: "Solves balanced transportation problems with the Northwest Corner, " +
		"Minimum Cost and Vogel methods. Without a subcommand it serves the " +
		"HTTP and MQTT solve APIs.",
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads cfgPath. A missing default file falls back to defaults
// and environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := cfgPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Configure(cfg.Log.Options())
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
