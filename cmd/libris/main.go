// Command libris runs the library backend and its maintenance tasks.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/libris-backend/internal/app"
	"github.com/heartmarshall/libris-backend/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// skipConfig marks commands that run without a loaded configuration.
const skipConfig = "skip-config"

// cli carries state shared by every subcommand.
type cli struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "libris",
		Short:         "Library lending backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfig] != "" {
				return nil
			}
			return c.load()
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")

	serve := newServeCmd(c)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(
		serve,
		newMigrateCmd(c),
		newSweepCmd(c),
		newTokenCmd(c),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) load() error {
	path := c.configPath
	if path == "" {
		path = os.Getenv(config.PathEnv)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = app.NewLogger(cfg.Log, os.Stderr)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the build version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:         "env",
		Short:       "List environment variables and their defaults",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			config.WriteUsage(cmd.OutOrStdout())
		},
	})
	return cmd
}
