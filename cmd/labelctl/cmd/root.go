// Package cmd implements the labelctl commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"labelprint/internal/config"
	"labelprint/internal/core/apperror"
	appctx "labelprint/internal/core/context"
	"labelprint/pkg/logger"
)

var (
	configFile string
	logLevel   string

	// v collects command-line flags bound to config keys.
	v = viper.New()
)

var rootCmd = &cobra.Command{
	Use:           "labelctl",
	Short:         "Label sequence generator and printer command encoder",
	Long:          `labelctl expands numbered base names into label codes, renders them as TSPL or ZPL and sends them to raw TCP printers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("db-url", "", "database connection URL (postgres://...)")
	_ = v.BindPFlag("database.dsn", rootCmd.PersistentFlags().Lookup("db-url"))
}

// Execute runs the root command, cancelling on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", describe(err))
	}
	return err
}

// loadConfig applies flags bound to v over file, environment and defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWith(v, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// commandContext attaches a console logger and a fresh trace to ctx.
func commandContext(ctx context.Context) (context.Context, error) {
	log, err := logger.New(logger.Config{
		Level:       logLevel,
		Development: true,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	ctx = logger.WithLogger(ctx, log.WithComponent("labelctl"))
	return appctx.WithTrace(ctx, appctx.NewTraceContext()), nil
}

// describe renders API errors with their details.
func describe(err error) string {
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		return err.Error()
	}
	msg := appErr.Message
	for _, k := range slices.Sorted(maps.Keys(appErr.Details)) {
		msg += fmt.Sprintf(" %s=%v", k, appErr.Details[k])
	}
	if appErr.Err != nil {
		msg += ": " + appErr.Err.Error()
	}
	return msg
}

// openOutput returns stdout for "" or "-", otherwise creates path.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// readInput reads stdin for "" or "-", otherwise path.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
