// Package cli provides the command-line interface for studiodash.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"studiodash/internal/config"
	"studiodash/internal/i18n"
	"studiodash/internal/logging"
	"studiodash/internal/trace"
	"studiodash/internal/workspace"
	"studiodash/internal/wsapi"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// env is what PersistentPreRunE resolves for every command.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	sink   *logging.Sink
	tr     *i18n.Catalog
	traces *trace.Provider
}

type envKey struct{}

// getEnv returns the resolved environment stored on cmd's context.
func getEnv(cmd *cobra.Command) (*env, error) {
	e, ok := cmd.Context().Value(envKey{}).(*env)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}
	return e, nil
}

// client builds the workspace API client from the resolved configuration.
func (e *env) client() (*wsapi.Client, error) {
	return wsapi.NewClient(wsapi.ClientConfig{
		BaseURL:   e.cfg.APIBase,
		Timeout:   e.cfg.RequestTimeout,
		GlobalKey: e.cfg.GlobalKey,
		Logger:    e.log,
	})
}

// navigator resolves workspace URLs. Outside embedded mode the API origin
// plays the part of the page origin.
func (e *env) navigator() workspace.Navigator {
	return workspace.Navigator{
		StudioOrigin:  e.cfg.StudioOrigin,
		CurrentOrigin: workspace.OriginOf(e.cfg.APIBase),
		Embedded:      e.cfg.Embedded,
	}
}

func (e *env) close(ctx context.Context) {
	if err := e.traces.Shutdown(ctx); err != nil {
		e.log.Warn("trace shutdown failed", "err", err)
	}
	_ = e.sink.Close()
}

// skipsSetup reports commands that run without configuration.
func skipsSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "__complete", "version":
		return true
	}
	return false
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "studiodash",
		Short: "Terminal dashboard for cloud workspaces",
		Long: `studiodash lists your cloud development workspaces and lets you open,
stop, delete and restore them. The studio view browses a local checkout
with a file tree, editor panes, search, git history and a terminal.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsSetup(cmd) {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			sink := &logging.Sink{}
			if err := sink.SetFile(cfg.DebugLog); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: debug log disabled: %v\n", err)
			}
			log := logging.New(sink)
			if cfg.FileUsed != "" {
				log.Debug("config loaded", "file", cfg.FileUsed)
			}

			ctx := logging.WithLogger(cmd.Context(), log)
			traces, err := trace.Setup(ctx, cfg.OTLPEndpoint, "studiodash")
			if err != nil {
				log.Warn("tracing disabled", "err", err)
				traces = nil
			}

			tr, err := i18n.New(cfg.Locale)
			if err != nil {
				log.Warn("falling back to default locale", "locale", cfg.Locale, "err", err)
				tr = i18n.Default()
			}

			e := &env{cfg: cfg, log: log, sink: sink, tr: tr, traces: traces}
			cmd.SetContext(context.WithValue(ctx, envKey{}, e))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if e, err := getEnv(cmd); err == nil {
				e.close(context.WithoutCancel(cmd.Context()))
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return runTUI(cmd, dashboardMode, dir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./studiodash.yaml)")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newStudioCommand(),
		newWSCommand(),
		newMockAPICommand(),
		newConfigCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
