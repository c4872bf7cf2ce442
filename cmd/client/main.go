package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yourusername/askbox/internal/client/connection"
	"github.com/yourusername/askbox/internal/client/ui"
	"github.com/yourusername/askbox/internal/client/widget"
	"github.com/yourusername/askbox/internal/config"
	"github.com/yourusername/askbox/internal/logging"
)

type flags struct {
	configPath string
	serverURL  string
	logFile    string
	logLevel   string
	open       bool
	mouse      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "askbox",
		Short:         "Terminal chat widget for an /ask answer service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return printErr(cmd, err)
			}
			return printErr(cmd, runWidget(cmd.Context(), cfg))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&f.serverURL, "server", "", "answer service base URL")
	pf.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.Flags().BoolVar(&f.open, "open", false, "start with the chat panel open")
	root.Flags().BoolVar(&f.mouse, "mouse", true, "scroll with the mouse wheel (use --mouse=false to keep normal text selection)")

	root.AddCommand(newAskCmd(&f))
	return root
}

// newAskCmd sends one question without starting the UI
func newAskCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				return printErr(cmd, err)
			}

			log, closer, err := logging.New(cfg.Log)
			if err != nil {
				return printErr(cmd, err)
			}
			defer closer.Close()

			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return printErr(cmd, fmt.Errorf("question is empty"))
			}

			mgr := connection.NewManager(cfg.Server.URL, log)
			switch r := mgr.Ask(cmd.Context(), query).(type) {
			case connection.Success:
				fmt.Fprintln(cmd.OutOrStdout(), r.Answer)
				return nil
			case connection.Failure:
				fmt.Fprintln(cmd.ErrOrStderr(), widget.ErrorText)
				return r.Err
			}
			return nil
		},
	}
}

// loadConfig merges file and environment settings with flags that were set
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("server") {
		cfg.Server.URL = f.serverURL
	}
	if changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("open") {
		cfg.Widget.StartOpen = f.open
	}
	if changed("mouse") {
		cfg.Widget.Mouse = f.mouse
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runWidget runs the interactive chat widget until the user quits
func runWidget(ctx context.Context, cfg *config.Config) error {
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Outstanding answers are abandoned when the program exits
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mgr := connection.NewManager(cfg.Server.URL, log.With().Str("component", "connection").Logger())

	model := ui.NewModel(ctx, mgr, ui.Options{
		Title:          cfg.Widget.Title,
		ServerURL:      cfg.Server.URL,
		MaxInputHeight: cfg.Widget.MaxInputHeight,
		Mouse:          cfg.Widget.Mouse,
		Widget: widget.Options{
			TypingDelay: cfg.Widget.TypingDelay,
			NarrowWidth: cfg.Widget.NarrowWidth,
			StartOpen:   cfg.Widget.StartOpen,
			Log:         log.With().Str("component", "widget").Logger(),
		},
	})

	log.Info().Str("server", cfg.Server.URL).Msg("starting chat widget")

	p := tea.NewProgram(model, programOptions(ctx, cfg)...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	logStats(log, mgr.GetStats())
	return nil
}

// programOptions picks the terminal modes for cfg
func programOptions(ctx context.Context, cfg *config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Widget.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

func logStats(log zerolog.Logger, s connection.Stats) {
	log.Info().
		Int("succeeded", s.Succeeded).
		Int("failed", s.Failed).
		Int("abandoned", s.InFlight).
		Msg("chat widget closed")
}

func printErr(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
