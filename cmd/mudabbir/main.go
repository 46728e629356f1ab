package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mudabbir/internal/agents"
	"mudabbir/internal/config"
	"mudabbir/internal/gateway"
	"mudabbir/internal/intent"
	"mudabbir/internal/logging"
	"mudabbir/internal/onboarding"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "mudabbir [message]",
		Short:        "Mudabbir - desktop assistant with a fast path and pluggable agent backends",
		Long:         "Mudabbir answers desktop commands in Arabic and English directly and hands everything else to an agent backend.\nWithout arguments it starts an interactive chat; with arguments it sends one message.",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "onboard" {
				return nil
			}
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gateway.Open(a.configPath, gateway.WithConfig(a.cfg))
			if err != nil {
				return err
			}
			defer g.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if len(args) > 0 {
				return g.Ask(ctx, strings.Join(args, " "), cmd.OutOrStdout())
			}
			return g.Chat(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath(), "path to the YAML configuration")
	root.PersistentPostRun = func(*cobra.Command, []string) { logging.Shutdown() }

	root.AddCommand(a.serveCmd(), resolveCmd(), backendsCmd(), a.onboardCmd())
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Init(logging.Config{
		Format:    cfg.Logging.Format,
		Level:     cfg.Logging.Level,
		Component: "mudabbir",
		FilePath:  config.ExpandHome(cfg.Logging.File),
	})
	return nil
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the agent loop with the Telegram and WebSocket channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := gateway.Open(a.configPath, gateway.WithConfig(a.cfg))
			if err != nil {
				return err
			}
			defer g.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log := logging.For("mudabbir")
			log.Info().Str("version", Version).Str("backend", a.cfg.Agent.Backend).Msg("starting")
			return g.Serve(ctx)
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <text>",
		Short: "Show how the fast path understands a message, without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(intent.Resolve(strings.Join(args, " ")))
		},
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func backendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the agent backends",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
				Headers("NAME", "DISPLAY NAME", "CAPABILITIES", "INSTALL").
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})
			for _, info := range agents.Infos() {
				name := info.Name
				if info.Beta {
					name += " (beta)"
				}
				t.Row(name, info.DisplayName, info.Capabilities.String(), info.InstallHint)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		},
	}
}

func (a *app) onboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Interactive setup of backend, provider, model and channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("onboard needs an interactive terminal")
			}
			base, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			cfg, err := onboarding.Run(base, a.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s (backend %s, model %s).\n", a.configPath, cfg.Agent.Backend, cfg.LLM.Model)
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
