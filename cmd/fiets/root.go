package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glabrego/fiets-cli/internal/poll"
	"github.com/glabrego/fiets-cli/internal/tui"
)

const startupTimeout = 15 * time.Second

func newRootCmd(open opener) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "fiets",
		Short: "Terminal client for a Fiets feed server",
		Long: `Terminal client for a Fiets feed server.

Without a subcommand, opens the unread list. Configuration is read from
$XDG_CONFIG_HOME/fiets/config.toml and FIETS_* environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), open, configPath)
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fiets/config.toml)")

	root.AddCommand(
		newCountsCmd(open, &configPath),
		newMarkReadCmd(open, &configPath),
		newHistoryCmd(open, &configPath),
	)
	return root
}

func runTUI(ctx context.Context, open opener, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := open(ctx, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	loadCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	startup, err := rt.service.Load(loadCtx)
	if err != nil {
		cancel()
		return err
	}
	prefs, err := rt.service.LoadUIPreferences(loadCtx)
	cancel()
	if err != nil {
		rt.logger.Warn("could not load ui preferences", "err", err)
	}

	model, err := tui.NewModel(rt.service, startup, tui.Options{
		RequestTimeout: rt.cfg.RequestTimeout,
		Compact:        prefs.Compact,
		Logger:         rt.logger,
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	poller, err := poll.New(rt.service, tui.PollSink(program), rt.cfg.PollInterval, rt.cfg.RequestTimeout, rt.logger)
	if err != nil {
		return fmt.Errorf("start poller: %w", err)
	}
	poller.Start()

	_, runErr := program.Run()
	<-poller.Stop().Done()
	if runErr != nil {
		return fmt.Errorf("run tui: %w", runErr)
	}
	return nil
}
