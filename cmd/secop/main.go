package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/secop-lookup/internal/cmd"
	"github.com/gravitrone/secop-lookup/internal/logging"
	"github.com/gravitrone/secop-lookup/internal/ui"
)

func main() {
	root := cmd.RootCmd(runTUI)
	root.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		cfg, err := cmd.LoadConfig(c)
		if err != nil {
			return err
		}
		if err := logging.Init(cfg.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}
		return nil
	}

	err := root.Execute()
	logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(c *cobra.Command) error {
	cfg, err := cmd.LoadConfig(c)
	if err != nil {
		return err
	}

	store, err := cmd.OpenHistory(cfg)
	if err != nil {
		logging.Warn("history disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	app := ui.NewApp(cfg.Client(), cfg, store)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
