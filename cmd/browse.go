package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-browse/internal/tui/browser"
)

// NewBrowseCmd creates the `grove-browse browse` command.
func NewBrowseCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse PATH",
		Short: "Launch an interactive TUI for browsing a data store",
		Long: `Launch an interactive Terminal User Interface over a data store.
Directories open as project trees, SQLite files as databases, and structured
documents (YAML/JSON) as nested containers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			root, closer, err := openSource(args[0])
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer()
			}

			trail, err := newTrail(root, log)
			if err != nil {
				return err
			}

			model := browser.New(trail, log)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	return cmd
}
