package cmd

import (
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alanpramil7/ytetl/internal/logging"
	"github.com/alanpramil7/ytetl/internal/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively extract a keyword and browse the ranked videos",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	// Launch interactive TUI when no subcommand is given
	rootCmd.RunE = runBrowse
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// The alt screen owns stdout, so logs are kept to errors only.
	logger = logging.New(cmd.ErrOrStderr(), "error")

	extractor, err := newExtractor(cmd.Context())
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewApp(extractor, cfg.MaxPages), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
