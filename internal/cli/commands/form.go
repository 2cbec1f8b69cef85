package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/tui"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/ui"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/config"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/artifact"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/pkg/logger"
)

// formLogFile receives debug logs while the form owns the terminal
const formLogFile = "eloader-form.log"

var formOutputDir string

// formCmd is the form command
var formCmd = &cobra.Command{
	Use:   "form",
	Short: "open the full-screen parameter form",
	Long: `Open the parameter form in the terminal.

Step 1 lists the event logs of the backend. Selecting one loads its fixed
properties (Step 2.1) and its editable parameters (Step 2.2). Every parameter
is checked as you type; "Start data preparation" stays disabled while any
check fails. The encoded archive is saved to the download directory.`,
	Example: `  # Open the form
  $ eloader form

  # Save archives to another directory
  $ eloader form -o ./datasets

  # Keyboard controls:
  • Tab / Shift+Tab or ↑↓ move between sections
  • Enter selects a log or starts the preparation
  • Esc quits`,
	RunE: runForm,
}

func init() {
	formCmd.Flags().StringVarP(&formOutputDir, "output", "o", "", "Directory to save archives to (default: configured download dir)")

	formCmd.SilenceUsage = true
}

func runForm(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Println("\nRun 'eloader form' to open the form.")
		return fmt.Errorf("invalid arguments")
	}

	// The form owns the terminal; logs go to a file with --verbose and nowhere otherwise
	if verboseFlag {
		if err := logger.Setup(config.LogConfig{Level: "debug", Format: "text", Output: "file", FilePath: formLogFile}); err != nil {
			ui.PrintError("failed to open log file: %v", err)
			return fmt.Errorf("logger setup failed")
		}
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	dir := s.cfg.DownloadDir
	if formOutputDir != "" {
		dir = formOutputDir
	}

	program := tui.NewFormProgram(s.controller, artifact.NewFileSink(dir), s.client.Server())
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run form TUI: %w", err)
	}

	return nil
}
