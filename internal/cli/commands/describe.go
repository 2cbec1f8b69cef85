package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/ui"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
)

// describeCmd is the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <log>",
	Short: "show the default properties of an event log",
	Long: `Show the property record the encoding backend holds for an event log.

Fixed properties (case, activity and timestamp columns, date format) cannot be
changed. Editable properties are the defaults offered by 'encode'.`,
	Example: `  $ eloader describe helpdesk`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDescribe,
}

func init() {
	// Silence usage to avoid showing help on every error
	describeCmd.SilenceUsage = true
}

func runDescribe(cmd *cobra.Command, args []string) error {
	name := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := openSession()
	if err != nil {
		return err
	}

	if err := s.controller.Select(ctx, name); err != nil {
		if domain.IsNotFound(err) {
			ui.PrintError("event log '%s' not found", name)
			fmt.Println("\nRun 'eloader list' to see available event logs.")
			return fmt.Errorf("event log not found")
		}
		ui.PrintError("failed to load properties of '%s': %v", name, err)
		return fmt.Errorf("describe operation failed")
	}

	state := s.controller.State()
	fmt.Println()
	fmt.Println(ui.RenderProperties(name, state.Record.Properties))

	return nil
}
