package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/ui"
)

var listQuiet bool

// listCmd is the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list event logs known to the encoding backend",
	Long: `List the event logs the encoding backend can prepare.

The names shown here are the ones accepted by 'describe' and 'encode'.`,
	Example: `  # List event logs of the configured backend
  $ eloader list

  # List event logs of another backend
  $ eloader list -s http://encoder.lab.internal:8000

  # Encode every log with its defaults
  $ eloader list -q | xargs -n1 eloader encode --yes`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "Print only the log names, one per line")

	// Silence usage to avoid showing help on every error
	listCmd.SilenceUsage = true
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if !listQuiet {
		ui.PrintInfo("Fetching event logs from %s...", s.client.Server())
	}
	if err := s.controller.LoadCatalog(ctx); err != nil {
		ui.PrintError("failed to list event logs: %v", err)
		return fmt.Errorf("list operation failed")
	}

	logs := s.controller.State().Logs
	if listQuiet {
		for _, name := range logs {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	fmt.Println()
	fmt.Println(ui.RenderLogList(s.client.Server(), logs))
	return nil
}
