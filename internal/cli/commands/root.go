package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/ui"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/config"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/pkg/logger"
)

const version = "0.1.0"

var (
	serverFlag  string
	verboseFlag bool
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "eloader",
	Short:   "Event log preparation CLI",
	Version: version,
	Long: `A command-line tool for preparing event logs for suffix prediction.

Pick an event log known to the encoding backend, review and adjust its
encoding parameters, and download the encoded archive. Parameters are checked
locally before anything is sent.`,
	Example: `  # Point the CLI at an encoding backend
  $ eloader config http://127.0.0.1:8000

  # List available event logs
  $ eloader list

  # Show the default parameters of one log
  $ eloader describe helpdesk

  # Encode interactively
  $ eloader encode

  # Open the full-screen form
  $ eloader form`,
	PersistentPreRunE: setupLogging,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Encoding backend address (overrides config and $ELOADER_SERVER)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Write debug logs to stderr")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(formCmd)

	// Set custom template with bold uppercase headers
	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

// setupLogging keeps the terminal quiet unless --verbose is given
func setupLogging(cmd *cobra.Command, args []string) error {
	level := "warn"
	if verboseFlag {
		level = "debug"
	}
	return logger.Setup(config.LogConfig{
		Level:  level,
		Format: "text",
		Output: "stderr",
	})
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}` + ui.Styles.Bold.Render("GLOBAL OPTIONS") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// formatVersion formats the version output
func formatVersion() string {
	return fmt.Sprintf("eloader version %s\n", version)
}
