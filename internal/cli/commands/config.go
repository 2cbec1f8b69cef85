package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/config"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/ui"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/backend"
)

var (
	configDownloadDir string
	configNoCheck     bool
)

// configCmd is the config command
var configCmd = &cobra.Command{
	Use:   "config [server]",
	Short: "set the encoding backend address and download directory",
	Long: `Save the encoding backend address and the download directory locally.

Settings are stored in ~/.eloader/config.json and used by every other command.
The backend address can still be overridden per command with --server or the
ELOADER_SERVER environment variable.

Without arguments the current values are offered as defaults in a prompt.`,
	Example: `  # Prompt for settings
  $ eloader config

  # Use a remote backend and save archives to ~/datasets
  $ eloader config http://encoder.lab.internal:8000 --download-dir ~/datasets`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&configDownloadDir, "download-dir", "d", "", "Directory encoded archives are written to")
	configCmd.Flags().BoolVar(&configNoCheck, "no-check", false, "Save without contacting the backend")

	// Silence usage to avoid showing help on every error
	configCmd.SilenceUsage = true
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	// 1. Resolve settings from arguments or prompts
	interactive := len(args) == 0 && !cmd.Flags().Changed("download-dir")
	server := cfg.Server
	if len(args) > 0 {
		server = args[0]
	}
	if configDownloadDir != "" {
		cfg.DownloadDir = configDownloadDir
	}

	if interactive {
		if err := survey.AskOne(&survey.Input{
			Message: "Encoding backend:",
			Default: server,
		}, &server, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read server: %v", err)
			return fmt.Errorf("input failed")
		}
		if err := survey.AskOne(&survey.Input{
			Message: "Download directory:",
			Default: cfg.DownloadDir,
		}, &cfg.DownloadDir, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read download directory: %v", err)
			return fmt.Errorf("input failed")
		}
	}

	normalized, err := backend.NormalizeServerURL(server)
	if err != nil {
		ui.PrintError("invalid server address %q: %v", server, err)
		return fmt.Errorf("invalid server")
	}
	cfg.Server = normalized

	// 2. Check the backend answers before saving
	logCount := -1
	if !configNoCheck {
		apiClient, err := backend.NewAPIClient(cfg.Server, backend.Options{}, slog.Default())
		if err != nil {
			ui.PrintError("failed to create client: %v", err)
			return fmt.Errorf("client creation failed")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ui.PrintInfo("Connecting to %s...", cfg.Server)
		logs, err := apiClient.ListLogs(ctx)
		if err != nil {
			ui.PrintErrorBox("Backend Unreachable", fmt.Sprintf("%v\n\nUse --no-check to save anyway.", err))
			return fmt.Errorf("backend check failed")
		}
		logCount = len(logs)
	}

	// 3. Save config to local file
	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	configPath, _ := config.GetConfigPath()
	content := fmt.Sprintf(`Server:         %s
Download dir:   %s
Config saved:   %s`,
		cfg.Server,
		cfg.DownloadDir,
		configPath,
	)
	if logCount >= 0 {
		content += fmt.Sprintf("\nEvent logs:     %d", logCount)
	}

	ui.PrintSuccessBox("✓ Configuration Saved", content)

	fmt.Println()
	ui.PrintInfo("You can now use the following commands:")
	ui.PrintBold("  eloader list              # List event logs")
	ui.PrintBold("  eloader encode <log>      # Encode an event log")

	return nil
}
