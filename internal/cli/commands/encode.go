package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/loader"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/ui"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/artifact"
)

var (
	encodeYes            bool
	encodeFile           string
	encodeOutputDir      string
	encodeValidationSize string
	encodeTestSize       string
	encodeMinSuffix      string
	encodeCategorical    string
	encodeContinuous     string
)

// encodeFlags maps each editable field to the flag that sets it
var encodeFlags = map[form.Field]struct {
	name  string
	value *string
}{
	form.FieldValidationSize: {"validation-size", &encodeValidationSize},
	form.FieldTestSize:       {"test-size", &encodeTestSize},
	form.FieldMinSuffix:      {"min-suffix", &encodeMinSuffix},
	form.FieldCategorical:    {"categorical", &encodeCategorical},
	form.FieldContinuous:     {"continuous", &encodeContinuous},
}

// encodeCmd is the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [log]",
	Short: "encode an event log and download the archive",
	Long: `Prepare an event log for suffix prediction.

The default parameters of the log are loaded from the encoding backend and can
be adjusted before submission:
  • validation and test set sizes (fractions between 0 and 1)
  • minimum suffix length (integer between 1 and 10)
  • categorical and continuous columns to encode (subsets of the defaults)

Parameters are validated locally; nothing is sent while any of them is invalid.
The encoded archive is saved as <log>_encoded.zip in the download directory.

You can encode in two ways:
  1. Interactive mode (prompts for the log and every parameter)
  2. Non-interactive mode with --yes, using a parameter file and/or flags`,
	Example: `  # Interactive encoding
  $ eloader encode

  # Accept the defaults of one log
  $ eloader encode helpdesk --yes

  # Override parameters from a file, then from flags
  $ eloader encode helpdesk --yes -f params.yaml --min-suffix 3

  # Restrict the encoded columns
  $ eloader encode helpdesk --yes --categorical "Activity, Resource" --continuous ""`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().BoolVarP(&encodeYes, "yes", "y", false, "Do not prompt; submit the defaults plus any file and flag overrides")
	encodeCmd.Flags().StringVarP(&encodeFile, "file", "f", "", "YAML file with parameter overrides")
	encodeCmd.Flags().StringVarP(&encodeOutputDir, "output", "o", "", "Directory to save the archive to (default: configured download dir)")
	encodeCmd.Flags().StringVar(&encodeValidationSize, "validation-size", "", "Validation set size (0 to 1)")
	encodeCmd.Flags().StringVar(&encodeTestSize, "test-size", "", "Test set size (0 to 1)")
	encodeCmd.Flags().StringVar(&encodeMinSuffix, "min-suffix", "", "Minimum suffix length (1 to 10)")
	encodeCmd.Flags().StringVar(&encodeCategorical, "categorical", "", "Categorical columns separated by commas or spaces")
	encodeCmd.Flags().StringVar(&encodeContinuous, "continuous", "", "Continuous columns separated by commas or spaces")

	// Silence usage to avoid showing help on every error
	encodeCmd.SilenceUsage = true
}

func runEncode(cmd *cobra.Command, args []string) error {
	// Encoding may take minutes; Ctrl+C cancels the request
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := openSession()
	if err != nil {
		return err
	}

	var params *loader.ParameterFile
	if encodeFile != "" {
		ui.PrintInfo("Loading parameters from file: %s", encodeFile)
		params, err = loader.LoadFromFile(encodeFile)
		if err != nil {
			ui.PrintError("failed to load file: %v", err)
			return fmt.Errorf("file load failed")
		}
	}

	if !encodeYes {
		ui.PrintFormBanner(s.client.Server())
	}

	// Step 1: pick the event log
	name, err := resolveEventLog(ctx, s, args, params)
	if err != nil {
		return err
	}

	// Step 2: load its properties
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = s.controller.Select(loadCtx, name)
	cancel()
	if err != nil {
		if domain.IsNotFound(err) {
			ui.PrintError("event log '%s' not found", name)
			fmt.Println("\nRun 'eloader list' to see available event logs.")
			return fmt.Errorf("event log not found")
		}
		ui.PrintError("failed to load properties of '%s': %v", name, err)
		return fmt.Errorf("property load failed")
	}
	ui.PrintSuccess("Loaded default parameters of '%s'", name)

	// Step 3: apply overrides, then prompt unless --yes
	if params != nil {
		if err := params.ApplyTo(s.controller); err != nil {
			ui.PrintError("failed to apply parameter file: %v", err)
			return fmt.Errorf("file apply failed")
		}
	}
	for _, field := range form.Fields {
		flag := encodeFlags[field]
		if !cmd.Flags().Changed(flag.name) {
			continue
		}
		if err := s.controller.SetField(field, *flag.value); err != nil {
			ui.PrintError("failed to set --%s: %v", flag.name, err)
			return fmt.Errorf("flag apply failed")
		}
	}

	if !encodeYes {
		if err := promptParameters(s.controller); err != nil {
			return err
		}
	}

	// Step 4: review
	state := s.controller.State()
	fmt.Println()
	fmt.Println(ui.RenderRecord(state))
	fmt.Println()

	if state.Validation.HasErrors() {
		ui.PrintErrorBox("Invalid Parameters", ui.ValidationSummary(state.Validation))
		return fmt.Errorf("invalid parameters")
	}

	if !encodeYes {
		confirm := false
		if err := survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("Start data preparation for '%s'?", name),
			Default: true,
		}, &confirm); err != nil {
			ui.PrintError("failed to read confirmation: %v", err)
			return fmt.Errorf("input failed")
		}
		if !confirm {
			ui.PrintWarning("Cancelled")
			return nil
		}
	}

	// Step 5: submit
	dir := s.cfg.DownloadDir
	if encodeOutputDir != "" {
		dir = encodeOutputDir
	}
	sink := artifact.NewFileSink(dir)

	ui.PrintInfo("Encoding '%s', this can take a while...", name)
	start := time.Now()
	if err := s.controller.Submit(ctx, sink); err != nil {
		ui.PrintErrorBox("Encoding Failed", submitMessage(err))
		return fmt.Errorf("encoding failed")
	}

	path, _ := filepath.Abs(sink.LastPath())
	content := fmt.Sprintf(`Event log:  %s
Archive:    %s
Took:       %s`,
		name,
		path,
		time.Since(start).Round(time.Millisecond),
	)
	ui.PrintSuccessBox("✓ Data Preparation Finished", content)

	return nil
}

// resolveEventLog returns the log named on the command line or in the
// parameter file, or asks for one
func resolveEventLog(ctx context.Context, s *session, args []string, params *loader.ParameterFile) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if params != nil && params.EventLog != "" {
		return params.EventLog, nil
	}
	if encodeYes {
		ui.PrintError("an event log name is required with --yes")
		fmt.Println("\nRun 'eloader list' to see available event logs.")
		return "", fmt.Errorf("missing event log")
	}

	listCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.controller.LoadCatalog(listCtx); err != nil {
		ui.PrintError("failed to list event logs: %v", err)
		return "", fmt.Errorf("list operation failed")
	}

	logs := s.controller.State().Logs
	if len(logs) == 0 {
		ui.PrintError("no event logs available on %s", s.client.Server())
		return "", fmt.Errorf("no event logs")
	}

	var name string
	if err := survey.AskOne(&survey.Select{
		Message: "Select an event log:",
		Options: logs,
	}, &name); err != nil {
		ui.PrintError("failed to read event log: %v", err)
		return "", fmt.Errorf("input failed")
	}
	return name, nil
}

// promptParameters asks for every editable field with the current text as default
func promptParameters(c *form.Controller) error {
	state := c.State()
	fmt.Println()
	fmt.Println(ui.RenderProperties(state.Selected, state.Record.Properties))
	fmt.Println()

	for _, field := range form.Fields {
		var value string
		prompt := &survey.Input{
			Message: field.Label() + ":",
			Default: state.Record.Text(field),
			Help:    field.Help(),
		}
		if err := survey.AskOne(prompt, &value, survey.WithValidator(fieldValidator(field, state.Baseline))); err != nil {
			ui.PrintError("failed to read %s: %v", field.Label(), err)
			return fmt.Errorf("input failed")
		}
		if err := c.SetField(field, value); err != nil {
			ui.PrintError("failed to set %s: %v", field.Label(), err)
			return fmt.Errorf("input failed")
		}
	}
	return nil
}

// fieldValidator adapts the form checks to survey
func fieldValidator(field form.Field, baseline form.Baseline) survey.Validator {
	return func(ans interface{}) error {
		raw, ok := ans.(string)
		if !ok {
			return fmt.Errorf("unexpected answer type %T", ans)
		}
		if msg := form.CheckField(field, raw, baseline); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

// submitMessage is the blocking message shown for a failed submission
func submitMessage(err error) string {
	switch {
	case domain.IsNotSelected(err), domain.IsInvalidParameters(err), domain.IsBusy(err):
		return domain.UserMessage(err)
	default:
		return fmt.Sprintf("Error during processing.\n\n%v", err)
	}
}
