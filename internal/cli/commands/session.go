package commands

import (
	"fmt"
	"log/slog"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/config"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/cli/ui"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/backend"
)

// session bundles what every backend-facing command needs
type session struct {
	cfg        *config.Config
	client     *backend.APIClient
	controller *form.Controller
}

// openSession loads the config, applies --server and connects a form
// controller to the backend. Failures are printed before returning.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return nil, fmt.Errorf("config load failed")
	}

	if serverFlag != "" {
		cfg.Server = serverFlag
	}

	apiClient, err := backend.NewAPIClient(cfg.Server, backend.Options{}, slog.Default())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return nil, fmt.Errorf("client creation failed")
	}

	return &session{
		cfg:        cfg,
		client:     apiClient,
		controller: form.NewController(apiClient, slog.Default()),
	}, nil
}
