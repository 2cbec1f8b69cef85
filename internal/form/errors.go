package form

import "github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"

// ErrNoProperties is returned by edits made before any property record loaded
var ErrNoProperties = domain.NewInvalidInputError("no event log properties loaded yet")
