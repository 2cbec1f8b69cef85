package domain

import (
	"context"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
)

// EncoderBackend is the external service that stores event logs and encodes them
type EncoderBackend interface {
	// ListLogs returns the identifiers of all ingested event logs
	ListLogs(ctx context.Context) ([]string, error)
	// GetLogProperties returns the default property record of one log
	GetLogProperties(ctx context.Context, name string) (*entity.LogProperties, error)
	// EncodeEventLog encodes a log and returns the zip archive as raw bytes
	EncodeEventLog(ctx context.Context, req *entity.EncodeRequest) ([]byte, error)
}
