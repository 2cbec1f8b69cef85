package mocks

import (
	"context"
	"sync"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
)

// MockEncoderBackend is a mock implementation of domain.EncoderBackend.
// It records every encoding request it receives.
type MockEncoderBackend struct {
	ListLogsFunc         func(ctx context.Context) ([]string, error)
	GetLogPropertiesFunc func(ctx context.Context, name string) (*entity.LogProperties, error)
	EncodeEventLogFunc   func(ctx context.Context, req *entity.EncodeRequest) ([]byte, error)

	mu             sync.Mutex
	encodeRequests []entity.EncodeRequest
	propertyCalls  []string
}

// ListLogs mocks the ListLogs method
func (m *MockEncoderBackend) ListLogs(ctx context.Context) ([]string, error) {
	if m.ListLogsFunc != nil {
		return m.ListLogsFunc(ctx)
	}
	return []string{}, nil
}

// GetLogProperties mocks the GetLogProperties method
func (m *MockEncoderBackend) GetLogProperties(ctx context.Context, name string) (*entity.LogProperties, error) {
	m.mu.Lock()
	m.propertyCalls = append(m.propertyCalls, name)
	m.mu.Unlock()

	if m.GetLogPropertiesFunc != nil {
		return m.GetLogPropertiesFunc(ctx, name)
	}
	return &entity.LogProperties{}, nil
}

// EncodeEventLog mocks the EncodeEventLog method
func (m *MockEncoderBackend) EncodeEventLog(ctx context.Context, req *entity.EncodeRequest) ([]byte, error) {
	m.mu.Lock()
	m.encodeRequests = append(m.encodeRequests, *req)
	m.mu.Unlock()

	if m.EncodeEventLogFunc != nil {
		return m.EncodeEventLogFunc(ctx, req)
	}
	return []byte("PK"), nil
}

// EncodeRequests returns the encoding requests received so far
func (m *MockEncoderBackend) EncodeRequests() []entity.EncodeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.EncodeRequest, len(m.encodeRequests))
	copy(out, m.encodeRequests)
	return out
}

// PropertyCalls returns the log names properties were requested for
func (m *MockEncoderBackend) PropertyCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.propertyCalls))
	copy(out, m.propertyCalls)
	return out
}
