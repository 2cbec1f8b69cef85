package form

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/mocks"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/artifact"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func helpdeskProps() *entity.LogProperties {
	return &entity.LogProperties{
		CaseName:            "CaseID",
		ConceptName:         "Activity",
		TimestampName:       "CompleteTimestamp",
		DateFormat:          "%Y/%m/%d %H:%M:%S.%f",
		WindowSize:          "auto",
		MinSuffixSize:       5,
		TrainValidationSize: 0.15,
		TestValidationSize:  0.2,
		CategoricalColumns:  []string{"Activity", "Resource"},
		ContinuousColumns:   []string{"case_elapsed_time", "event_elapsed_time"},
	}
}

func sepsisProps() *entity.LogProperties {
	return &entity.LogProperties{
		CaseName:            "case",
		MinSuffixSize:       3,
		TrainValidationSize: 0.1,
		TestValidationSize:  0.1,
		CategoricalColumns:  []string{"org:group"},
		ContinuousColumns:   []string{"Age"},
	}
}

func newBackend() *mocks.MockEncoderBackend {
	return &mocks.MockEncoderBackend{
		ListLogsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"helpdesk", "sepsis"}, nil
		},
		GetLogPropertiesFunc: func(ctx context.Context, name string) (*entity.LogProperties, error) {
			switch name {
			case "helpdesk":
				return helpdeskProps(), nil
			case "sepsis":
				return sepsisProps(), nil
			}
			return nil, domain.NewNotFoundError("event log", name)
		},
	}
}

func loadedController(t *testing.T, backend *mocks.MockEncoderBackend) *Controller {
	t.Helper()
	c := NewController(backend, testLogger())
	require.NoError(t, c.LoadCatalog(context.Background()))
	require.NoError(t, c.Select(context.Background(), "helpdesk"))
	return c
}

func TestLoadCatalog(t *testing.T) {
	c := NewController(newBackend(), testLogger())
	require.NoError(t, c.LoadCatalog(context.Background()))
	assert.Equal(t, []string{"helpdesk", "sepsis"}, c.State().Logs)
}

func TestLoadCatalogFailureLeavesEmptySet(t *testing.T) {
	backend := &mocks.MockEncoderBackend{
		ListLogsFunc: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}
	c := NewController(backend, testLogger())

	err := c.LoadCatalog(context.Background())
	assert.Error(t, err)
	assert.Empty(t, c.State().Logs)
}

func TestSelectInitializesRecord(t *testing.T) {
	c := loadedController(t, newBackend())
	s := c.State()

	require.True(t, s.Loaded())
	assert.Equal(t, "helpdesk", s.Selected)
	assert.Equal(t, "Activity, Resource", s.Record.Categorical.Text)
	assert.Equal(t, "case_elapsed_time, event_elapsed_time", s.Record.Continuous.Text)
	assert.Equal(t, "0.15", s.Record.ValidationSize)
	assert.Equal(t, "0.2", s.Record.TestSize)
	assert.Equal(t, "5", s.Record.MinSuffix)
	assert.Equal(t, []string{"Activity", "Resource"}, s.Baseline.Categorical)
	assert.False(t, s.Validation.HasErrors())
	assert.True(t, s.CanSubmit())
}

func TestSelectDifferentLogResetsBuffersAndBaseline(t *testing.T) {
	c := loadedController(t, newBackend())
	require.NoError(t, c.UpdateListField(FieldCategorical, "Activity,Resource,extra"))
	require.True(t, c.State().Validation.HasErrors())

	require.NoError(t, c.Select(context.Background(), "sepsis"))
	s := c.State()

	assert.Equal(t, "org:group", s.Record.Categorical.Text)
	assert.Equal(t, "Age", s.Record.Continuous.Text)
	assert.Equal(t, []string{"org:group"}, s.Baseline.Categorical)
	assert.Equal(t, []string{"Age"}, s.Baseline.Continuous)
	assert.False(t, s.Validation.HasErrors())
}

func TestSelectFailureKeepsPreviousRecord(t *testing.T) {
	c := loadedController(t, newBackend())

	err := c.Select(context.Background(), "missing")
	assert.True(t, domain.IsNotFound(err))

	s := c.State()
	assert.Equal(t, "missing", s.Selected)
	require.NotNil(t, s.Record)
	assert.Equal(t, "CaseID", s.Record.Properties.CaseName)
}

func TestSelectEmptyDoesNotFetch(t *testing.T) {
	backend := newBackend()
	c := NewController(backend, testLogger())

	require.NoError(t, c.Select(context.Background(), ""))
	assert.Empty(t, backend.PropertyCalls())
	assert.False(t, c.State().Loaded())
}

func TestSelectDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	backend := newBackend()
	backend.GetLogPropertiesFunc = func(ctx context.Context, name string) (*entity.LogProperties, error) {
		if name == "helpdesk" {
			close(started)
			<-release
			return helpdeskProps(), nil
		}
		return sepsisProps(), nil
	}
	c := NewController(backend, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Select(context.Background(), "helpdesk"))
	}()

	<-started
	require.NoError(t, c.Select(context.Background(), "sepsis"))
	close(release)
	wg.Wait()

	s := c.State()
	assert.Equal(t, "sepsis", s.Selected)
	assert.Equal(t, "case", s.Record.Properties.CaseName)
	assert.Equal(t, []string{"org:group"}, s.Baseline.Categorical)
}

func TestUpdateListField(t *testing.T) {
	c := loadedController(t, newBackend())

	require.NoError(t, c.UpdateListField(FieldCategorical, "Activity,Resource"))
	s := c.State()
	assert.Equal(t, "Activity, Resource", s.Record.Categorical.Text)
	assert.Equal(t, []string{"Activity", "Resource"}, s.Record.Categorical.Items)
	assert.Empty(t, s.Validation.Categorical)
}

func TestUpdateListFieldFlagsAddedValue(t *testing.T) {
	c := loadedController(t, newBackend())

	require.NoError(t, c.UpdateListField(FieldCategorical, "Activity, Resource, z"))
	s := c.State()
	assert.Contains(t, s.Validation.Categorical, "z")
	assert.False(t, s.CanSubmit())
	assert.Equal(t, []string{"Activity", "Resource"}, s.Baseline.Categorical, "baseline never changes on edits")

	require.NoError(t, c.UpdateListField(FieldCategorical, "Resource"))
	assert.Empty(t, c.State().Validation.Categorical, "removals are allowed")
}

func TestUpdateListFieldRejectsNumericField(t *testing.T) {
	c := loadedController(t, newBackend())
	err := c.UpdateListField(FieldMinSuffix, "3")
	assert.True(t, domain.IsInvalidInput(err))
}

func TestEditsBeforeLoad(t *testing.T) {
	c := NewController(newBackend(), testLogger())
	assert.ErrorIs(t, c.UpdateListField(FieldCategorical, "a"), ErrNoProperties)
	assert.ErrorIs(t, c.SetField(FieldMinSuffix, "3"), ErrNoProperties)
}

func TestSetField(t *testing.T) {
	c := loadedController(t, newBackend())

	require.NoError(t, c.SetField(FieldValidationSize, "1.5"))
	require.NoError(t, c.SetField(FieldMinSuffix, "abc"))
	s := c.State()
	assert.Equal(t, "1.5", s.Record.ValidationSize)
	assert.Equal(t, "Validation size must be between 0 and 1.", s.Validation.ValidationSize)
	assert.Equal(t, "Minimum suffix length must be an integer between 1 and 10.", s.Validation.MinSuffix)
	assert.Empty(t, s.Validation.TestSize)

	require.NoError(t, c.SetField(FieldContinuous, "case_elapsed_time"))
	assert.Equal(t, []string{"case_elapsed_time"}, c.State().Record.Continuous.Items)
}

func TestSubmitWithoutSelection(t *testing.T) {
	backend := newBackend()
	sink := artifact.NewMemorySink()
	c := NewController(backend, testLogger())

	err := c.Submit(context.Background(), sink)
	assert.True(t, domain.IsNotSelected(err))
	assert.Equal(t, "Please select an event log.", domain.UserMessage(err))
	assert.Empty(t, backend.EncodeRequests())
	assert.Empty(t, sink.Artifacts())
}

func TestSubmitWithFailingCheck(t *testing.T) {
	for _, field := range Fields {
		t.Run(string(field), func(t *testing.T) {
			backend := newBackend()
			sink := artifact.NewMemorySink()
			c := loadedController(t, backend)

			bad := "99"
			if field.IsList() {
				bad = "unknown_column"
			}
			require.NoError(t, c.SetField(field, bad))

			err := c.Submit(context.Background(), sink)
			assert.True(t, domain.IsInvalidParameters(err))
			assert.Equal(t, "Please fix the highlighted errors before submitting.", domain.UserMessage(err))
			assert.Empty(t, backend.EncodeRequests())
			assert.Empty(t, sink.Artifacts())
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	backend := newBackend()
	backend.EncodeEventLogFunc = func(ctx context.Context, req *entity.EncodeRequest) ([]byte, error) {
		return []byte("zip-bytes"), nil
	}
	sink := artifact.NewMemorySink()
	c := loadedController(t, backend)

	require.NoError(t, c.SetField(FieldValidationSize, "0.25"))
	require.NoError(t, c.SetField(FieldMinSuffix, "7"))
	require.NoError(t, c.UpdateListField(FieldCategorical, "Resource"))

	require.NoError(t, c.Submit(context.Background(), sink))

	reqs := backend.EncodeRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "helpdesk", reqs[0].EventLogName)
	props := reqs[0].EventLogProperties
	assert.Equal(t, 0.25, props.TrainValidationSize)
	assert.Equal(t, 0.2, props.TestValidationSize)
	assert.Equal(t, 7, props.MinSuffixSize)
	assert.Equal(t, []string{"Resource"}, props.CategoricalColumns)
	assert.Equal(t, []string{"case_elapsed_time", "event_elapsed_time"}, props.ContinuousColumns)
	assert.Equal(t, "CaseID", props.CaseName)
	assert.Equal(t, "auto", props.WindowSize)

	artifacts := sink.Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, "helpdesk_encoded.zip", artifacts[0].Name)
	assert.Equal(t, []byte("zip-bytes"), artifacts[0].Data)
	assert.False(t, c.State().Busy)
}

func TestSubmitBackendFailure(t *testing.T) {
	backend := newBackend()
	backend.EncodeEventLogFunc = func(ctx context.Context, req *entity.EncodeRequest) ([]byte, error) {
		return nil, errors.New("HTTP 500")
	}
	sink := artifact.NewMemorySink()
	c := loadedController(t, backend)

	err := c.Submit(context.Background(), sink)
	assert.True(t, domain.IsEncodingFailed(err))
	assert.Equal(t, "Error during processing.", domain.UserMessage(err))
	assert.Len(t, backend.EncodeRequests(), 1)
	assert.Empty(t, sink.Artifacts())
	assert.False(t, c.State().Busy, "busy state is cleared after a failure")
}

func TestSubmitWhileBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	backend := newBackend()
	backend.EncodeEventLogFunc = func(ctx context.Context, req *entity.EncodeRequest) ([]byte, error) {
		close(started)
		<-release
		return []byte("zip"), nil
	}
	sink := artifact.NewMemorySink()
	c := loadedController(t, backend)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), sink) }()

	<-started
	assert.True(t, c.State().Busy)
	assert.False(t, c.State().CanSubmit())
	assert.True(t, domain.IsBusy(c.Submit(context.Background(), sink)))

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, backend.EncodeRequests(), 1)
	assert.Len(t, sink.Artifacts(), 1)
}

type failingSink struct{}

func (failingSink) Save(ctx context.Context, name string, data []byte) error {
	return errors.New("disk full")
}

func TestSubmitSinkFailure(t *testing.T) {
	c := loadedController(t, newBackend())
	err := c.Submit(context.Background(), failingSink{})
	assert.True(t, domain.IsEncodingFailed(err))
	assert.False(t, c.State().Busy)
}

func TestStateIsSnapshot(t *testing.T) {
	c := loadedController(t, newBackend())
	s := c.State()
	s.Record.Categorical.Items[0] = "mutated"
	s.Baseline.Categorical[0] = "mutated"

	fresh := c.State()
	assert.Equal(t, "Activity", fresh.Record.Categorical.Items[0])
	assert.Equal(t, "Activity", fresh.Baseline.Categorical[0])
}
