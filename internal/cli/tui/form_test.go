package tui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/mocks"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/artifact"
)

func newTestModel(t *testing.T, backend *mocks.MockEncoderBackend) (formModel, string) {
	t.Helper()
	dir := t.TempDir()
	controller := form.NewController(backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := initialModel(context.Background(), controller, artifact.NewFileSink(dir), "http://127.0.0.1:8000")
	return m, dir
}

func newBackend() *mocks.MockEncoderBackend {
	return &mocks.MockEncoderBackend{
		ListLogsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"helpdesk", "sepsis"}, nil
		},
		GetLogPropertiesFunc: func(ctx context.Context, name string) (*entity.LogProperties, error) {
			return &entity.LogProperties{
				CaseName:            "CaseID",
				DateFormat:          "%Y/%m/%d %H:%M:%S.%f",
				MinSuffixSize:       5,
				TrainValidationSize: 0.15,
				TestValidationSize:  0.2,
				CategoricalColumns:  []string{"Activity", "Resource"},
				ContinuousColumns:   []string{"case_elapsed_time"},
			}, nil
		},
	}
}

// run executes cmd and feeds every resulting message back into the model.
// Spinner ticks are dropped so the loop ends.
func run(t *testing.T, m formModel, cmd tea.Cmd) formModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
		return m
	default:
		next, nextCmd := m.Update(msg)
		return run(t, next.(formModel), nextCmd)
	}
}

func press(t *testing.T, m formModel, key tea.KeyMsg) formModel {
	t.Helper()
	next, cmd := m.Update(key)
	return run(t, next.(formModel), cmd)
}

func typeText(t *testing.T, m formModel, text string) formModel {
	t.Helper()
	for _, r := range text {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func loadedModel(t *testing.T, backend *mocks.MockEncoderBackend) (formModel, string) {
	t.Helper()
	m, dir := newTestModel(t, backend)
	m = run(t, m, m.loadCatalog())
	require.Equal(t, []string{"helpdesk", "sepsis"}, m.state.Logs)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.state.Record)
	require.Equal(t, "helpdesk", m.state.Selected)
	return m, dir
}

func TestFormLoadsCatalogAndSelects(t *testing.T) {
	m, _ := loadedModel(t, newBackend())

	assert.False(t, m.loading)
	assert.Equal(t, "0.15", m.inputs[0].Value())
	assert.Equal(t, "Activity, Resource", m.inputs[3].Value())

	view := m.renderBody()
	assert.Contains(t, view, "Step 1: Select an event log")
	assert.Contains(t, view, "Step 2.1: Fixed properties")
	assert.Contains(t, view, "CaseID")
	assert.Contains(t, view, "Start data preparation")
}

func TestFormCursorSelectsSecondLog(t *testing.T) {
	m, _ := newTestModel(t, newBackend())
	m = run(t, m, m.loadCatalog())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "sepsis", m.state.Selected)
}

func TestFormInlineValidation(t *testing.T) {
	m, _ := loadedModel(t, newBackend())

	// focus the minimum suffix input and replace its value
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 3, m.focus)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(t, m, "42")

	assert.Equal(t, "42", m.state.Record.MinSuffix)
	assert.Equal(t, "Minimum suffix length must be between 1 and 10.", m.state.Validation.MinSuffix)
	assert.False(t, m.state.CanSubmit())
	assert.Contains(t, m.renderBody(), "Minimum suffix length must be between 1 and 10.")
}

func TestFormListInputIsNormalized(t *testing.T) {
	m, _ := loadedModel(t, newBackend())

	m.setFocus(4)
	m = typeText(t, m, ",Lifecycle")

	assert.Equal(t, "Activity, Resource, Lifecycle", m.inputs[3].Value())
	assert.Equal(t, "The following categorical values are not in the original list: Lifecycle", m.state.Validation.Categorical)
}

func TestFormListEditKeepsCursor(t *testing.T) {
	m, _ := loadedModel(t, newBackend())

	m.setFocus(4)
	m.inputs[3].CursorStart()
	m = typeText(t, m, "Lifecycle,")

	assert.Equal(t, "Lifecycle, Activity, Resource", m.inputs[3].Value())
	assert.Equal(t, len("Lifecycle, "), m.inputs[3].Position())

	m = typeText(t, m, "X")
	assert.Equal(t, "Lifecycle, XActivity, Resource", m.inputs[3].Value())
}

func TestFormShowsEveryFixedProperty(t *testing.T) {
	backend := newBackend()
	backend.GetLogPropertiesFunc = func(ctx context.Context, name string) (*entity.LogProperties, error) {
		return &entity.LogProperties{
			CaseName:                 "CaseID",
			ConceptName:              "Activity",
			TimestampName:            "CompleteTimestamp",
			DateFormat:               "%Y/%m/%d %H:%M:%S.%f",
			TimeSinceCaseStartColumn: "case_elapsed_time",
			TimeSinceLastEventColumn: "event_elapsed_time",
			DayInWeekColumn:          "day_in_week",
			SecondsInDayColumn:       "seconds_in_day",
			TrainValidationSize:      0.15,
			TestValidationSize:       0.2,
			MinSuffixSize:            5,
		}, nil
	}
	m, _ := loadedModel(t, backend)

	view := m.renderBody()
	for _, prop := range form.FixedProperties(m.state.Record.Properties) {
		assert.Contains(t, view, prop.Label)
		assert.Contains(t, view, prop.Value)
	}
	assert.Contains(t, view, "Time since case start column")
	assert.Contains(t, view, "Seconds in day column")
	assert.Contains(t, view, "day_in_week")
}

func TestFormSubmitSavesArchive(t *testing.T) {
	backend := newBackend()
	m, dir := loadedModel(t, backend)

	m.setFocus(focusSubmit)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, backend.EncodeRequests(), 1)
	assert.False(t, m.state.Busy)
	assert.Contains(t, m.message, filepath.Join(dir, "helpdesk_encoded.zip"))

	data, err := os.ReadFile(filepath.Join(dir, "helpdesk_encoded.zip"))
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)
}

func TestFormSubmitWithoutSelection(t *testing.T) {
	backend := newBackend()
	m, _ := newTestModel(t, backend)
	m = run(t, m, m.loadCatalog())

	m.setFocus(focusSubmit)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, backend.EncodeRequests())
	assert.True(t, m.isError)
	assert.Equal(t, "Please select an event log.", m.message)
}

func TestFormEscQuits(t *testing.T) {
	m, _ := newTestModel(t, newBackend())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.Len(t, batch, 1)
		msg = batch[0]()
	}
	assert.Equal(t, tea.QuitMsg{}, msg)
	assert.Error(t, m.ctx.Err())
}

func TestWrapLine(t *testing.T) {
	assert.Equal(t, "short", wrapLine("short", 20))
	assert.Equal(t, "abcdefghijkl\nmnop", wrapLine("abcdefghijklmnop", 12))
	assert.Equal(t, "事件日志事件\n日志", wrapLine("事件日志事件日志", 12))
}
