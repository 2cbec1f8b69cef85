// Package form holds the parameter form: the state of one editing session,
// the checks that gate submission and the dispatch of the encoding request.
package form

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
)

// ArtifactSink receives the encoded archive of a successful submission
type ArtifactSink interface {
	Save(ctx context.Context, name string, data []byte) error
}

// State is an immutable snapshot of a controller
type State struct {
	Logs       []string
	Selected   string
	Record     *Record
	Baseline   Baseline
	Validation Validation
	Busy       bool
}

// Loaded reports whether a property record is present
func (s State) Loaded() bool {
	return s.Record != nil
}

// CanSubmit mirrors the enabled state of the submit action
func (s State) CanSubmit() bool {
	return s.Selected != "" && s.Record != nil && !s.Busy && !s.Validation.HasErrors()
}

// Controller owns the state of one form. It is safe for concurrent use;
// backend calls never run while the lock is held.
type Controller struct {
	backend domain.EncoderBackend
	logger  *slog.Logger

	mu         sync.Mutex
	logs       []string
	selected   string
	record     *Record
	baseline   Baseline
	validation Validation
	loadToken  uint64
	busy       bool
}

// NewController creates a form controller
func NewController(backend domain.EncoderBackend, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		backend: backend,
		logger:  logger.With("component", "form"),
	}
}

// LoadCatalog fetches the selectable log identifiers. On failure the
// catalog is left empty and the error is logged and returned.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	logs, err := c.backend.ListLogs(ctx)
	if err != nil {
		c.mu.Lock()
		c.logs = nil
		c.mu.Unlock()
		c.logger.Error("failed to load event log catalog", "error", err)
		return err
	}

	c.mu.Lock()
	c.logs = cloneStrings(logs)
	c.mu.Unlock()

	c.logger.Debug("event log catalog loaded", "count", len(logs))
	return nil
}

// Select makes name the selected log and loads its properties. A response
// that arrives after a newer selection was made is discarded. On failure the
// previous record stays in place.
func (c *Controller) Select(ctx context.Context, name string) error {
	c.mu.Lock()
	c.selected = name
	c.loadToken++
	token := c.loadToken
	c.mu.Unlock()

	if name == "" {
		return nil
	}

	props, err := c.backend.GetLogProperties(ctx, name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.loadToken {
		c.logger.Debug("discarding stale property response", "event_log", name)
		return nil
	}

	if err != nil {
		c.logger.Error("failed to load event log properties", "event_log", name, "error", err)
		return err
	}
	if props == nil {
		err := domain.NewNotFoundError("event log properties", name)
		c.logger.Error("backend returned no properties", "event_log", name)
		return err
	}

	record := NewRecord(*props)
	c.record = &record
	c.baseline = newBaseline(*props)
	c.recompute()

	c.logger.Debug("event log properties loaded",
		"event_log", name,
		"categorical", len(props.CategoricalColumns),
		"continuous", len(props.ContinuousColumns),
	)
	return nil
}

// UpdateListField stores raw input for a column list field: the normalized
// text and the parsed column names are replaced together.
func (c *Controller) UpdateListField(field Field, raw string) error {
	if !field.IsList() {
		return domain.NewInvalidInputError(fmt.Sprintf("unknown list field %q", field))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.record == nil {
		return ErrNoProperties
	}

	next := c.record.clone()
	parsed := ParseListField(raw)
	switch field {
	case FieldCategorical:
		next.Categorical = parsed
	case FieldContinuous:
		next.Continuous = parsed
	}
	c.record = &next
	c.recompute()
	return nil
}

// SetField stores raw input for a numeric field. List fields are routed to
// UpdateListField.
func (c *Controller) SetField(field Field, raw string) error {
	if field.IsList() {
		return c.UpdateListField(field, raw)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.record == nil {
		return ErrNoProperties
	}

	next := c.record.clone()
	switch field {
	case FieldValidationSize:
		next.ValidationSize = raw
	case FieldTestSize:
		next.TestSize = raw
	case FieldMinSuffix:
		next.MinSuffix = raw
	default:
		return domain.NewInvalidInputError(fmt.Sprintf("unknown field %q", field))
	}
	c.record = &next
	c.recompute()
	return nil
}

// State returns a snapshot of the form
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Logs:       cloneStrings(c.logs),
		Selected:   c.selected,
		Baseline:   c.baseline.clone(),
		Validation: c.validation,
		Busy:       c.busy,
	}
	if c.record != nil {
		r := c.record.clone()
		s.Record = &r
	}
	return s
}

// Submit checks the preconditions, sends the encoding request and hands the
// returned archive to sink. A failed precondition never reaches the backend.
func (c *Controller) Submit(ctx context.Context, sink ArtifactSink) error {
	c.mu.Lock()
	if c.selected == "" {
		c.mu.Unlock()
		return domain.NewNotSelectedError()
	}
	if c.record == nil || c.validation.HasErrors() {
		c.mu.Unlock()
		return domain.NewInvalidParametersError()
	}
	if c.busy {
		c.mu.Unlock()
		return domain.NewBusyError()
	}

	props, err := c.record.Payload()
	if err != nil {
		c.mu.Unlock()
		return domain.NewInvalidParametersError()
	}
	req := &entity.EncodeRequest{
		EventLogName:       c.selected,
		EventLogProperties: props,
	}
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	logger := c.logger.With("event_log", req.EventLogName)
	logger.Info("submitting encoding request",
		"min_suffix_size", props.MinSuffixSize,
		"train_validation_size", props.TrainValidationSize,
		"test_validation_size", props.TestValidationSize,
	)

	data, err := c.backend.EncodeEventLog(ctx, req)
	if err != nil {
		logger.Error("encoding request failed", "error", err)
		return domain.NewEncodingFailedError(err)
	}

	name := entity.ArtifactName(req.EventLogName)
	if err := sink.Save(ctx, name, data); err != nil {
		logger.Error("failed to save encoded archive", "artifact", name, "error", err)
		return domain.NewEncodingFailedError(err)
	}

	logger.Info("encoded archive delivered", "artifact", name, "bytes", len(data))
	return nil
}

// recompute refreshes derived state; callers hold the lock
func (c *Controller) recompute() {
	if c.record == nil {
		c.validation = Validation{}
		return
	}
	c.validation = Validate(*c.record, c.baseline)
}
