package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
)

// FormSessionUsecase hands out one parameter form per browser session
type FormSessionUsecase interface {
	// Session returns the form of sessionID. Unknown or expired ids get a new
	// session with a new id; the catalog is loaded when the session has none.
	Session(ctx context.Context, sessionID string) *FormSession
	// Close drops a session
	Close(sessionID string)
	// Count returns the number of live sessions
	Count() int
}

// FormSession is the state of one browser session
type FormSession struct {
	ID         string
	Controller *form.Controller

	mu         sync.Mutex
	lastSeen   time.Time
	catalogErr error
	flash      Flash
	// highest edit sequence number applied per field
	edits map[form.Field]int64
}

// Flash is a message shown once on the next page render
type Flash struct {
	Message string
	IsError bool
}

// CatalogError returns the error of the last catalog load, if any
func (s *FormSession) CatalogError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogErr
}

// SetFlash stores a message for the next page render
func (s *FormSession) SetFlash(message string, isError bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = Flash{Message: message, IsError: isError}
}

// TakeFlash returns and clears the pending message
func (s *FormSession) TakeFlash() Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flash
	s.flash = Flash{}
	return f
}

// ApplyEdit sets field to value unless an edit with the same or a higher
// sequence number was already applied to it. Edits with seq 0 are always
// applied. It reports whether value was applied.
func (s *FormSession) ApplyEdit(field form.Field, seq int64, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq > 0 && seq <= s.edits[field] {
		return false, nil
	}
	if err := s.Controller.SetField(field, value); err != nil {
		return false, err
	}
	if seq > 0 {
		if s.edits == nil {
			s.edits = make(map[form.Field]int64, len(form.Fields))
		}
		s.edits[field] = seq
	}
	return true, nil
}

// ResetEdits forgets the applied sequence numbers. A freshly rendered page
// numbers its edits from the start again.
func (s *FormSession) ResetEdits() {
	s.mu.Lock()
	s.edits = nil
	s.mu.Unlock()
}

func (s *FormSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *FormSession) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// formSessionUsecase is the FormSessionUsecase implementation
type formSessionUsecase struct {
	backend domain.EncoderBackend
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*FormSession
}

// NewFormSessionUsecase creates a session store; idle sessions expire after ttl
func NewFormSessionUsecase(backend domain.EncoderBackend, ttl time.Duration, logger *slog.Logger) FormSessionUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &formSessionUsecase{
		backend:  backend,
		ttl:      ttl,
		logger:   logger.With("component", "form_session"),
		now:      time.Now,
		sessions: make(map[string]*FormSession),
	}
}

// Session returns an existing or a new session
func (u *formSessionUsecase) Session(ctx context.Context, sessionID string) *FormSession {
	now := u.now()

	u.mu.Lock()
	u.sweep(now)
	s, ok := u.sessions[sessionID]
	if !ok {
		s = &FormSession{
			ID:         uuid.New().String(),
			Controller: form.NewController(u.backend, u.logger),
		}
		u.sessions[s.ID] = s
		u.logger.Debug("form session opened", "session_id", s.ID, "sessions", len(u.sessions))
	}
	u.mu.Unlock()

	s.touch(now)

	if len(s.Controller.State().Logs) == 0 {
		err := s.Controller.LoadCatalog(ctx)
		s.mu.Lock()
		s.catalogErr = err
		s.mu.Unlock()
	}
	return s
}

// Close drops a session
func (u *formSessionUsecase) Close(sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.sessions, sessionID)
}

// Count returns the number of live sessions
func (u *formSessionUsecase) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.sessions)
}

// sweep removes expired sessions; callers hold u.mu
func (u *formSessionUsecase) sweep(now time.Time) {
	for id, s := range u.sessions {
		if s.expired(now, u.ttl) && !s.Controller.State().Busy {
			delete(u.sessions, id)
			u.logger.Debug("form session expired", "session_id", id)
		}
	}
}
