package handler

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain/entity"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/handler/dto"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/artifact"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/usecase"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/pkg/logger"
)

const pageTemplate = "index.html.tmpl"

// FormHandler serves the parameter form page and its JSON API
type FormHandler struct {
	usecase       usecase.FormSessionUsecase
	tmpl          *template.Template
	cookieName    string
	sessionTTL    time.Duration
	encodeTimeout time.Duration
	server        string
	logger        *slog.Logger
}

// FormHandlerOptions configures a FormHandler
type FormHandlerOptions struct {
	CookieName    string
	SessionTTL    time.Duration
	EncodeTimeout time.Duration
	// Server is the backend address shown on the page
	Server string
}

// NewFormHandler creates a new form handler
func NewFormHandler(uc usecase.FormSessionUsecase, tmpl *template.Template, opts FormHandlerOptions, log *slog.Logger) *FormHandler {
	if log == nil {
		log = slog.Default()
	}
	if opts.CookieName == "" {
		opts.CookieName = "eloader_session"
	}
	return &FormHandler{
		usecase:       uc,
		tmpl:          tmpl,
		cookieName:    opts.CookieName,
		sessionTTL:    opts.SessionTTL,
		encodeTimeout: opts.EncodeTimeout,
		server:        opts.Server,
		logger:        log,
	}
}

// pageView is the data of the page template
type pageView struct {
	Server       string
	Flash        usecase.Flash
	CatalogError string
	Logs         []string
	Selected     string
	Loaded       bool
	Fixed        []fixedView
	Fields       []fieldView
	CanSubmit    bool
}

type fixedView struct {
	Label string
	Value string
}

type fieldView struct {
	Name   string
	Label  string
	Value  string
	Help   string
	Error  string
	IsList bool
}

// Page renders the form
func (h *FormHandler) Page(ctx context.Context, c *app.RequestContext) {
	s := h.session(ctx, c)
	h.render(ctx, c, consts.StatusOK, s, s.TakeFlash())
}

// Select makes the posted event log the selected one and redirects to the page
func (h *FormHandler) Select(ctx context.Context, c *app.RequestContext) {
	s := h.session(ctx, c)
	name := strings.TrimSpace(c.PostForm("event_log"))

	if err := s.Controller.Select(ctx, name); err != nil {
		logger.FromContext(ctx).Error("failed to select event log", "event_log", name, "error", err)
		if domain.IsNotFound(err) {
			s.SetFlash(fmt.Sprintf("Event log %q was not found.", name), true)
		} else {
			s.SetFlash("Failed to load the event log properties.", true)
		}
	}
	c.Redirect(consts.StatusSeeOther, []byte("/"))
}

// Reset drops the session of the request so the next page load starts over
func (h *FormHandler) Reset(ctx context.Context, c *app.RequestContext) {
	if id := string(c.Cookie(h.cookieName)); id != "" {
		h.usecase.Close(id)
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", protocol.CookieSameSiteLaxMode, false, true)
	c.Redirect(consts.StatusSeeOther, []byte("/"))
}

// UpdateField applies one field edit and returns the normalized text and
// the validation of the whole form
func (h *FormHandler) UpdateField(ctx context.Context, c *app.RequestContext) {
	s := h.session(ctx, c)

	var req dto.UpdateFieldRequest
	if err := c.BindAndValidate(&req); err != nil {
		BadRequestResponse(c, "invalid request: "+err.Error())
		return
	}

	field, ok := form.ParseField(req.Field)
	if !ok {
		ErrorResponse(c, domain.NewInvalidInputError(fmt.Sprintf("unknown field %q", req.Field)))
		return
	}

	applied, err := s.ApplyEdit(field, req.Seq, req.Value)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	if !applied {
		logger.FromContext(ctx).Debug("stale field edit skipped", "field", field, "seq", req.Seq)
	}

	resp := dto.ToFieldResponse(field, s.Controller.State())
	resp.Seq = req.Seq
	resp.Applied = applied
	SuccessResponse(c, resp)
}

// State returns the form as JSON
func (h *FormHandler) State(ctx context.Context, c *app.RequestContext) {
	s := h.session(ctx, c)
	SuccessResponse(c, dto.ToFormStateResponse(s.Controller.State()))
}

// Submit applies the posted values, encodes the selected log and streams the
// archive back as a download
func (h *FormHandler) Submit(ctx context.Context, c *app.RequestContext) {
	s := h.session(ctx, c)
	log := logger.FromContext(ctx)

	if s.Controller.State().Loaded() {
		for _, field := range form.Fields {
			value, ok := c.GetPostForm(string(field))
			if !ok {
				continue
			}
			if err := s.Controller.SetField(field, value); err != nil {
				log.Warn("failed to apply posted value", "field", field, "error", err)
			}
		}
	}

	submitCtx := ctx
	if h.encodeTimeout > 0 {
		var cancel context.CancelFunc
		submitCtx, cancel = context.WithTimeout(ctx, h.encodeTimeout)
		defer cancel()
	}

	sink := artifact.NewMemorySink()
	if err := s.Controller.Submit(submitCtx, sink); err != nil {
		logger.WithError(log, err).Warn("submission rejected")
		if wantsJSON(c) {
			ErrorResponse(c, err)
			return
		}
		status, _ := ErrorStatus(err)
		h.render(ctx, c, status, s, usecase.Flash{Message: domain.UserMessage(err), IsError: true})
		return
	}

	archive, ok := sink.Last()
	if !ok {
		ErrorResponse(c, domain.NewInternalError(fmt.Errorf("no archive delivered")))
		return
	}

	c.Header("Content-Disposition", contentDisposition(archive.Name))
	c.Data(consts.StatusOK, "application/zip", archive.Data)
}

// session resolves the session of the request and refreshes its cookie
func (h *FormHandler) session(ctx context.Context, c *app.RequestContext) *usecase.FormSession {
	s := h.usecase.Session(ctx, string(c.Cookie(h.cookieName)))
	c.SetCookie(h.cookieName, s.ID, int(h.sessionTTL.Seconds()), "/", "", protocol.CookieSameSiteLaxMode, false, true)
	return s
}

func (h *FormHandler) render(ctx context.Context, c *app.RequestContext, status int, s *usecase.FormSession, flash usecase.Flash) {
	s.ResetEdits()
	view := buildView(s.Controller.State(), h.server, flash)
	if err := s.CatalogError(); err != nil {
		view.CatalogError = domain.UserMessage(err)
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, pageTemplate, view); err != nil {
		h.logger.Error("failed to render page", "error", err)
		c.String(consts.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func buildView(state form.State, server string, flash usecase.Flash) pageView {
	view := pageView{
		Server:    server,
		Flash:     flash,
		Logs:      state.Logs,
		Selected:  state.Selected,
		Loaded:    state.Loaded(),
		CanSubmit: state.CanSubmit(),
	}
	if !view.Loaded {
		return view
	}

	view.Fixed = fixedProperties(state.Record.Properties)
	for _, field := range form.Fields {
		view.Fields = append(view.Fields, fieldView{
			Name:   string(field),
			Label:  field.Label(),
			Value:  state.Record.Text(field),
			Help:   field.Help(),
			Error:  state.Validation.For(field),
			IsList: field.IsList(),
		})
	}
	return view
}

func fixedProperties(p entity.LogProperties) []fixedView {
	var fixed []fixedView
	for _, prop := range form.FixedProperties(p) {
		fixed = append(fixed, fixedView{Label: prop.Label, Value: prop.Value})
	}
	return fixed
}

func wantsJSON(c *app.RequestContext) bool {
	return strings.Contains(string(c.GetHeader("Accept")), "application/json")
}

// contentDisposition names an attachment. Non-ASCII names go in the RFC 6266
// filename* parameter; filename carries an ASCII fallback.
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	if fallback == name {
		return fmt.Sprintf(`attachment; filename="%s"`, name)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(name))
}
