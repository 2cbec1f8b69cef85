package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/domain"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/form"
	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/infrastructure/artifact"
)

// UI configuration constants
const (
	defaultWindowWidth  = 100
	defaultWindowHeight = 40
	inputCharLimit      = 2000
	helpHeightReserved  = 2
	minContentHeight    = 10
	labelWidth          = 32
)

// Style definitions
var (
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle     = lipgloss.NewStyle().Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("63"))
	buttonFocusedStyle = buttonStyle.
				Background(lipgloss.Color("205")).
				Bold(true)
	buttonDisabledStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("237"))
)

// focus slots: the log list, one per editable field, then the submit button
const focusLogs = 0

var focusSubmit = len(form.Fields) + 1

// FormProgram encapsulates the form TUI program
type FormProgram struct {
	model formModel
}

// NewFormProgram creates a form program. Archives are written through sink.
func NewFormProgram(controller *form.Controller, sink *artifact.FileSink, server string) *FormProgram {
	return &FormProgram{model: initialModel(context.Background(), controller, sink, server)}
}

// Run starts the form TUI program
func (p *FormProgram) Run() error {
	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// formModel is the Bubble Tea model of the parameter form
type formModel struct {
	// Dependencies
	ctx        context.Context
	cancel     context.CancelFunc
	controller *form.Controller
	sink       *artifact.FileSink
	server     string

	// UI components
	inputs      []textinput.Model
	spinner     spinner.Model
	contentView viewport.Model

	// Form state mirrored from the controller after every change
	state     form.State
	focus     int
	cursor    int
	loading   bool
	catalogOK bool

	// Status line
	message string
	isError bool

	// Window dimensions
	width  int
	height int
}

// initialModel creates the initial form model
func initialModel(parent context.Context, controller *form.Controller, sink *artifact.FileSink, server string) formModel {
	ctx, cancel := context.WithCancel(parent)

	inputs := make([]textinput.Model, len(form.Fields))
	for i, field := range form.Fields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = inputCharLimit
		input.Width = defaultWindowWidth - labelWidth - 4
		input.Placeholder = field.Help()
		// blink messages are not routed to the inputs
		input.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = input
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	return formModel{
		ctx:         ctx,
		cancel:      cancel,
		controller:  controller,
		sink:        sink,
		server:      server,
		inputs:      inputs,
		spinner:     s,
		contentView: viewport.New(defaultWindowWidth, defaultWindowHeight-helpHeightReserved),
		state:       controller.State(),
		loading:     true,
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
}

// Init initializes the model (Bubble Tea interface)
func (m formModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// Message type definitions
type (
	catalogLoadedMsg struct{ err error }
	propsLoadedMsg   struct {
		name string
		err  error
	}
	submitDoneMsg struct {
		path string
		err  error
	}
)

// Update processes messages and updates the model (Bubble Tea interface)
func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case catalogLoadedMsg:
		m.loading = false
		m.state = m.controller.State()
		if msg.err != nil {
			m.setError(fmt.Sprintf("Failed to load event logs: %s", domain.UserMessage(msg.err)))
		} else {
			m.catalogOK = true
			if len(m.state.Logs) == 0 {
				m.setInfo("The backend has no event logs.")
			}
		}

	case propsLoadedMsg:
		m.state = m.controller.State()
		// an older selection finished after a newer one was made
		if msg.name != m.state.Selected {
			break
		}
		m.loading = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Failed to load properties of %s: %s", msg.name, domain.UserMessage(msg.err)))
			break
		}
		m.message = ""
		m.syncInputs()

	case submitDoneMsg:
		m.state = m.controller.State()
		if msg.err != nil {
			m.setError(submitMessage(msg.err))
			break
		}
		m.setSuccess(fmt.Sprintf("Saved %s", msg.path))
	}

	m.refreshContent()
	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *formModel) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancel()
		return append(cmds, tea.Quit)

	case tea.KeyTab:
		m.setFocus(m.focus + 1)
		return cmds

	case tea.KeyShiftTab:
		m.setFocus(m.focus - 1)
		return cmds

	case tea.KeyPgUp:
		m.contentView.ViewUp()
		return cmds

	case tea.KeyPgDown:
		m.contentView.ViewDown()
		return cmds
	}

	switch {
	case m.focus == focusLogs:
		cmds = append(cmds, m.handleLogListKey(msg)...)

	case m.focus == focusSubmit:
		switch msg.Type {
		case tea.KeyUp:
			m.setFocus(m.focus - 1)
		case tea.KeyEnter:
			cmds = append(cmds, m.submit())
		}

	default:
		switch msg.Type {
		case tea.KeyUp:
			m.setFocus(m.focus - 1)
		case tea.KeyDown, tea.KeyEnter:
			m.setFocus(m.focus + 1)
		default:
			cmds = append(cmds, m.updateInput(msg))
		}
	}

	return cmds
}

// handleLogListKey moves the cursor in Step 1 and selects on Enter
func (m *formModel) handleLogListKey(msg tea.KeyMsg) []tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.state.Logs)-1 {
			m.cursor++
		} else if m.state.Record != nil {
			m.setFocus(m.focus + 1)
		}
	case tea.KeyEnter:
		if len(m.state.Logs) == 0 {
			return nil
		}
		return []tea.Cmd{m.selectLog(m.state.Logs[m.cursor])}
	}
	return nil
}

// handleWindowResize handles window size changes
func (m *formModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - helpHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}
	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight

	inputWidth := msg.Width - labelWidth - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
}

// setFocus moves focus, skipping the fields while nothing is loaded
func (m *formModel) setFocus(next int) {
	if next < focusLogs {
		next = focusSubmit
	}
	if next > focusSubmit {
		next = focusLogs
	}
	if m.state.Record == nil && next != focusLogs && next != focusSubmit {
		if next > m.focus {
			next = focusSubmit
		} else {
			next = focusLogs
		}
	}

	m.focus = next
	for i := range m.inputs {
		if i+1 == next {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}

	switch next {
	case focusLogs:
		m.contentView.GotoTop()
	case focusSubmit:
		m.contentView.GotoBottom()
	}
}

// updateInput forwards a key to the focused input and stores the result.
// List inputs are reset to the normalized text with the cursor kept in place.
func (m *formModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	idx := m.focus - 1
	field := form.Fields[idx]

	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	raw := m.inputs[idx].Value()

	if err := m.controller.SetField(field, raw); err != nil {
		m.setError(domain.UserMessage(err))
		return cmd
	}
	m.state = m.controller.State()

	if field.IsList() && m.state.Record != nil {
		normalized := m.state.Record.Text(field)
		if normalized != raw {
			pos := form.NormalizedCursor(raw, m.inputs[idx].Position())
			m.inputs[idx].SetValue(normalized)
			m.inputs[idx].SetCursor(pos)
		}
	}
	return cmd
}

// syncInputs copies the loaded record into the inputs
func (m *formModel) syncInputs() {
	if m.state.Record == nil {
		return
	}
	for i, field := range form.Fields {
		m.inputs[i].SetValue(m.state.Record.Text(field))
		m.inputs[i].CursorEnd()
	}
}

// loadCatalog fetches the event log names
func (m formModel) loadCatalog() tea.Cmd {
	controller := m.controller
	ctx := m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg{err: controller.LoadCatalog(ctx)}
	}
}

// selectLog makes name the selected log and loads its properties
func (m *formModel) selectLog(name string) tea.Cmd {
	m.loading = true
	m.message = ""
	controller := m.controller
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return propsLoadedMsg{name: name, err: controller.Select(ctx, name)}
	})
}

// submit dispatches the encoding request
func (m *formModel) submit() tea.Cmd {
	m.message = ""
	// reflect the busy state right away; the controller owns the real flag
	if m.state.Selected != "" && m.state.Record != nil && !m.state.Validation.HasErrors() && !m.state.Busy {
		m.state.Busy = true
	}
	controller := m.controller
	sink := m.sink
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		if err := controller.Submit(ctx, sink); err != nil {
			return submitDoneMsg{err: err}
		}
		return submitDoneMsg{path: sink.LastPath()}
	})
}

func (m *formModel) setError(msg string) {
	m.message = msg
	m.isError = true
}

func (m *formModel) setInfo(msg string) {
	m.message = msg
	m.isError = false
}

func (m *formModel) setSuccess(msg string) {
	m.message = successStyle.Render("✓ ") + msg
	m.isError = false
}

// submitMessage is the blocking message shown for a failed submission
func submitMessage(err error) string {
	switch {
	case domain.IsNotSelected(err), domain.IsInvalidParameters(err), domain.IsBusy(err):
		return domain.UserMessage(err)
	default:
		return "Error during processing."
	}
}

// refreshContent re-renders the form into the viewport
func (m *formModel) refreshContent() {
	body := m.renderBody()
	if m.width > 0 {
		body = wrapText(body, m.width)
	}
	m.contentView.SetContent(body)
}

func (m formModel) renderBody() string {
	var b strings.Builder

	b.WriteString(boldStyle.Render("Event Log Preparation"))
	b.WriteString(dimStyle.Render("  " + m.server))
	b.WriteString("\n\n")

	m.renderLogList(&b)
	if m.state.Record != nil {
		m.renderFixed(&b)
		m.renderFields(&b)
	}
	m.renderSubmit(&b)

	return b.String()
}

// renderLogList renders Step 1
func (m formModel) renderLogList(b *strings.Builder) {
	title := "Step 1: Select an event log"
	if m.focus == focusLogs {
		title = accentStyle.Render(title)
	}
	b.WriteString(boldStyle.Render(title))
	b.WriteString("\n")

	if !m.catalogOK && m.loading {
		b.WriteString(dimStyle.Render("  loading..."))
		b.WriteString("\n\n")
		return
	}
	if len(m.state.Logs) == 0 {
		b.WriteString(dimStyle.Render("  (no event logs)"))
		b.WriteString("\n\n")
		return
	}

	for i, name := range m.state.Logs {
		marker := "  "
		if m.focus == focusLogs && i == m.cursor {
			marker = accentStyle.Render("> ")
		}
		line := name
		if name == m.state.Selected {
			line = selectedStyle.Render("● " + name)
		} else {
			line = "  " + line
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n")
}

// renderFixed renders Step 2.1
func (m formModel) renderFixed(b *strings.Builder) {
	b.WriteString(boldStyle.Render("Step 2.1: Fixed properties"))
	b.WriteString("\n")
	for _, prop := range form.FixedProperties(m.state.Record.Properties) {
		b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render(padLabel(prop.Label)), prop.Value))
	}
	b.WriteString("\n")
}

// renderFields renders Step 2.2
func (m formModel) renderFields(b *strings.Builder) {
	b.WriteString(boldStyle.Render("Step 2.2: Editable properties"))
	b.WriteString("\n")

	for i, field := range form.Fields {
		label := padLabel(field.Label())
		if m.focus == i+1 {
			label = accentStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", label, m.inputs[i].View()))

		indent := strings.Repeat(" ", labelWidth+3)
		if msg := m.state.Validation.For(field); msg != "" {
			b.WriteString(indent + errorStyle.Render(msg) + "\n")
		} else {
			b.WriteString(indent + dimStyle.Render(field.Help()) + "\n")
		}
	}
	b.WriteString("\n")
}

// renderSubmit renders the button and the status line
func (m formModel) renderSubmit(b *strings.Builder) {
	label := "Start data preparation"
	style := buttonStyle
	switch {
	case !m.state.CanSubmit():
		style = buttonDisabledStyle
	case m.focus == focusSubmit:
		style = buttonFocusedStyle
	}
	button := style.Render(label)
	if m.focus == focusSubmit {
		button = accentStyle.Render("> ") + button
	} else {
		button = "  " + button
	}
	b.WriteString(button)
	b.WriteString("\n\n")

	switch {
	case m.state.Busy:
		b.WriteString(m.spinner.View() + " Encoding " + m.state.Selected + "...")
	case m.loading && m.catalogOK:
		b.WriteString(m.spinner.View() + " Loading properties...")
	case m.message != "" && m.isError:
		b.WriteString(errorStyle.Render("✗ " + m.message))
	case m.message != "":
		b.WriteString(m.message)
	}
	b.WriteString("\n")
}

// View renders the UI (Bubble Tea interface)
func (m formModel) View() string {
	help := dimStyle.Render("Tab/↑↓ move • Enter select/submit • PgUp/PgDn scroll • Esc quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.contentView.View(), help)
}

// padLabel pads a label to the label column, measuring display width
func padLabel(label string) string {
	w := runewidth.StringWidth(label)
	if w >= labelWidth {
		return runewidth.Truncate(label, labelWidth, "…")
	}
	return label + strings.Repeat(" ", labelWidth-w)
}

// wrapText applies auto-wrapping to text, correctly handling wide characters
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.WriteString(wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line. Lines carrying ANSI styling are measured with
// lipgloss so escape sequences do not count towards the width.
func wrapLine(line string, maxWidth int) string {
	if lipgloss.Width(line) <= maxWidth || strings.Contains(line, "\x1b[") {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)

		// If adding this character exceeds width, wrap first
		if currentWidth+runeW > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}

		currentLine.WriteRune(r)
		currentWidth += runeW
	}

	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}
