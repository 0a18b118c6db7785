// Package tui implements the interactive codelens client: an editor for the
// snippet, one action per operation, and a result panel.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/codelens/internal/model"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Runner executes one operation. *client.Client is the usual implementation.
type Runner interface {
	Run(ctx context.Context, req model.Request) (model.Result, error)
}

// Options seeds the editor fields.
type Options struct {
	Code           string
	SourceLanguage string
	TargetLanguage string
	MarkdownStyle  string // glamour style name, "dark" when empty
}

type field int

const (
	fieldEditor field = iota
	fieldSource
	fieldTarget
	fieldCount
)

// resultMsg carries the reply to a submitted request.
type resultMsg struct {
	req    model.Request
	result model.Result
	err    error
}

// copiedMsg reports the outcome of the copy action.
type copiedMsg struct {
	err error
}

// Model is the top-level Bubble Tea model for codelens.
type Model struct {
	runner Runner

	editor textarea.Model
	source textinput.Model
	target textinput.Model
	focus  field

	spinner spinner.Model
	result  viewport.Model
	state   viewState

	markdownStyle string
	status        string // one-line note in the status bar

	width  int
	height int

	showHelp bool
}

// New creates the client model.
func New(runner Runner, opts Options) Model {
	editor := textarea.New()
	editor.Placeholder = "Paste code here..."
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.SetValue(opts.Code)
	editor.Focus()

	source := textinput.New()
	source.Placeholder = "e.g. python"
	source.SetValue(opts.SourceLanguage)

	target := textinput.New()
	target.Placeholder = "e.g. go"
	target.SetValue(opts.TargetLanguage)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	style := opts.MarkdownStyle
	if style == "" {
		style = "dark"
	}

	m := Model{
		runner:        runner,
		editor:        editor,
		source:        source,
		target:        target,
		spinner:       sp,
		result:        viewport.New(40, 10),
		markdownStyle: style,
	}
	m.setState(idleState{})
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case resultMsg:
		if msg.err != nil {
			m.setState(errorState{message: errorMessage(msg.req.Operation, msg.err)})
		} else {
			m.setState(showingState{result: msg.result, hint: msg.req.LanguageHint()})
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if _, ok := m.state.(loadingState); !ok {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.Copy):
		return m.copyResult()

	case key.Matches(msg, keys.NextField):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, keys.PrevField):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(msg, keys.PageUp):
		m.result.SetYOffset(m.result.YOffset - m.result.Height)
		return m, nil

	case key.Matches(msg, keys.PageDown):
		m.result.SetYOffset(m.result.YOffset + m.result.Height)
		return m, nil
	}

	for _, ok := range operationKeys {
		if key.Matches(msg, ok.binding) {
			return m.submit(ok.op)
		}
	}

	return m.updateFocused(msg)
}

// submit validates the input and starts one request for op. Actions are
// disabled while a request is in flight.
func (m Model) submit(op model.Operation) (tea.Model, tea.Cmd) {
	if m.loading() {
		return m, nil
	}
	m.status = ""

	req := model.Request{
		Operation:      op,
		Code:           m.editor.Value(),
		SourceLanguage: strings.TrimSpace(m.source.Value()),
		TargetLanguage: strings.TrimSpace(m.target.Value()),
	}
	if err := req.ValidateLocal(); err != nil {
		m.setState(errorState{message: err.Error()})
		return m, nil
	}

	// The previous result is dropped here, before the call resolves.
	m.setState(loadingState{op: op})
	return m, tea.Batch(m.spinner.Tick, runRequest(m.runner, req))
}

func runRequest(runner Runner, req model.Request) tea.Cmd {
	return func() tea.Msg {
		result, err := runner.Run(context.Background(), req)
		return resultMsg{req: req, result: result, err: err}
	}
}

// errorMessage picks the text shown for a failed request.
func errorMessage(op model.Operation, err error) string {
	var terr *model.TransportError
	if errors.As(err, &terr) && terr.Message != "" {
		return terr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return model.FallbackMessage(op)
}

func (m Model) copyResult() (tea.Model, tea.Cmd) {
	s, ok := m.state.(showingState)
	if !ok {
		return m, nil
	}
	text := s.result.Text
	return m, func() tea.Msg {
		return copiedMsg{err: clipboardWriteAll(text)}
	}
}

func (m Model) loading() bool {
	_, ok := m.state.(loadingState)
	return ok
}

// setState replaces the view state and redraws the result panel.
func (m *Model) setState(s viewState) {
	m.state = s
	m.result.SetContent(renderState(s, m.result.Width, m.markdownStyle))
	m.result.GotoTop()
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.editor.Blur()
	m.source.Blur()
	m.target.Blur()
	switch f {
	case fieldEditor:
		m.editor.Focus()
	case fieldSource:
		m.source.Focus()
	case fieldTarget:
		m.target.Focus()
	}
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldEditor:
		m.editor, cmd = m.editor.Update(msg)
	case fieldSource:
		m.source, cmd = m.source.Update(msg)
	case fieldTarget:
		m.target, cmd = m.target.Update(msg)
	}
	return m, cmd
}

// layout sizes the panels: input on the left, result on the right, status
// bar at the bottom.
func (m *Model) layout() {
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 1
	panelHeight := m.height - 3 // status bar + borders

	m.editor.SetWidth(max(leftWidth-4, 10))
	m.editor.SetHeight(max(panelHeight-7, 3)) // two language fields + labels
	m.source.Width = max(leftWidth-20, 10)
	m.target.Width = max(leftWidth-20, 10)

	m.result.Width = max(rightWidth-4, 10)
	m.result.Height = max(panelHeight-2, 3)
	m.setState(m.state)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 1
	panelHeight := m.height - 3

	input := inputPanelStyle.Width(leftWidth - 2).Height(panelHeight).Render(m.renderInput())
	output := resultPanelStyle.Width(rightWidth - 2).Height(panelHeight).Render(m.renderResult())

	main := lipgloss.JoinHorizontal(lipgloss.Top, input, " ", output)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderInput() string {
	label := func(f field, text string) string {
		if m.focus == f {
			return labelFocusedStyle.Render(text)
		}
		return labelStyle.Render(text)
	}

	var b strings.Builder
	b.WriteString(label(fieldEditor, "Code"))
	b.WriteByte('\n')
	b.WriteString(m.editor.View())
	b.WriteString("\n\n")
	b.WriteString(label(fieldSource, "Source language ") + m.source.View())
	b.WriteByte('\n')
	b.WriteString(label(fieldTarget, "Target language ") + m.target.View())
	return b.String()
}

// renderResult is the Result Presenter: working indicator while loading,
// otherwise the pre-rendered panel for the current state.
func (m Model) renderResult() string {
	if s, ok := m.state.(loadingState); ok {
		return m.spinner.View() + workingStyle.Render(fmt.Sprintf(" Working on %s...", s.op))
	}
	return m.result.View()
}

func (m Model) renderStatusBar() string {
	busy := m.loading()
	_, hasResult := m.state.(showingState)

	var parts []string
	for _, ok := range operationKeys {
		parts = append(parts, renderKey(ok.binding, !busy))
	}
	parts = append(parts, renderKey(keys.Copy, hasResult && !busy))

	left := strings.Join(parts, "  ")
	right := statusNoteStyle.Render(m.status) + "  f1 help "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderKey(b key.Binding, enabled bool) string {
	h := b.Help()
	if !enabled {
		return statusKeyDisabledStyle.Render(h.Key + " " + h.Desc)
	}
	return statusKeyStyle.Render(h.Key) + " " + h.Desc
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(helpHeaderStyle.Render("codelens: keyboard shortcuts"))
	b.WriteString("\n\n")

	for _, k := range []key.Binding{
		keys.Review, keys.Fix, keys.Complexity, keys.Document, keys.Convert,
		keys.Copy, keys.NextField, keys.PrevField, keys.PageUp, keys.PageDown,
		keys.Help, keys.Quit,
	} {
		h := k.Help()
		b.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Width(12).Render(h.Key), h.Desc))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Convert uses the source and target language fields. Press f1 to close help."))

	return b.String()
}

// Run starts the TUI application.
func Run(runner Runner, opts Options) error {
	m := New(runner, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
