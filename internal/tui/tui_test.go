package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sprite-ai/codelens/internal/model"
)

type fakeRunner struct {
	calls []model.Request
	reply func(req model.Request) (model.Result, error)
}

func (f *fakeRunner) Run(_ context.Context, req model.Request) (model.Result, error) {
	f.calls = append(f.calls, req)
	if f.reply == nil {
		return model.Result{Operation: req.Operation, Text: "ok"}, nil
	}
	return f.reply(req)
}

func setupModel(t *testing.T, runner Runner, opts Options) Model {
	t.Helper()
	m := New(runner, opts)
	// Simulate window size
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	newM, cmd := m.Update(tea.KeyMsg{Type: k})
	return newM.(Model), cmd
}

// findResult runs cmd and any batched commands until it finds a resultMsg.
func findResult(t *testing.T, cmd tea.Cmd) resultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case resultMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if r, ok := c().(resultMsg); ok {
				return r
			}
		}
	}
	t.Fatal("no resultMsg produced")
	return resultMsg{}
}

func TestInitialState(t *testing.T) {
	m := setupModel(t, &fakeRunner{}, Options{})

	if _, ok := m.state.(idleState); !ok {
		t.Errorf("expected idle state, got %T", m.state)
	}
	if !strings.Contains(m.View(), "Paste or type code") {
		t.Error("expected placeholder in view")
	}
}

func TestEmptySnippetMakesNoCall(t *testing.T) {
	runner := &fakeRunner{}
	m := setupModel(t, runner, Options{Code: "   \n  "})

	m, cmd := press(t, m, tea.KeyCtrlR)
	if cmd != nil {
		t.Error("expected no command for an empty snippet")
	}
	s, ok := m.state.(errorState)
	if !ok {
		t.Fatalf("expected error state, got %T", m.state)
	}
	if s.message != "snippet is empty" {
		t.Errorf("unexpected message %q", s.message)
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no calls, got %d", len(runner.calls))
	}
}

func TestReviewSuccess(t *testing.T) {
	runner := &fakeRunner{reply: func(req model.Request) (model.Result, error) {
		return model.Result{Operation: req.Operation, Text: "## Summary\n\nLooks fine."}, nil
	}}
	m := setupModel(t, runner, Options{Code: "print('hi')", SourceLanguage: "python"})

	m, cmd := press(t, m, tea.KeyCtrlR)
	if _, ok := m.state.(loadingState); !ok {
		t.Fatalf("expected loading state, got %T", m.state)
	}
	if !strings.Contains(m.View(), "Working on review") {
		t.Error("expected working indicator in view")
	}

	msg := findResult(t, cmd)
	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(runner.calls))
	}
	if got := runner.calls[0]; got.Code != "print('hi')" || got.SourceLanguage != "python" {
		t.Errorf("unexpected request %+v", got)
	}

	newM, _ := m.Update(msg)
	m = newM.(Model)
	s, ok := m.state.(showingState)
	if !ok {
		t.Fatalf("expected showing state, got %T", m.state)
	}
	if s.result.Operation != model.OpReview {
		t.Errorf("expected review result, got %s", s.result.Operation)
	}
	if !strings.Contains(m.View(), "Summary") {
		t.Error("expected rendered report in view")
	}
}

func TestLoadingClearsPreviousResult(t *testing.T) {
	m := setupModel(t, &fakeRunner{}, Options{Code: "x = 1"})

	m, cmd := press(t, m, tea.KeyCtrlO)
	newM, _ := m.Update(findResult(t, cmd))
	m = newM.(Model)
	if _, ok := m.state.(showingState); !ok {
		t.Fatalf("expected showing state, got %T", m.state)
	}

	m, _ = press(t, m, tea.KeyCtrlD)
	s, ok := m.state.(loadingState)
	if !ok {
		t.Fatalf("expected loading state, got %T", m.state)
	}
	if s.op != model.OpDocument {
		t.Errorf("expected document in flight, got %s", s.op)
	}
}

func TestLoadingIgnoresActions(t *testing.T) {
	runner := &fakeRunner{}
	m := setupModel(t, runner, Options{Code: "x = 1"})

	m, _ = press(t, m, tea.KeyCtrlR)
	m, cmd := press(t, m, tea.KeyCtrlF)
	if cmd != nil {
		t.Error("expected no command while loading")
	}
	if s := m.state.(loadingState); s.op != model.OpReview {
		t.Errorf("expected review still in flight, got %s", s.op)
	}
}

func TestErrorTransition(t *testing.T) {
	runner := &fakeRunner{reply: func(req model.Request) (model.Result, error) {
		return model.Result{}, &model.TransportError{
			Operation: req.Operation,
			Status:    500,
			Message:   "fix failed: quota exceeded",
		}
	}}
	m := setupModel(t, runner, Options{Code: "x = 1"})

	m, cmd := press(t, m, tea.KeyCtrlF)
	newM, _ := m.Update(findResult(t, cmd))
	m = newM.(Model)

	s, ok := m.state.(errorState)
	if !ok {
		t.Fatalf("expected error state, got %T", m.state)
	}
	if s.message != "fix failed: quota exceeded" {
		t.Errorf("unexpected message %q", s.message)
	}
	if !strings.Contains(m.View(), "quota exceeded") {
		t.Error("expected error message in view")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", &model.TransportError{Message: "server said no"}, "server said no"},
		{"plain", errors.New("boom"), "boom"},
		{"empty", errors.New(""), "Failed to fetch complexity."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(model.OpComplexity, tt.err); got != tt.want {
				t.Errorf("errorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertRequiresLanguages(t *testing.T) {
	runner := &fakeRunner{}
	m := setupModel(t, runner, Options{Code: "console.log(1)", SourceLanguage: "javascript"})

	m, cmd := press(t, m, tea.KeyCtrlT)
	if cmd != nil {
		t.Error("expected no command without a target language")
	}
	s, ok := m.state.(errorState)
	if !ok {
		t.Fatalf("expected error state, got %T", m.state)
	}
	if !strings.Contains(s.message, "targetLanguage") {
		t.Errorf("unexpected message %q", s.message)
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no calls, got %d", len(runner.calls))
	}
}

func TestConvertSuccess(t *testing.T) {
	runner := &fakeRunner{reply: func(req model.Request) (model.Result, error) {
		return model.Result{Operation: req.Operation, Text: "print(1)"}, nil
	}}
	m := setupModel(t, runner, Options{
		Code:           "console.log(1)",
		SourceLanguage: "javascript",
		TargetLanguage: "python",
	})

	m, cmd := press(t, m, tea.KeyCtrlT)
	msg := findResult(t, cmd)
	if msg.req.TargetLanguage != "python" {
		t.Errorf("expected target python, got %q", msg.req.TargetLanguage)
	}

	newM, _ := m.Update(msg)
	m = newM.(Model)
	s, ok := m.state.(showingState)
	if !ok {
		t.Fatalf("expected showing state, got %T", m.state)
	}
	if s.hint != "python" {
		t.Errorf("expected highlight hint python, got %q", s.hint)
	}
	if !strings.Contains(m.View(), "Converted Code") {
		t.Error("expected converted code header")
	}
}

func TestCopy(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = orig }()

	runner := &fakeRunner{reply: func(req model.Request) (model.Result, error) {
		return model.Result{Operation: req.Operation, Text: "fixed()"}, nil
	}}
	m := setupModel(t, runner, Options{Code: "broken("})

	// Nothing to copy yet
	_, cmd := press(t, m, tea.KeyCtrlY)
	if cmd != nil {
		t.Error("expected copy to be disabled without a result")
	}

	m, cmd = press(t, m, tea.KeyCtrlF)
	newM, _ := m.Update(findResult(t, cmd))
	m = newM.(Model)

	m, cmd = press(t, m, tea.KeyCtrlY)
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	newM, _ = m.Update(cmd())
	m = newM.(Model)

	if copied != "fixed()" {
		t.Errorf("expected %q copied, got %q", "fixed()", copied)
	}
	if m.status != "Copied to clipboard" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestCopyFailure(t *testing.T) {
	orig := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	defer func() { clipboardWriteAll = orig }()

	m := setupModel(t, &fakeRunner{}, Options{})
	m.setState(showingState{result: model.Result{Operation: model.OpFix, Text: "x"}})

	m, cmd := press(t, m, tea.KeyCtrlY)
	newM, _ := m.Update(cmd())
	m = newM.(Model)
	if !strings.Contains(m.status, "no clipboard") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestFocusCycle(t *testing.T) {
	m := setupModel(t, &fakeRunner{}, Options{})

	m, _ = press(t, m, tea.KeyTab)
	if m.focus != fieldSource {
		t.Errorf("expected source focus, got %d", m.focus)
	}
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyTab)
	if m.focus != fieldEditor {
		t.Errorf("expected focus to wrap to editor, got %d", m.focus)
	}
	m, _ = press(t, m, tea.KeyShiftTab)
	if m.focus != fieldTarget {
		t.Errorf("expected target focus, got %d", m.focus)
	}
}

func TestHelpToggle(t *testing.T) {
	m := setupModel(t, &fakeRunner{}, Options{})

	m, _ = press(t, m, tea.KeyF1)
	if !m.showHelp {
		t.Error("expected help to be shown")
	}
	if !strings.Contains(m.View(), "keyboard shortcuts") {
		t.Error("expected help view to contain shortcuts")
	}

	m, _ = press(t, m, tea.KeyF1)
	if m.showHelp {
		t.Error("expected help hidden after second toggle")
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := New(&fakeRunner{}, Options{})
	if m.View() != "Loading..." {
		t.Errorf("unexpected view %q", m.View())
	}
}

func TestRenderState(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		out := renderState(idleState{}, 80, "dark")
		if !strings.Contains(out, "Paste or type code") {
			t.Errorf("expected placeholder, got %q", out)
		}
	})

	t.Run("error", func(t *testing.T) {
		out := renderState(errorState{message: "bad input"}, 80, "dark")
		if !strings.Contains(out, "bad input") {
			t.Errorf("expected error message, got %q", out)
		}
	})

	t.Run("loading", func(t *testing.T) {
		if out := renderState(loadingState{op: model.OpFix}, 80, "dark"); out != "" {
			t.Errorf("expected empty panel while loading, got %q", out)
		}
	})

	t.Run("code", func(t *testing.T) {
		out := renderState(showingState{
			result: model.Result{Operation: model.OpFix, Text: "def add(a, b):\n    return a + b"},
			hint:   "python",
		}, 80, "dark")
		if !strings.Contains(out, "Fixed Code") {
			t.Error("expected fixed code header")
		}
		if !strings.Contains(out, "return a + b") {
			t.Errorf("expected code body, got %q", out)
		}
		if !strings.Contains(out, "2") {
			t.Error("expected line numbers")
		}
	})

	t.Run("markdown", func(t *testing.T) {
		out := renderState(showingState{
			result: model.Result{Operation: model.OpDocument, Text: "# Overview\n\nAdds numbers."},
		}, 80, "dark")
		if !strings.Contains(out, "Documentation") {
			t.Error("expected documentation header")
		}
		if !strings.Contains(out, "Overview") {
			t.Errorf("expected rendered markdown, got %q", out)
		}
	})
}
