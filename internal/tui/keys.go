package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sprite-ai/codelens/internal/model"
)

type keyMap struct {
	Review     key.Binding
	Fix        key.Binding
	Complexity key.Binding
	Document   key.Binding
	Convert    key.Binding
	Copy       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Review: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("^r", "review"),
	),
	Fix: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("^f", "fix"),
	),
	Complexity: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("^o", "complexity"),
	),
	Document: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("^d", "document"),
	),
	Convert: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("^t", "convert"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("^y", "copy result"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev field"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll result up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll result down"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// operationKeys maps each action binding to its operation, in menu order.
var operationKeys = []struct {
	binding key.Binding
	op      model.Operation
}{
	{keys.Review, model.OpReview},
	{keys.Fix, model.OpFix},
	{keys.Complexity, model.OpComplexity},
	{keys.Document, model.OpDocument},
	{keys.Convert, model.OpConvert},
}
