package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/codelens/internal/highlight"
	"github.com/sprite-ai/codelens/internal/model"
)

const placeholderText = "Paste or type code on the left, then pick an action below."

// resultTitles label the result panel per operation.
var resultTitles = map[model.Operation]string{
	model.OpReview:     "Code Review",
	model.OpFix:        "Fixed Code",
	model.OpComplexity: "Complexity Analysis",
	model.OpDocument:   "Documentation",
	model.OpConvert:    "Converted Code",
}

// renderState produces the result panel content for every state except
// loading, whose spinner is drawn live by View.
func renderState(s viewState, width int, markdownStyle string) string {
	switch s := s.(type) {
	case showingState:
		header := resultHeaderStyle.Render(resultTitles[s.result.Operation])
		var body string
		if s.result.Operation.IsCode() {
			body = renderCode(s.result.Text, s.hint)
		} else {
			body = renderMarkdown(s.result.Text, width, markdownStyle)
		}
		return header + "\n" + body
	case errorState:
		return errorStyle.Width(width).Render(s.message)
	case loadingState:
		return ""
	default:
		return placeholderStyle.Width(width).Render(placeholderText)
	}
}

// renderMarkdown formats a report. If the renderer fails the raw markdown
// is shown rather than nothing.
func renderMarkdown(text string, width int, style string) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// renderCode shows read-only source with line numbers, highlighted for hint.
func renderCode(text, hint string) string {
	lines := highlight.Source(hint, text)

	var b strings.Builder
	for i, line := range lines {
		b.WriteString(lineNumberStyle.Render(fmt.Sprintf("%d", i+1)))
		b.WriteString("  ")
		for _, tok := range line.Tokens {
			if tok.Color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(tok.Color)).Render(tok.Text))
			} else {
				b.WriteString(tok.Text)
			}
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
