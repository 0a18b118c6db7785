package gateway

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/sprite-ai/codelens/internal/model"
)

// ReplyFunc produces the mock's answer to an instruction.
type ReplyFunc func(instruction string) (string, error)

// Mock answers without any network access. It is used by `serve --mock`
// and by tests.
type Mock struct {
	reply ReplyFunc
	calls atomic.Int64
	last  atomic.Value // string
}

// NewMock creates a mock gateway. A nil reply echoes the instruction's last
// line inside a markdown block.
func NewMock(reply ReplyFunc) *Mock {
	if reply == nil {
		reply = echoReply
	}
	return &Mock{reply: reply}
}

func (m *Mock) Name() string {
	return ProviderMock
}

func (m *Mock) Invoke(ctx context.Context, instruction string) (string, error) {
	m.calls.Add(1)
	m.last.Store(instruction)
	if err := ctx.Err(); err != nil {
		return "", &model.GatewayError{Provider: ProviderMock, Err: err}
	}
	out, err := m.reply(instruction)
	if err != nil {
		var gerr *model.GatewayError
		if errors.As(err, &gerr) {
			return "", err
		}
		return "", &model.GatewayError{Provider: ProviderMock, Err: err}
	}
	return out, nil
}

// Calls returns how many times Invoke ran.
func (m *Mock) Calls() int {
	return int(m.calls.Load())
}

// LastInstruction returns the instruction passed to the latest Invoke.
func (m *Mock) LastInstruction() string {
	s, _ := m.last.Load().(string)
	return s
}

func echoReply(instruction string) (string, error) {
	lines := strings.Split(strings.TrimSpace(instruction), "\n")
	return "```\n" + lines[len(lines)-1] + "\n```", nil
}
