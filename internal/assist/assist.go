// Package assist runs one codelens operation end to end on the server:
// validate, build the prompt, call the model once, and clean code replies.
package assist

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sprite-ai/codelens/internal/gateway"
	"github.com/sprite-ai/codelens/internal/metrics"
	"github.com/sprite-ai/codelens/internal/model"
	"github.com/sprite-ai/codelens/internal/normalize"
	"github.com/sprite-ai/codelens/internal/prompt"
)

// Service is built once at startup and shared by every handler.
type Service struct {
	gw     gateway.Gateway
	logger *zap.Logger
}

// New creates a Service. A nil logger disables logging.
func New(gw gateway.Gateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gw: gw, logger: logger}
}

// Provider names the gateway in use.
func (s *Service) Provider() string {
	return s.gw.Name()
}

// Run executes req. Errors are *model.ValidationError or *model.GatewayError.
func (s *Service) Run(ctx context.Context, req model.Request) (model.Result, error) {
	if err := req.Validate(); err != nil {
		return model.Result{}, err
	}

	instruction, err := prompt.ForRequest(req)
	if err != nil {
		return model.Result{}, err
	}

	metrics.SnippetChars.Observe(float64(len(req.Code)))

	start := time.Now()
	raw, err := s.gw.Invoke(ctx, instruction)
	elapsed := time.Since(start)

	if err != nil {
		metrics.GatewayDuration.WithLabelValues(req.Operation.String(), "error").Observe(elapsed.Seconds())
		s.logger.Warn("gateway call failed",
			zap.String("operation", req.Operation.String()),
			zap.String("gateway", s.gw.Name()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return model.Result{}, err
	}
	metrics.GatewayDuration.WithLabelValues(req.Operation.String(), "ok").Observe(elapsed.Seconds())

	text := raw
	if req.Operation.IsCode() {
		text = normalize.Code(raw)
	}

	s.logger.Debug("operation complete",
		zap.String("operation", req.Operation.String()),
		zap.String("gateway", s.gw.Name()),
		zap.Int("code_chars", len(req.Code)),
		zap.Int("reply_chars", len(raw)),
		zap.Duration("elapsed", elapsed),
	)

	return model.Result{Operation: req.Operation, Text: text}, nil
}
