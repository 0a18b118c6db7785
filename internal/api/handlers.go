package api

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sprite-ai/codelens/internal/model"
)

// --- Health ---

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Provider: s.svc.Provider()})
}

// --- Operations ---

type operationRequest struct {
	Code           string `json:"code"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

func (req operationRequest) toModel(op model.Operation) model.Request {
	return model.Request{
		Operation:      op,
		Code:           req.Code,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	}
}

// handleOperation serves POST /api/<op>. The success body carries exactly the
// field contracted for op.
func (s *Server) handleOperation(op model.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req operationRequest
		if err := readJSON(r, &req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			s.writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
			return
		}

		result, err := s.svc.Run(r.Context(), req.toModel(op))
		if err != nil {
			status, msg := errorStatus(op, err)
			if status >= http.StatusInternalServerError {
				s.logger.Error("operation failed",
					zap.String("operation", op.String()),
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Error(err),
				)
			}
			s.writeError(w, status, msg)
			return
		}

		s.writeJSON(w, http.StatusOK, result)
	}
}

// errorStatus maps a service error to an HTTP status and user-facing message.
func errorStatus(op model.Operation, err error) (int, string) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}
	var gerr *model.GatewayError
	if errors.As(err, &gerr) {
		return http.StatusInternalServerError, fmt.Sprintf("%s failed: %v", op, gerr.Err)
	}
	return http.StatusInternalServerError, fmt.Sprintf("%s failed: %v", op, err)
}
