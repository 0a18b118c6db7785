package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sprite-ai/codelens/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // the HTTP endpoints are CORS-open too
	},
}

// WebSocket message types from client.
const (
	wsMsgSubmit = "submit"
)

// WebSocket message types to client.
const (
	wsMsgLoading = "loading"
	wsMsgResult  = "result"
	wsMsgError   = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsSubmit is the payload for "submit" messages.
type wsSubmit struct {
	Operation      string `json:"operation"`
	Code           string `json:"code"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

// wsLoading announces that a submit was accepted and the model is working.
type wsLoading struct {
	Operation string `json:"operation"`
}

// handleWebSocket runs a session in which each submit is answered with
// "loading" followed by exactly one "result" or "error". Submits on one
// connection are processed in order, one at a time.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgSubmit:
			s.handleWSSubmit(r, conn, msg.Data)
		default:
			s.sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) handleWSSubmit(r *http.Request, conn *websocket.Conn, data json.RawMessage) {
	var req wsSubmit
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWSError(conn, "invalid submit data")
		return
	}

	op, err := model.ParseOperation(req.Operation)
	if err != nil {
		s.sendWSError(conn, err.Error())
		return
	}

	mreq := model.Request{
		Operation:      op,
		Code:           req.Code,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	}
	// Invalid submits are rejected without a loading message.
	if err := mreq.Validate(); err != nil {
		s.sendWSError(conn, err.Error())
		return
	}

	s.sendWSMessage(conn, wsMsgLoading, wsLoading{Operation: op.String()})

	result, err := s.svc.Run(r.Context(), mreq)
	if err != nil {
		_, msg := errorStatus(op, err)
		s.sendWSError(conn, msg)
		return
	}

	s.sendWSMessage(conn, wsMsgResult, map[string]string{
		"operation":    op.String(),
		result.Field(): result.Text,
	})
}

func (s *Server) sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("ws marshal", zap.Error(err))
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("ws write", zap.Error(err))
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, errMsg string) {
	s.sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
