package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/MikaStiebitz/Git-Gud/session"
	"github.com/MikaStiebitz/Git-Gud/utils/logging"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

// wsRequest is a JSON frame from the browser. A frame that is not JSON is one input line.
type wsRequest struct {
	Type    string `json:"type"` // input, complete, editor
	Input   string `json:"input,omitempty"`
	Content string `json:"content,omitempty"`
}

type wsReply struct {
	Type string `json:"type"` // output, completions, error
	*session.Output
	Prompt      string   `json:"prompt,omitempty"`
	Completions []string `json:"completions,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// terminal upgrades to a WebSocket and runs the session until the client goes away.
func (s *Server) terminal(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	opts := &websocket.AcceptOptions{OriginPatterns: s.cfg.AllowedOrigins}
	if slices.Contains(s.cfg.AllowedOrigins, "*") {
		opts = &websocket.AcceptOptions{InsecureSkipVerify: true}
	}
	c, err := websocket.Accept(w, r, opts)
	if err != nil {
		logging.WithContext(r.Context()).Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer c.CloseNow()
	c.SetReadLimit(bodyLimit)

	s.metrics.wsConnections.Inc()
	defer s.metrics.wsConnections.Dec()

	log := logging.WithContext(r.Context()).With(zap.String("session", sess.ID))
	log.Info("terminal connected")

	ctx := r.Context()
	intro := session.Output{Lines: sess.Intro(), Cwd: sess.Cwd()}
	if err := wsjson.Write(ctx, c, wsReply{Type: "output", Output: &intro, Prompt: sess.Prompt(s.prompt)}); err != nil {
		return
	}

	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				log.Debug("terminal read failed", zap.Error(err))
			}
			log.Info("terminal disconnected")
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		if err := wsjson.Write(ctx, c, s.handleFrame(sess, data)); err != nil {
			log.Debug("terminal write failed", zap.Error(err))
			return
		}
	}
}

func (s *Server) handleFrame(sess *session.Session, data []byte) wsReply {
	var req wsRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Type == "" {
		req = wsRequest{Type: "input", Input: string(data)}
	}

	switch req.Type {
	case "input":
		out := sess.Execute(req.Input)
		return wsReply{Type: "output", Output: &out, Prompt: sess.Prompt(s.prompt)}
	case "complete":
		return wsReply{Type: "completions", Completions: sess.Complete(req.Input)}
	case "editor":
		if !sess.SaveEditor(req.Content) {
			return wsReply{Type: "error", Error: "no editor open"}
		}
		return wsReply{Type: "output", Output: &session.Output{Lines: []string{}, Cwd: sess.Cwd()}, Prompt: sess.Prompt(s.prompt)}
	default:
		return wsReply{Type: "error", Error: "unknown frame type: " + req.Type}
	}
}
