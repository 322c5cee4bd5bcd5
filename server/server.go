// Package server exposes terminal sessions over HTTP and WebSocket.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/MikaStiebitz/Git-Gud/config"
	"github.com/MikaStiebitz/Git-Gud/session"
	"github.com/MikaStiebitz/Git-Gud/utils/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const bodyLimit = 64 << 10

// Server routes requests to the session manager.
type Server struct {
	cfg      config.Server
	prompt   string
	sessions *session.Manager
	metrics  *Metrics
	log      *zap.Logger
	router   chi.Router
}

// New wires the router. The command registry of sessions reports into the server metrics.
func New(cfg config.Server, prompt string, sessions *session.Manager, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		prompt:   prompt,
		sessions: sessions,
		metrics:  NewMetrics(sessions.Len),
		log:      log,
	}
	sessions.Registry().SetObserver(s.metrics.ObserveCommand)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(logging.Middleware)
	r.Use(s.metrics.Middleware)
	r.Use(cors(s.cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.deleteSession)
			r.Post("/commands", s.runCommand)
			r.Get("/state", s.state)
			r.Get("/complete", s.complete)
			r.Post("/editor", s.saveEditor)
			r.Post("/reset", s.resetProgress)
		})
	})
	r.Get("/ws/sessions/{id}", s.terminal)
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type createResponse struct {
	ID     string   `json:"id"`
	Level  int      `json:"level"`
	Lines  []string `json:"lines"`
	Cwd    string   `json:"cwd"`
	Prompt string   `json:"prompt"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		logging.WithContext(r.Context()).Error("creating session failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "could not create session")
		return
	}
	st := sess.State()
	writeJSON(w, http.StatusCreated, createResponse{
		ID:     sess.ID,
		Level:  st.Level.ID,
		Lines:  sess.Intro(),
		Cwd:    st.Cwd,
		Prompt: sess.Prompt(s.prompt),
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type commandRequest struct {
	Input string `json:"input"`
}

type commandResponse struct {
	session.Output
	Prompt string `json:"prompt"`
}

func (s *Server) runCommand(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[commandRequest](w, r)
	if !ok {
		return
	}
	out := sess.Execute(req.Input)
	writeJSON(w, http.StatusOK, commandResponse{Output: out, Prompt: sess.Prompt(s.prompt)})
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

func (s *Server) complete(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"completions": sess.Complete(r.URL.Query().Get("prefix")),
	})
}

type editorRequest struct {
	Content string `json:"content"`
}

func (s *Server) saveEditor(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[editorRequest](w, r)
	if !ok {
		return
	}
	if !sess.SaveEditor(req.Content) {
		writeError(w, http.StatusConflict, "no editor open")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetProgress(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	lines, err := sess.ResetProgress()
	if err != nil {
		logging.WithContext(r.Context()).Error("resetting progress failed", zap.String("session", sess.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not reset progress")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"lines": lines})
}

// session resolves the {id} parameter and writes a 404 when it is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
		} else {
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return nil, false
	}
	return sess, true
}

func cors(allowed []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (slices.Contains(allowed, "*") || slices.Contains(allowed, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func readJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return v, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.L().Error("writing JSON response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return hj.Hijack()
}
