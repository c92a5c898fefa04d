package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	coordinatorx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/agents/coordinator"
)

const version = "1.0.0"

// Server exposes the coordinator over HTTP.
type Server struct {
	coordinator *coordinatorx.Service
}

func New(coordinator *coordinatorx.Service) *Server {
	return &Server{coordinator: coordinator}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHealth)
	r.Post("/chat", s.handleChat)
	r.Get("/session/{session_id}", s.handleSession)
	r.Get("/sessions", s.handleSessions)
	r.Post("/reset", s.handleReset)
	r.Get("/agents", s.handleAgents)
	r.Get("/demo", s.handleDemo)

	return r
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiErrorBody struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, code int, errCode, message string) {
	writeJSON(w, code, apiErrorBody{Error: apiError{Code: errCode, Message: message}})
}
