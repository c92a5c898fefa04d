package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "active",
		"system":          "Careline Multi-Agent Customer Care",
		"version":         version,
		"specialists":     len(s.coordinator.Capabilities()),
		"active_sessions": s.coordinator.SessionCount(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "request body must be JSON with a message field")
		return
	}

	result, err := s.coordinator.SubmitMessage(r.Context(), req.SessionID, req.Message)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, contractx.ErrValidation):
		writeErr(w, http.StatusBadRequest, "invalid_message", err.Error())
	case errors.Is(err, contractx.ErrTimeout):
		writeErr(w, http.StatusGatewayTimeout, "timeout", "request timed out, please try a simpler request")
	default:
		log.Error().Err(err).Msg("chat request failed")
		writeErr(w, http.StatusInternalServerError, "internal_error", "something went wrong processing your message")
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	history, err := s.coordinator.SessionHistory(sessionID)
	if err != nil {
		if errors.Is(err, contractx.ErrSessionNotFound) {
			writeErr(w, http.StatusNotFound, "session_not_found", "session not found or expired")
			return
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("session lookup failed")
		writeErr(w, http.StatusInternalServerError, "internal_error", "could not load session history")
		return
	}

	resp := map[string]any{
		"session_id":          sessionID,
		"conversation_length": len(history),
		"conversation":        history,
	}
	if len(history) > 0 {
		resp["last_activity"] = history[len(history)-1].Timestamp
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	ids := s.coordinator.ActiveSessions()
	writeJSON(w, http.StatusOK, map[string]any{
		"active_sessions": ids,
		"session_count":   len(ids),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	cleared := s.coordinator.ResetAllSessions()
	log.Info().Int("sessions_cleared", cleared).Msg("sessions reset")
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"sessions_cleared": cleared,
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"coordinator": map[string]any{
			"name":        "coordinator",
			"description": "Plans each request and synthesizes specialist responses",
		},
		"specialists": s.coordinator.Capabilities(),
		"execution_modes": []map[string]string{
			{"mode": "sequential", "description": "Specialists run one after another, sharing tool results"},
			{"mode": "parallel", "description": "Specialists run simultaneously on independent aspects"},
			{"mode": "conditional", "description": "Specialists run in dependency order"},
		},
	})
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	demo, err := s.coordinator.RunDemo(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("demo scenario failed")
		writeErr(w, http.StatusInternalServerError, "internal_error", "demo scenario failed")
		return
	}
	writeJSON(w, http.StatusOK, demo)
}
