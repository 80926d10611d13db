package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"shielded-stats-backend/internal/format"
)

// handleIndex serves the dashboard. Clients asking for JSON get the raw
// machine record with exact atomic-unit figures; everyone else gets the
// rendered HTML page built from the formatted record.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	raw, err := s.builder.BuildIndex(r.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to build index")
		http.Error(w, "failed to gather statistics", http.StatusBadGateway)
		return
	}

	if acceptsJSON(r) {
		writeJSON(w, raw)
		return
	}

	formatted, err := format.NewIndex(s.registry, raw)
	if err != nil {
		s.log.WithError(err).Error("failed to format index")
		http.Error(w, "failed to format statistics", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, formatted); err != nil {
		s.log.WithError(err).Error("failed to render index template")
	}
}

// handleAPIIndex always serves the machine record.
func (s *Server) handleAPIIndex(w http.ResponseWriter, r *http.Request) {
	raw, err := s.builder.BuildIndex(r.Context())
	if err != nil {
		s.log.WithError(err).Error("failed to build index")
		http.Error(w, "failed to gather statistics", http.StatusBadGateway)
		return
	}
	writeJSON(w, raw)
}

// handleHealth reports liveness and the subscriber count.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
		"assets":  s.registry.Len(),
	})
}

// handleWebSocket upgrades to the live stats feed.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleUpgrade(w, r)
}

// acceptsJSON reports whether the client asked for JSON over HTML.
func acceptsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
