// Package server exposes the aggregate statistics over HTTP: a rendered
// dashboard, a JSON API and the WebSocket feed.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"shielded-stats-backend/internal/logger"
	"shielded-stats-backend/internal/registry"
	"shielded-stats-backend/internal/ws"
	"shielded-stats-backend/models"
)

//go:embed templates/index.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// IndexBuilder produces the raw aggregate record for one request.
type IndexBuilder interface {
	BuildIndex(ctx context.Context) (*models.IndexStats, error)
}

// Server is the HTTP front of the backend.
type Server struct {
	builder  IndexBuilder
	registry *registry.Registry
	hub      *ws.Hub
	tmpl     *template.Template
	log      *logrus.Entry
}

// New creates a server over the given builder and registry.
func New(builder IndexBuilder, reg *registry.Registry, hub *ws.Hub) (*Server, error) {
	// Icon URLs include data: URIs (the placeholder among them), which
	// html/template's URL filter would reject; the registry is trusted
	// static data, so they are passed through explicitly.
	funcs := template.FuncMap{
		"iconURL": func(s string) template.URL { return template.URL(s) },
	}
	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		builder:  builder,
		registry: reg,
		hub:      hub,
		tmpl:     tmpl,
		log:      logger.WithComponent("server"),
	}, nil
}

// Start runs the HTTP server until the context is cancelled, then shuts
// it down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/index", s.handleAPIIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down http server")
		s.hub.Shutdown()
		return srv.Shutdown(context.Background())
	}
}
