package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/uaszones/internal/config"
	"github.com/woozymasta/uaszones/internal/zone"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Session *zone.Session
	Config  *config.Config
	Title   string
}

// NewServerContext initializes the context for one interactive session.
func NewServerContext(session *zone.Session, cfg *config.Config, title string) *ServerContext {
	log.Info().
		Int("zones_loaded", len(session.Current().Features)).
		Str("filtered_file", cfg.Output.Filtered).
		Msg("Initializing server context")

	return &ServerContext{
		Session: session,
		Config:  cfg,
		Title:   title,
	}
}

// Routes wires the handlers into a mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/filter", s.HandleFilter)
	mux.HandleFunc("/reset", s.HandleReset)
	mux.HandleFunc("/", s.HandleIndex)

	return mux
}
