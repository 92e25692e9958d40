// Package server handles HTTP requests for the interactive selection flow.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/uaszones/internal/geo"
	"github.com/woozymasta/uaszones/internal/mapgen"
)

// filterRequest is the circle reported by the browser draw control.
// Radius arrives in meters, as leaflet.draw measures it.
type filterRequest struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius float64 `json:"radius"`
}

// HandleIndex renders the current selection as the interactive map page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, err := mapgen.Render(s.Session.Current(), mapgen.Options{
		Title:       s.Title,
		TileURL:     s.Config.Map.TileURL,
		Attribution: s.Config.Map.Attribution,
		Zoom:        s.Config.Map.Zoom,
		Interactive: true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

// HandleFilter applies a drawn circle to the session and persists the
// resulting selection.
func (s *ServerContext) HandleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	filtered, err := s.Session.CircleDrawn(orb.Point{req.Lon, req.Lat}, req.Radius/1000)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, geo.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	log.Info().
		Float64("lat", req.Lat).
		Float64("lon", req.Lon).
		Float64("radius_m", req.Radius).
		Int("zones_matched", len(filtered.Features)).
		Msg("Circle selection applied")

	writeStatus(w, "ok")
}

// HandleReset drops the selection back to the full dataset.
func (s *ServerContext) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.Session.Reset()
	log.Info().Msg("Selection reset")

	writeStatus(w, "ok")
}

func writeStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func writeError(w http.ResponseWriter, code int, err error) {
	log.Error().Err(err).Int("status", code).Msg("Request failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
