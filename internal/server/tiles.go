package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pspoerri/geotiles/internal/reader"
)

// handleTile serves GET /tiles/{layer}/{z}/{x}/{y}. The style variant, when
// the request wants a non-default one, is passed as a ?style= query
// parameter (spec.md §9's Open Question (ii): the path carries only layer
// and tile coordinates, so style rides the query string rather than
// overloading the path).
func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	layer := chi.URLParam(r, "layer")
	z, errZ := strconv.Atoi(chi.URLParam(r, "z"))
	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if errZ != nil || errX != nil || errY != nil {
		http.Error(w, "invalid tile coordinates", http.StatusBadRequest)
		return
	}

	style := r.URL.Query().Get("style")
	artifact, err := s.reader.GetTile(layer, style, z, x, y)
	if err != nil {
		if errors.Is(err, reader.ErrLayerNotFound) {
			http.Error(w, fmt.Sprintf("Layer not found: '%s'", layer), http.StatusNotFound)
			return
		}
		// spec.md §7: any other renderer/reader error surfaces as 404 with
		// a textual message; this minimal surface does not distinguish
		// backend failures from missing layers.
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Bytes)
}
