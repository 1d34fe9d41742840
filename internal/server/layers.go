package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

type extentJSON struct {
	MinX float64 `json:"minx"`
	MinY float64 `json:"miny"`
	MaxX float64 `json:"maxx"`
	MaxY float64 `json:"maxy"`
}

type layerJSON struct {
	Layer    string                `json:"layer"`
	Style    string                `json:"style"`
	Geometry map[string]extentJSON `json:"geometry"`
}

// handleLayers serves GET /layers: a JSON array of {layer, style, geometry}
// sorted by lower-cased (layer, style), per spec.md §6.
func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	layers := s.reader.ListLayers()

	out := make([]layerJSON, 0, len(layers))
	for _, l := range layers {
		geometry := make(map[string]extentJSON, len(l.CachedGeometry))
		for epsg, g := range l.CachedGeometry {
			geometry[strconv.Itoa(epsg)] = extentJSON{MinX: g.MinX, MinY: g.MinY, MaxX: g.MaxX, MaxY: g.MaxY}
		}
		out = append(out, layerJSON{Layer: l.Name, Style: l.Style, Geometry: geometry})
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Layer), strings.ToLower(out[j].Layer)
		if li != lj {
			return li < lj
		}
		return strings.ToLower(out[i].Style) < strings.ToLower(out[j].Style)
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
