package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pspoerri/geotiles/internal/tilecache"
)

var statsUpgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	HandshakeTimeout: 10 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

type statsFrame struct {
	CacheSize    int64   `json:"cache_size"`
	MaxCache     int64   `json:"max_cache"`
	CachePercent float64 `json:"cache_percent"`
	GrowthStr    string  `json:"growth_str"`
	Speed        float64 `json:"speed"`
	Efficiency   float64 `json:"efficiency"`
	RAMRecommend int64   `json:"ram_recommend"`
}

// handleStatsWS serves GET /stats/ws: a WebSocket that pushes a stats frame
// once per second for as long as the client stays connected (spec.md §6).
func (s *Server) handleStatsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := statsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("stats websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	prevBytes := s.cache.SizeBytes()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			frame := s.buildStatsFrame(prevBytes)
			prevBytes = s.cache.SizeBytes()
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}
}

func (s *Server) buildStatsFrame(prevBytes int64) statsFrame {
	curBytes := s.cache.SizeBytes()
	maxBytes := s.cache.MaxBytes()

	var percent float64
	if maxBytes > 0 {
		percent = 100 * float64(curBytes) / float64(maxBytes)
	}

	growth := curBytes - prevBytes
	growthStr := fmt.Sprintf("%+d B/s", growth)

	ramRecommend, _ := tilecache.AutoSizeBytes(tilecache.DefaultRAMFraction)

	return statsFrame{
		CacheSize:    curBytes,
		MaxCache:     maxBytes,
		CachePercent: percent,
		GrowthStr:    growthStr,
		Speed:        s.cache.Stats().Speed(),
		Efficiency:   s.cache.Stats().HitRate(),
		RAMRecommend: ramRecommend,
	}
}
