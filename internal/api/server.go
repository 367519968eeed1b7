// Package api serves generated world state over HTTP. Every endpoint
// is a read-only GET — there is no equivalent of the teacher's admin
// plane (internal/api/server.go's adminOnly bearer-token gate and POST
// /speed, /snapshot, /intervention routes), since nothing in this
// service accepts mutation requests; a world is built once and queried.
// What carries over unchanged is the teacher's mux/corsMiddleware/
// writeJSON wiring and its CORS_ORIGINS env-var convention.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/c1921/worldforge/internal/world"
)

// Server serves a single built world over HTTP.
type Server struct {
	World *world.World
	Port  int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/map", s.handleMap)
	mux.HandleFunc("/api/v1/settlements", s.handleSettlements)
	mux.HandleFunc("/api/v1/settlement/", s.handleSettlementDetail)
	mux.HandleFunc("/api/v1/roads", s.handleRoads)
	mux.HandleFunc("/api/v1/path", s.handlePath)
	mux.HandleFunc("/api/v1/time", s.handleTime)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list to extend the default
// localhost dev-server allowlist.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	date := s.World.CurrentDate()
	writeJSON(w, map[string]any{
		"seed":         s.World.Config.Seed,
		"width":        s.World.Config.Width,
		"height":       s.World.Config.Height,
		"settlements":  len(s.World.Settlements),
		"roads":        len(s.World.Roads),
		"cities":       len(s.World.Cities),
		"islands":      len(s.World.Islands.Areas),
		"time_speed":   s.World.Clock.Speed,
		"total_days":   s.World.Clock.TotalDays,
		"current_date": date,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	hm := s.World.Heightmap
	writeJSON(w, map[string]any{
		"width":     hm.Width,
		"height":    hm.Height,
		"elevation": hm.Cells,
		"island_id": s.World.Islands.IDs,
	})
}

type settlementEntry struct {
	Index          int     `json:"index"`
	Name           string  `json:"name,omitempty"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Elevation      float64 `json:"elevation"`
	Suitability    float64 `json:"suitability"`
	IslandID       int32   `json:"island_id"`
	RoadDegree     int     `json:"road_degree"`
	SecondHopReach int     `json:"second_hop_reach"`
	CityScore      float64 `json:"city_score"`
	Category       string  `json:"category"`
}

func categoryName(c int) string {
	switch c {
	case 2:
		return "city"
	case 1:
		return "town"
	default:
		return "village"
	}
}

func (s *Server) settlementEntry(i int) settlementEntry {
	st := s.World.Settlements[i]
	name := ""
	if i < len(s.World.Names) {
		name = s.World.Names[i]
	}
	return settlementEntry{
		Index: i, Name: name,
		X: st.X, Y: st.Y,
		Elevation: st.Elevation, Suitability: st.Suitability,
		IslandID:       st.IslandID,
		RoadDegree:     st.RoadDegree,
		SecondHopReach: st.SecondHopReach,
		CityScore:      st.CityScore,
		Category:       categoryName(int(st.Category)),
	}
}

func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	out := make([]settlementEntry, len(s.World.Settlements))
	for i := range s.World.Settlements {
		out[i] = s.settlementEntry(i)
	}
	writeJSON(w, out)
}

func (s *Server) handleSettlementDetail(w http.ResponseWriter, r *http.Request) {
	idxStr := strings.TrimPrefix(r.URL.Path, "/api/v1/settlement/")
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(s.World.Settlements) {
		http.Error(w, "unknown settlement index", http.StatusNotFound)
		return
	}
	writeJSON(w, s.settlementEntry(idx))
}

type roadPoint struct {
	X, Y float64
}

func (p roadPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (s *Server) handleRoads(w http.ResponseWriter, r *http.Request) {
	type roadEntry struct {
		A      int         `json:"a"`
		B      int         `json:"b"`
		Length float64     `json:"length"`
		Points []roadPoint `json:"points"`
	}
	out := make([]roadEntry, len(s.World.Roads))
	for i, rd := range s.World.Roads {
		pts := make([]roadPoint, len(rd.Points))
		for j, p := range rd.Points {
			pts[j] = roadPoint{X: p.X, Y: p.Y}
		}
		out[i] = roadEntry{A: rd.A, B: rd.B, Length: rd.Length, Points: pts}
	}
	writeJSON(w, out)
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	from, err1 := strconv.Atoi(r.URL.Query().Get("from"))
	to, err2 := strconv.Atoi(r.URL.Query().Get("to"))
	if err1 != nil || err2 != nil {
		http.Error(w, "from and to query params must be settlement indices", http.StatusBadRequest)
		return
	}

	result := s.World.ShortestPath(from, to)
	if result == nil {
		writeJSON(w, map[string]any{"reachable": false})
		return
	}

	pts := make([]roadPoint, len(result.Polyline))
	for i, p := range result.Polyline {
		pts[i] = roadPoint{X: p.X, Y: p.Y}
	}
	writeJSON(w, map[string]any{
		"reachable": true,
		"nodes":     result.Nodes,
		"distance":  result.Distance,
		"polyline":  pts,
	})
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"total_days": s.World.Clock.TotalDays,
		"speed":      s.World.Clock.Speed,
		"date":       s.World.CurrentDate(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
