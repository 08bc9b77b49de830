package api

import (
	"encoding/json"
	"net/http"
)

// StatusResponse summarizes the server's live state for operators
type StatusResponse struct {
	Players        int     `json:"players"`
	Clients        int     `json:"clients"`
	StageStarted   bool    `json:"stage_started"`
	StageCompleted bool    `json:"stage_completed"`
	TickIntervalMS float64 `json:"tick_interval_ms"`
}

func statusHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round := cfg.Phase.Snapshot()
		writeJSON(w, http.StatusOK, StatusResponse{
			Players:        cfg.Registry.Count(),
			Clients:        cfg.Hub.ClientCount(),
			StageStarted:   round.Started,
			StageCompleted: round.Completed,
			TickIntervalMS: float64(cfg.Broadcaster.Interval().Microseconds()) / 1000.0,
		})
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
