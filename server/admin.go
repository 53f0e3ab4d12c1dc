package server

import (
	"encoding/json"
	"net/http"
)

// HandleMetrics 输出中继运行指标
// GET /metrics
func HandleMetrics(relay *Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		payload := map[string]any{
			"peers":   relay.PeerCount(),
			"metrics": relay.Metrics().Snapshot(),
		}
		writeJSON(w, payload)
	}
}

// HandlePlayers 输出位置缓存
// GET /admin/players
func HandlePlayers(relay *Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, map[string]any{"players": relay.Positions()})
	}
}

// HandleHealth 存活探针
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
