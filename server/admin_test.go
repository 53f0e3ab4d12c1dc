package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bossarena/protocol"
)

func TestHandlePlayers(t *testing.T) {
	r := newTestRelay()
	id := r.Accept(&fakeConn{}, "a")
	r.HandleFrame(id, frameOf(t, protocol.PositionUpdate{ID: 3, X: 1, Y: 2}))
	r.HandleFrame(id, frameOf(t, protocol.PositionUpdate{ID: 1, X: 4, Y: 5}))

	rec := httptest.NewRecorder()
	HandlePlayers(r)(rec, httptest.NewRequest(http.MethodGet, "/admin/players", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Players []PlayerState `json:"players"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 第一次移动后绑定为玩家 3；两次移动都已缓存
	if len(body.Players) != 2 || body.Players[0].ID != 1 || body.Players[1].ID != 3 {
		t.Fatalf("players = %+v", body.Players)
	}
}

func TestHandleMetrics(t *testing.T) {
	r := newTestRelay()
	r.Accept(&fakeConn{}, "a")

	rec := httptest.NewRecorder()
	HandleMetrics(r)(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	var body struct {
		Peers   int              `json:"peers"`
		Metrics map[string]int64 `json:"metrics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Peers != 1 || body.Metrics["peers_accepted"] != 1 {
		t.Fatalf("body = %+v", body)
	}

	rec = httptest.NewRecorder()
	HandleMetrics(r)(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d", rec.Code)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{"ARENA_ADDR": ":7000"}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Addr != ":7000" || cfg.HTTPAddr != ":9080" {
		t.Fatalf("cfg = %+v", cfg)
	}
}
