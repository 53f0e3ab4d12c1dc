package server

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"bossarena/protocol"
)

// wsPair 启动 /ws 服务并接入两个 WebSocket 客户端，返回时两者均已登记
func wsPair(t *testing.T, r *Relay) (*protocol.WSStream, *protocol.WSStream) {
	t.Helper()
	srv := httptest.NewServer(HandleWS(r))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	dial := func() *protocol.WSStream {
		c, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		s := protocol.NewWSStream(c)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}
	a := dial()
	b := dial()

	deadline := time.Now().Add(2 * time.Second)
	for r.PeerCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("peers = %d", r.PeerCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
	return a, b
}

func TestWebSocketPeersShareTheRelay(t *testing.T) {
	r := newTestRelay()
	a, b := wsPair(t, r)
	bIn := readAll(b)

	// 一帧拆成两条 WebSocket 消息，中继按字节流拼接
	frame := frameOf(t, protocol.PositionUpdate{ID: 9, X: 10, Y: 20})
	if _, err := a.Write(frame[:3]); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := a.Write(frame[3:]); err != nil {
		t.Fatalf("write: %v", err)
	}
	expect(t, bIn, protocol.PositionUpdate{ID: 9, X: 10, Y: 20})

	if pos := r.Positions(); len(pos) != 1 || pos[0].ID != 9 {
		t.Fatalf("positions = %+v", pos)
	}
}

func TestWebSocketConcurrentWritersKeepFramesWhole(t *testing.T) {
	r := newTestRelay()
	a, b := wsPair(t, r)
	bIn := readAll(b)

	const writers, perWriter = 4, 10
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id uint32) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				f, err := protocol.EncodeFrame(protocol.PlayerFacing{ID: id, DirX: 1})
				if err != nil {
					t.Errorf("encode: %v", err)
					return
				}
				if _, err := a.Write(f); err != nil {
					t.Errorf("write: %v", err)
					return
				}
			}
		}(uint32(w + 1))
	}
	wg.Wait()

	for n := 0; n < writers*perWriter; n++ {
		select {
		case m := <-bIn:
			if f, ok := m.(protocol.PlayerFacing); !ok || f.DirX != 1 {
				t.Fatalf("message %d = %#v", n, m)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("received %d of %d frames", n, writers*perWriter)
		}
	}
}
