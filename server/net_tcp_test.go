package server

import (
	"net"
	"testing"
	"time"

	"bossarena/protocol"
)

func TestListenerRelaysBetweenTCPClients(t *testing.T) {
	r := newTestRelay()
	l, err := Listen("127.0.0.1:0", r)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- l.Serve() }()

	a, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatalf("dial a: %v", err)
	}
	defer a.Close()
	b, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatalf("dial b: %v", err)
	}
	defer b.Close()
	bIn := readAll(b)

	// a 发言前两条连接都必须已注册
	deadline := time.Now().Add(2 * time.Second)
	for r.PeerCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("peers = %d", r.PeerCount())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := a.Write(frameOf(t, protocol.PlayerJoined{ID: 42})); err != nil {
		t.Fatalf("write: %v", err)
	}
	expect(t, bIn, protocol.PlayerJoined{ID: 42})

	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not return")
	}
}
