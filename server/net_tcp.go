package server

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
)

// Listener TCP 接入：每个连接一个读协程，写由广播同步完成
type Listener struct {
	relay *Relay
	ln    net.Listener
	log   *zap.SugaredLogger

	wg    sync.WaitGroup
	mu    deadlock.Mutex
	conns map[net.Conn]struct{}
}

// Listen 在 addr 上监听 TCP
func Listen(addr string, relay *Relay) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{relay: relay, ln: ln, log: relay.log, conns: make(map[net.Conn]struct{})}, nil
}

func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Serve 接受连接直到 Close；正常关闭时返回 nil
func (l *Listener) Serve() error {
	l.log.Infow("relay listening", "addr", l.ln.Addr().String())
	var backoff time.Duration
	for {
		c, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				backoff = nextBackoff(backoff)
				l.log.Warnw("accept error, retrying", "err", err, "backoff", backoff)
				time.Sleep(backoff)
				continue
			}
			return err
		}
		backoff = 0
		l.track(c, true)

		id := l.relay.Accept(NewStreamConn(c, l.relay.cfg.WriteTimeout), c.RemoteAddr().String())
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			defer l.track(c, false)
			l.relay.Serve(id, c)
		}()
	}
}

// Close 停止接入并断开所有连接，等待读协程退出
func (l *Listener) Close() error {
	err := l.ln.Close()
	l.mu.Lock()
	for c := range l.conns {
		_ = c.Close()
	}
	l.mu.Unlock()
	l.wg.Wait()
	return err
}

func (l *Listener) track(c net.Conn, add bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if add {
		l.conns[c] = struct{}{}
	} else {
		delete(l.conns, c)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}
