package client

import (
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"bossarena/protocol"
)

// NetClient 与中继之间的连接：读协程把帧解码后送入有界入站队列，
// 写协程从出站队列取消息编码写出。模拟线程只和两个队列打交道
type NetClient struct {
	cfg  Config
	conn io.ReadWriteCloser
	log  *zap.SugaredLogger

	incoming chan protocol.Message
	send     chan protocol.Message

	stop       chan struct{}
	done       chan struct{}
	writerDone chan struct{}
	stopOnce   sync.Once
	doneOnce   sync.Once

	dropped atomic.Int64
}

// Dial 按地址形式选择 TCP 或 WebSocket 建立连接
func Dial(ctx context.Context, cfg Config, log *zap.SugaredLogger) (*NetClient, error) {
	var conn io.ReadWriteCloser
	if strings.HasPrefix(cfg.Addr, "ws://") || strings.HasPrefix(cfg.Addr, "wss://") {
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.Addr, nil)
		if err != nil {
			return nil, err
		}
		conn = protocol.NewWSStream(ws)
	} else {
		var d net.Dialer
		c, err := d.DialContext(ctx, "tcp", cfg.Addr)
		if err != nil {
			return nil, err
		}
		conn = c
	}
	return NewNetClient(conn, cfg, log), nil
}

// NewNetClient 在已建立的字节流上启动读写协程
func NewNetClient(conn io.ReadWriteCloser, cfg Config, log *zap.SugaredLogger) *NetClient {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	c := &NetClient{
		cfg:        cfg,
		conn:       conn,
		log:        log,
		incoming:   make(chan protocol.Message, cfg.QueueSize),
		send:       make(chan protocol.Message, cfg.QueueSize),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	go c.readPump()
	go c.writePump()
	return c
}

// Incoming 入站消息队列，供 World.Drain 消费
func (c *NetClient) Incoming() <-chan protocol.Message { return c.incoming }

// Done 连接断开后关闭
func (c *NetClient) Done() <-chan struct{} { return c.done }

// Dropped 因出站队列已满而丢弃的消息数
func (c *NetClient) Dropped() int64 { return c.dropped.Load() }

// Send 将消息压入出站队列（非阻塞，满则丢弃），实现 game.Outbox
func (c *NetClient) Send(m protocol.Message) {
	select {
	case c.send <- m:
	default:
		// 满则丢弃，只在第一次时记日志
		if c.dropped.Add(1) == 1 {
			c.log.Warnw("outgoing queue full, dropping messages", "kind", m.Kind())
		}
	}
}

// Close 停止写协程：先尽力写完已排队的消息，超时则直接断开
func (c *NetClient) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	timeout := c.cfg.CloseTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().CloseTimeout
	}
	select {
	case <-c.writerDone:
	case <-time.After(timeout):
		c.log.Warnw("close timed out before queue drained")
		c.shutdown()
	}
	return nil
}

func (c *NetClient) shutdown() {
	c.doneOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump 入站队列满时阻塞，形成对中继的背压
func (c *NetClient) readPump() {
	defer c.shutdown()
	err := protocol.ReadFrames(c.conn, func(frame []byte) {
		m, err := protocol.DecodeFrame(frame)
		if err != nil {
			c.log.Warnw("dropping undecodable frame", "size", len(frame), "err", err)
			return
		}
		select {
		case c.incoming <- m:
		case <-c.done:
		}
	})
	if err != nil {
		c.log.Infow("connection read ended", "err", err)
		return
	}
	c.log.Infow("relay closed the connection")
}

func (c *NetClient) writePump() {
	defer close(c.writerDone)
	for {
		select {
		case m := <-c.send:
			if err := c.write(m); err != nil {
				c.log.Warnw("write failed", "kind", m.Kind(), "err", err)
				c.shutdown()
				return
			}
		case <-c.stop:
			c.flush()
			c.shutdown()
			return
		case <-c.done:
			return
		}
	}
}

func (c *NetClient) flush() {
	for {
		select {
		case m := <-c.send:
			if err := c.write(m); err != nil {
				return
			}
		default:
			return
		}
	}
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

func (c *NetClient) write(m protocol.Message) error {
	frame, err := protocol.EncodeFrame(m)
	if err != nil {
		c.log.Errorw("encode failed", "kind", m.Kind(), "err", err)
		return nil
	}
	if d, ok := c.conn.(writeDeadliner); ok && c.cfg.WriteTimeout > 0 {
		_ = d.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
	_, err = c.conn.Write(frame)
	return err
}
