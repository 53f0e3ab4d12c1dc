package server

import (
	"io"
	"time"
)

// PeerID 中继为每个连接分配的递增编号，从 1 开始
type PeerID uint32

// noPeer 广播时不排除任何连接
const noPeer PeerID = 0

// Position 位置缓存中的一条记录
type Position struct {
	X, Y float32
}

// PlayerState 管理接口输出的玩家位置
type PlayerState struct {
	ID uint32  `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// Conn 中继眼中的连接写端。Send 必须整帧写出，失败即视为连接不可用
type Conn interface {
	Send(frame []byte) error
	Close() error
}

type peer struct {
	id       PeerID
	conn     Conn
	addr     string
	joinedAt time.Time
}

// binding 连接与其玩家 id 的绑定，由首个 Join/Move 确定
type binding struct {
	player uint32
	set    bool
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// StreamConn 把字节流（TCP 连接或 WSStream）包装为 Conn
type StreamConn struct {
	rw      io.WriteCloser
	timeout time.Duration
}

func NewStreamConn(rw io.WriteCloser, timeout time.Duration) *StreamConn {
	return &StreamConn{rw: rw, timeout: timeout}
}

func (c *StreamConn) Send(frame []byte) error {
	if d, ok := c.rw.(writeDeadliner); ok && c.timeout > 0 {
		_ = d.SetWriteDeadline(time.Now().Add(c.timeout))
	}
	_, err := c.rw.Write(frame)
	return err
}

func (c *StreamConn) Close() error {
	return c.rw.Close()
}
