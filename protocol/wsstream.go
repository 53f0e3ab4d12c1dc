package protocol

import (
	"io"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sasha-s/go-deadlock"
)

// WSStream 在 WebSocket 上承载分帧字节流；读取时拼接二进制消息，
// 所以一帧可能跨多条 WebSocket 消息，也可能与其他帧共享一条
type WSStream struct {
	conn *websocket.Conn
	r    io.Reader
	wmu  deadlock.Mutex
}

func NewWSStream(conn *websocket.Conn) *WSStream {
	return &WSStream{conn: conn}
}

func (s *WSStream) Read(p []byte) (int, error) {
	for {
		if s.r == nil {
			mt, r, err := s.conn.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			if mt != websocket.BinaryMessage {
				continue
			}
			s.r = r
		}
		n, err := s.r.Read(p)
		if err == io.EOF {
			s.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

// Write 以一条二进制消息发送 p，可并发调用
func (s *WSStream) Write(p []byte) (int, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *WSStream) Close() error {
	return s.conn.Close()
}

// SetWriteDeadline 限定下一次 Write 的时限
func (s *WSStream) SetWriteDeadline(t time.Time) error {
	return s.conn.SetWriteDeadline(t)
}
