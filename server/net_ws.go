package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"bossarena/protocol"
)

// maxWSMessage 单条 WebSocket 消息上限
const maxWSMessage = 1 << 20 // 1MB

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：升级后按二进制字节流处理，帧格式与 TCP 完全一致
func HandleWS(relay *Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			relay.log.Warnw("upgrade error", "remote", r.RemoteAddr, "err", err)
			return
		}
		ws.SetReadLimit(maxWSMessage)

		stream := protocol.NewWSStream(ws)
		id := relay.Accept(NewStreamConn(stream, relay.cfg.WriteTimeout), r.RemoteAddr)
		go relay.Serve(id, stream)
	}
}
