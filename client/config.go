package client

import "time"

// Config 客户端网络与帧循环配置
type Config struct {
	// Addr 中继地址；host:port 走 TCP，ws:// 或 wss:// 走 WebSocket
	Addr string
	// QueueSize 入站与出站队列容量
	QueueSize    int
	WriteTimeout time.Duration
	// CloseTimeout 关闭时等待出站队列写完（含 Leave）的上限
	CloseTimeout time.Duration
	FrameRate    int
}

func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:9000",
		QueueSize:    256,
		WriteTimeout: 2 * time.Second,
		CloseTimeout: 500 * time.Millisecond,
		FrameRate:    60,
	}
}
