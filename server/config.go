package server

import "time"

// Config 中继服务配置
type Config struct {
	Addr     string // TCP 帧流监听地址
	HTTPAddr string // /ws、/metrics、/admin 所在的 HTTP 地址
	// WriteTimeout 单次帧写出的超时，超时即视为写失败并驱逐连接
	WriteTimeout time.Duration
	// JoinX/JoinY 收到 Join 时为尚未上报位置的玩家建档的坐标（场地中心）
	JoinX, JoinY float32
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Addr:         ":9000",
		HTTPAddr:     ":9080",
		WriteTimeout: 5 * time.Second,
		JoinX:        400,
		JoinY:        300,
	}
}

// ApplyEnv 用环境变量覆盖监听地址：ARENA_ADDR、ARENA_HTTP
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("ARENA_ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv("ARENA_HTTP"); v != "" {
		c.HTTPAddr = v
	}
}
