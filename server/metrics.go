package server

import (
	"sync/atomic"
)

// RelayMetrics 记录中继运行期的关键指标（用于监控与调试）
type RelayMetrics struct {
	PeersAccepted     int64 // 累计接入的连接数
	PeersDisconnected int64 // 累计断开的连接数
	PeersEvicted      int64 // 因写失败被驱逐的连接数
	FramesIn          int64 // 收到的帧数
	FramesRelayed     int64 // 成功写出的帧数（按接收方计）
	DecodeErrors      int64 // 无法解码而丢弃的帧数
	JoinReplays       int64 // 完成的加入回放次数
}

func (m *RelayMetrics) IncAccepted()     { atomic.AddInt64(&m.PeersAccepted, 1) }
func (m *RelayMetrics) IncDisconnected() { atomic.AddInt64(&m.PeersDisconnected, 1) }
func (m *RelayMetrics) IncEvicted()      { atomic.AddInt64(&m.PeersEvicted, 1) }
func (m *RelayMetrics) IncFramesIn()     { atomic.AddInt64(&m.FramesIn, 1) }
func (m *RelayMetrics) IncRelayed()      { atomic.AddInt64(&m.FramesRelayed, 1) }
func (m *RelayMetrics) IncDecodeErrors() { atomic.AddInt64(&m.DecodeErrors, 1) }
func (m *RelayMetrics) IncJoinReplays()  { atomic.AddInt64(&m.JoinReplays, 1) }

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RelayMetrics) Snapshot() map[string]any {
	return map[string]any{
		"peers_accepted":     atomic.LoadInt64(&m.PeersAccepted),
		"peers_disconnected": atomic.LoadInt64(&m.PeersDisconnected),
		"peers_evicted":      atomic.LoadInt64(&m.PeersEvicted),
		"frames_in":          atomic.LoadInt64(&m.FramesIn),
		"frames_relayed":     atomic.LoadInt64(&m.FramesRelayed),
		"decode_errors":      atomic.LoadInt64(&m.DecodeErrors),
		"join_replays":       atomic.LoadInt64(&m.JoinReplays),
	}
}
