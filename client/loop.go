package client

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bossarena/game"
	"bossarena/protocol"
)

// ErrDisconnected 与中继的连接中断
var ErrDisconnected = errors.New("client: relay connection lost")

// maxFrameDt 单帧 dt 上限，避免卡顿后一次推进过多
const maxFrameDt float32 = 0.1

// Presenter 每帧接收只读快照
type Presenter interface {
	Draw(s game.Snapshot)
}

// InputSource 每帧被轮询一次，返回当帧意图
type InputSource interface {
	Poll() game.Input
}

// Loop 客户端帧循环（单线程推进世界）
type Loop struct {
	World *game.World
	Input InputSource
	View  Presenter
	// Incoming/Disconnected 为 nil 时即离线单机模式
	Incoming     <-chan protocol.Message
	Disconnected <-chan struct{}
	FrameRate    int
	Log          *zap.SugaredLogger
}

// Run 核心循环：输入 → 更新世界 → 应用入站消息 → 绘制，直到退出
func (l *Loop) Run(ctx context.Context) error {
	rate := l.FrameRate
	if rate <= 0 {
		rate = DefaultConfig().FrameRate
	}
	log := l.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	last := time.Now()
	var frames int64
	for {
		select {
		case <-ctx.Done():
			l.World.Leave()
			return ctx.Err()
		case <-l.Disconnected:
			log.Warnw("relay connection lost", "frames", frames)
			return ErrDisconnected
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if dt > maxFrameDt {
				dt = maxFrameDt
			}

			in := l.Input.Poll()
			if in.Quit {
				l.World.Leave()
				log.Infow("quit requested", "frames", frames)
				return nil
			}
			if n := l.World.Step(in, dt, l.Incoming); n == game.MaxMessagesPerStep {
				log.Debugw("inbound backlog carried to next frame")
			}
			l.View.Draw(l.World.Snapshot())
			frames++
		}
	}
}
