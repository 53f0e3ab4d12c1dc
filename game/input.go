package game

import "bossarena/protocol"

// Input 一帧内的玩家意图，由表现层采集，在模拟线程中解释
type Input struct {
	// MoveX/MoveY 每个轴取 -1、0、1，各轴独立按速度移动
	MoveX, MoveY float32
	// FacingX/FacingY 为零向量表示朝向不变
	FacingX, FacingY float32
	Fire             bool
	Quit             bool
}

// ApplyInput 处理本地玩家的输入；死亡期间只推进重生倒计时
func (w *World) ApplyInput(in Input, dt float32) {
	p := w.Local
	if !p.Alive {
		p.UpdateRespawn(dt)
		if p.CanRespawn() {
			p.Respawn(w.rng)
			w.cues.Cue(CueRespawn)
			w.out.Send(protocol.PlayerRespawned{ID: p.ID, X: p.X, Y: p.Y})
			w.log.Infow("local player respawned", "x", p.X, "y", p.Y)
		}
		return
	}

	if fx, fy, ok := normalize(in.FacingX, in.FacingY); ok && p.SetFacing(fx, fy) {
		w.out.Send(protocol.PlayerFacing{ID: p.ID, DirX: fx, DirY: fy})
	}

	if in.Fire {
		w.Bullets = append(w.Bullets, NewPlayerBullet(p.ID, p.X, p.Y, p.FacingX, p.FacingY))
		w.cues.Cue(CuePlayerShot)
		w.out.Send(protocol.PlayerShot{ID: p.ID, X: p.X, Y: p.Y, DirX: p.FacingX, DirY: p.FacingY})
	}

	if in.MoveX != 0 || in.MoveY != 0 {
		p.MoveBy(in.MoveX*PlayerSpeed*dt, in.MoveY*PlayerSpeed*dt)
		w.out.Send(protocol.PositionUpdate{ID: p.ID, X: p.X, Y: p.Y})
	}
}
