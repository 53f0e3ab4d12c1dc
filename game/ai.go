package game

import (
	"math"

	"bossarena/protocol"
)

// Power Boss 周期性技能
type Power int

const (
	PowerMultiShot Power = iota
	PowerAreaAttack
	PowerShield
	powerCount
)

// updateBoss 驱动 Boss 状态机，并在时机满足时释放技能、射击或重生
func (w *World) updateBoss(dt float32) {
	targets := w.alivePlayers()
	b := w.Boss
	b.Update(dt, targets, w.rng)

	if b.ShouldRespawn() {
		b.Respawn()
		w.cues.Cue(CueRespawn)
		w.out.Send(protocol.BossSpawned{X: b.X, Y: b.Y})
		w.log.Debugw("boss respawned", "x", b.X, "y", b.Y)
		return
	}
	if !b.Alive() || len(targets) == 0 {
		return
	}

	if b.ShouldUsePower() {
		w.usePower(Power(w.rng.Intn(int(powerCount))), targets)
		b.ResetPowerTimer()
	}

	if b.ShouldDash() {
		if t := NearestAlive(targets, b.X, b.Y); t != nil {
			b.StartDash(t.X, t.Y)
			w.cues.Cue(CueDash)
			w.out.Send(protocol.BossDashed{TargetX: t.X, TargetY: t.Y})
		}
	}

	// 冲刺中不射击；瞄准失败时计时器保持，下一帧重试
	if b.ShouldShoot() && !b.Dashing() {
		if t := NearestAlive(targets, b.X, b.Y); t != nil {
			if dx, dy, ok := normalize(t.X-b.X, t.Y-b.Y); ok {
				w.emit(protocol.BossShot{X: b.X, Y: b.Y, DirX: dx, DirY: dy})
				b.ResetShootTimer()
			}
		}
	}
}

func (w *World) usePower(p Power, targets []*Player) {
	b := w.Boss
	switch p {
	case PowerMultiShot:
		t := NearestAlive(targets, b.X, b.Y)
		if t == nil {
			return
		}
		dirs := FanDirections(b.X, b.Y, t.X, t.Y)
		if dirs == nil {
			return
		}
		w.emit(protocol.BossMultiShot{X: b.X, Y: b.Y, Directions: dirs})
	case PowerAreaAttack:
		t := NearestAlive(targets, b.X, b.Y)
		if t == nil {
			return
		}
		w.emit(protocol.BossAreaAttack{CenterX: t.X, CenterY: t.Y})
	case PowerShield:
		b.ActivateShield()
		w.cues.Cue(CuePower)
		w.out.Send(protocol.BossShielded{Active: true})
	}
	w.log.Debugw("boss power", "power", int(p))
}

// FanDirections 返回以瞄准方向为中心、左右对称展开的散射方向。
// 中间一发与直线瞄准方向完全一致；起终点重合时返回 nil
func FanDirections(fromX, fromY, toX, toY float32) []protocol.Direction {
	ax, ay, ok := normalize(toX-fromX, toY-fromY)
	if !ok {
		return nil
	}
	half := MultiShotCount / 2
	dirs := make([]protocol.Direction, 0, MultiShotCount)
	for i := -half; i <= half; i++ {
		if i == 0 {
			dirs = append(dirs, protocol.Direction{X: ax, Y: ay})
			continue
		}
		sin, cos := math.Sincos(float64(i) * MultiShotSpread)
		x := float64(ax)*cos - float64(ay)*sin
		y := float64(ax)*sin + float64(ay)*cos
		dirs = append(dirs, protocol.Direction{X: float32(x), Y: float32(y)})
	}
	return dirs
}

func (w *World) alivePlayers() []*Player {
	alive := make([]*Player, 0, len(w.Remotes)+1)
	if w.Local.Alive {
		alive = append(alive, w.Local)
	}
	for _, p := range w.Remotes {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}
