package game

import "math/rand"

// BossState Boss 的运动状态；护盾叠加在空闲、移动和冲刺之上，单独记录
type BossState uint8

const (
	BossIdle BossState = iota
	BossMoving
	BossDashing
	BossDead
)

func (s BossState) String() string {
	switch s {
	case BossIdle:
		return "idle"
	case BossMoving:
		return "moving"
	case BossDashing:
		return "dashing"
	case BossDead:
		return "dead"
	}
	return "unknown"
}

type bossTimers struct {
	shoot float32
	move  float32
	power float32
	dash  float32
}

type Boss struct {
	X, Y      float32
	Health    uint32
	MaxHealth uint32

	state   BossState
	timers  bossTimers
	respawn float32

	shielded bool
	shieldT  float32

	targetX, targetY float32
	dashX, dashY     float32
}

// NewBoss 在出生点创建满血 Boss
func NewBoss() *Boss {
	b := &Boss{MaxHealth: BossMaxHealth}
	b.RespawnAt(ArenaWidth/2, BossSpawnY)
	return b
}

func (b *Boss) State() BossState { return b.state }
func (b *Boss) Alive() bool { return b.state != BossDead }
func (b *Boss) Dashing() bool { return b.state == BossDashing }
func (b *Boss) ShieldActive() bool { return b.shielded }

// Target 非冲刺时的移动目标
func (b *Boss) Target() (float32, float32) { return b.targetX, b.targetY }

// Update 推进计时器、护盾与移动；targets 为可选作移动目标的玩家。
// 死亡的 Boss 只累计复活时间
func (b *Boss) Update(dt float32, targets []*Player, rng *rand.Rand) {
	if b.state == BossDead {
		b.respawn += dt
		return
	}

	b.timers.shoot += dt
	b.timers.move += dt
	b.timers.power += dt
	b.timers.dash += dt

	if b.shielded {
		b.shieldT += dt
		if b.shieldT >= BossShieldDuration {
			b.DropShield()
		}
	}

	if b.state == BossDashing {
		b.updateDash(dt)
		return
	}

	if b.timers.move >= BossMoveInterval {
		if p := NearestAlive(targets, b.X, b.Y); p != nil {
			b.targetNear(p, rng)
		}
		b.timers.move = 0
	}
	b.moveTowardTarget(dt)
}

func (b *Boss) updateDash(dt float32) {
	x, y, d := stepToward(b.X, b.Y, b.dashX, b.dashY, BossDashSpeed*dt)
	if d > BossDashStopDistance {
		b.X, b.Y = x, y
		return
	}
	b.state = BossIdle
	b.timers.dash = 0
}

func (b *Boss) targetNear(p *Player, rng *rand.Rand) {
	ox := (rng.Float32()*2 - 1) * BossMovementVariance
	oy := (rng.Float32()*2 - 1) * BossMovementVariance
	b.targetX = clamp(p.X+ox, BossEdgeMargin, ArenaWidth-BossEdgeMargin)
	b.targetY = clamp(p.Y+oy, BossEdgeMargin, ArenaHeight-BossEdgeMargin)
}

func (b *Boss) moveTowardTarget(dt float32) {
	x, y, d := stepToward(b.X, b.Y, b.targetX, b.targetY, BossSpeed*dt)
	if d > BossArriveDistance {
		b.X, b.Y = x, y
		b.state = BossMoving
		return
	}
	b.state = BossIdle
}

func (b *Boss) ShouldShoot() bool {
	return b.Alive() && b.timers.shoot >= BossShootInterval
}

func (b *Boss) ShouldUsePower() bool {
	return b.Alive() && !b.Dashing() && b.timers.power >= BossPowerInterval
}

func (b *Boss) ShouldDash() bool {
	return b.Alive() && !b.Dashing() && b.timers.dash >= BossDashInterval
}

func (b *Boss) ShouldRespawn() bool {
	return b.state == BossDead && b.respawn >= BossRespawnTime
}

func (b *Boss) ResetShootTimer() { b.timers.shoot = 0 }
func (b *Boss) ResetPowerTimer() { b.timers.power = 0 }

// TakeDamage 返回这一击是否击杀；护盾期间或已死亡时无效果
func (b *Boss) TakeDamage(amount uint32) bool {
	if !b.Alive() || b.shielded {
		return false
	}
	if b.Health <= amount {
		b.Kill()
		return true
	}
	b.Health -= amount
	return false
}

// SetHealth 应用其他客户端宣告的血量
func (b *Boss) SetHealth(h uint32) {
	if h > b.MaxHealth {
		h = b.MaxHealth
	}
	b.Health = h
}

// Kill 进入死亡状态；技能计时器保持原值直到下次复活
func (b *Boss) Kill() {
	b.Health = 0
	b.state = BossDead
	b.respawn = 0
	b.shielded = false
	b.shieldT = 0
}

// ActivateShield 开启护盾；已开启时保留剩余时间，回显的宣告不会延长护盾
func (b *Boss) ActivateShield() {
	if !b.Alive() || b.shielded {
		return
	}
	b.shielded = true
	b.shieldT = 0
}

func (b *Boss) DropShield() {
	b.shielded = false
	b.shieldT = 0
}

// StartDash 以冲刺速度冲向 (x, y)
func (b *Boss) StartDash(x, y float32) {
	if !b.Alive() {
		return
	}
	b.state = BossDashing
	b.dashX = x
	b.dashY = y
	b.timers.dash = 0
}

// Respawn 在出生点重置 Boss
func (b *Boss) Respawn() {
	b.RespawnAt(ArenaWidth/2, BossSpawnY)
}

// RespawnAt 在 (x, y) 完全重置 Boss
func (b *Boss) RespawnAt(x, y float32) {
	b.X, b.Y = x, y
	b.Health = b.MaxHealth
	b.state = BossIdle
	b.timers = bossTimers{}
	b.respawn = 0
	b.shielded = false
	b.shieldT = 0
	b.targetX, b.targetY = x, y
	b.dashX, b.dashY = x, y
}

// PowerWarning 距下次技能的秒数，仅在预警窗口内非零
func (b *Boss) PowerWarning() float32 {
	return b.warning(BossPowerInterval - b.timers.power)
}

// DashWarning 冲刺的预警，冲刺进行中为 0
func (b *Boss) DashWarning() float32 {
	if b.Dashing() {
		return 0
	}
	return b.warning(BossDashInterval - b.timers.dash)
}

func (b *Boss) warning(left float32) float32 {
	if !b.Alive() || left <= 0 || left > WarningWindow {
		return 0
	}
	return left
}

// RespawnRemaining 死亡 Boss 距复活的剩余时间
func (b *Boss) RespawnRemaining() float32 {
	if b.Alive() {
		return 0
	}
	left := BossRespawnTime - b.respawn
	if left < 0 {
		return 0
	}
	return left
}

func (b *Boss) DistanceTo(x, y float32) float32 {
	return distance(b.X, b.Y, x, y)
}
