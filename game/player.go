package game

import "math/rand"

// Player 本地玩家，或由同步维护的远端副本
type Player struct {
	ID uint32
	X  float32
	Y  float32
	// 朝向为单位向量，初始朝上
	FacingX float32
	FacingY float32

	Health       uint32
	MaxHealth    uint32
	Alive        bool
	RespawnTimer float32
	Kills        uint32
}

func NewPlayer(id uint32, x, y float32) *Player {
	return &Player{
		ID:        id,
		X:         x,
		Y:         y,
		FacingX:   0,
		FacingY:   -1,
		Health:    PlayerMaxHealth,
		MaxHealth: PlayerMaxHealth,
		Alive:     true,
	}
}

// NewPlayerAtCenter 在场地中央创建玩家
func NewPlayerAtCenter(id uint32) *Player {
	return NewPlayer(id, ArenaWidth/2, ArenaHeight/2)
}

// UpdateRespawn 死亡期间推进复活倒计时
func (p *Player) UpdateRespawn(dt float32) {
	if !p.Alive {
		p.RespawnTimer += dt
	}
}

func (p *Player) CanRespawn() bool {
	return !p.Alive && p.RespawnTimer >= PlayerRespawnTime
}

// Respawn 在场地下半区随机位置复活
func (p *Player) Respawn(rng *rand.Rand) {
	p.X = PlayerRadius + rng.Float32()*(ArenaWidth-2*PlayerRadius)
	p.Y = ArenaHeight/2 + rng.Float32()*(ArenaHeight/2-PlayerRadius)
	p.Revive(p.X, p.Y)
}

// Revive 在 (x, y) 满血复活
func (p *Player) Revive(x, y float32) {
	p.X = x
	p.Y = y
	p.Health = p.MaxHealth
	p.Alive = true
	p.RespawnTimer = 0
}

// MoveBy 位移并限制在场地内
func (p *Player) MoveBy(dx, dy float32) {
	p.X = clamp(p.X+dx, PlayerRadius, ArenaWidth-PlayerRadius)
	p.Y = clamp(p.Y+dy, PlayerRadius, ArenaHeight-PlayerRadius)
}

// SetFacing 返回朝向是否变化
func (p *Player) SetFacing(x, y float32) bool {
	changed := p.FacingX != x || p.FacingY != y
	p.FacingX = x
	p.FacingY = y
	return changed
}

// TakeDamage 扣血（最低为零），返回这一击是否致死
func (p *Player) TakeDamage(amount uint32) bool {
	if !p.Alive {
		return false
	}
	if amount >= p.Health {
		p.Health = 0
	} else {
		p.Health -= amount
	}
	if p.Health == 0 {
		p.Kill()
		return true
	}
	return false
}

// SetHealth 应用声明的血量；为零即死亡。两次复活之间血量只降不升，
// 过期的较高值被忽略。已死亡的玩家忽略，复活由 Revive/Respawn 负责
func (p *Player) SetHealth(h uint32) {
	if !p.Alive {
		return
	}
	if h == 0 {
		p.Kill()
		return
	}
	p.Health = min(p.Health, h)
}

// Kill 标记死亡并重置复活倒计时
func (p *Player) Kill() {
	p.Health = 0
	p.Alive = false
	p.RespawnTimer = 0
}

func (p *Player) RespawnRemaining() float32 {
	if p.Alive {
		return 0
	}
	r := PlayerRespawnTime - p.RespawnTimer
	if r < 0 {
		return 0
	}
	return r
}

func (p *Player) DistanceTo(x, y float32) float32 {
	return distance(p.X, p.Y, x, y)
}

// NearestAlive 返回离 (x, y) 最近的存活玩家；距离相同时切片中靠前者优先，
// 无人存活返回 nil
func NearestAlive(players []*Player, x, y float32) *Player {
	var best *Player
	var bestD float32
	for _, p := range players {
		if p == nil || !p.Alive {
			continue
		}
		d := p.DistanceTo(x, y)
		if best == nil || d < bestD {
			best, bestD = p, d
		}
	}
	return best
}
