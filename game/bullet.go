package game

// BossOwnerID Boss 子弹携带的所有者 id
const BossOwnerID uint32 = 0

type Bullet struct {
	X, Y     float32
	VX, VY   float32
	Lifetime float32
	OwnerID  uint32
	FromBoss bool
}

func NewPlayerBullet(owner uint32, x, y, dirX, dirY float32) Bullet {
	return Bullet{
		X:        x,
		Y:        y,
		VX:       dirX * PlayerBulletSpeed,
		VY:       dirY * PlayerBulletSpeed,
		Lifetime: PlayerBulletLifetime,
		OwnerID:  owner,
	}
}

func NewBossBullet(x, y, dirX, dirY float32) Bullet {
	return Bullet{
		X:        x,
		Y:        y,
		VX:       dirX * BossBulletSpeed,
		VY:       dirY * BossBulletSpeed,
		Lifetime: BossBulletLifetime,
		OwnerID:  BossOwnerID,
		FromBoss: true,
	}
}

// Update 移动子弹，返回是否过期或出界
func (b *Bullet) Update(dt float32) bool {
	b.X += b.VX * dt
	b.Y += b.VY * dt
	b.Lifetime -= dt
	return b.Lifetime <= 0 || b.OutOfBounds()
}

func (b *Bullet) OutOfBounds() bool {
	return b.X < 0 || b.X > ArenaWidth || b.Y < 0 || b.Y > ArenaHeight
}

func (b *Bullet) Radius() float32 {
	if b.FromBoss {
		return BossBulletRadius
	}
	return BulletRadius
}

// CollidesWith 含边界：恰好相切也算命中
func (b *Bullet) CollidesWith(x, y, targetRadius float32) bool {
	return distance(b.X, b.Y, x, y) <= b.Radius()+targetRadius
}
