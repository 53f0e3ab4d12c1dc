package game

// AreaAttack Boss 地面打击的表现；伤害只在出现时结算一次，之后只播放动画
type AreaAttack struct {
	X, Y     float32
	Elapsed  float32
	Duration float32
}

func NewAreaAttack(x, y float32) AreaAttack {
	return AreaAttack{X: x, Y: y, Duration: AreaAttackDuration}
}

// Update 返回是否结束
func (a *AreaAttack) Update(dt float32) bool {
	a.Elapsed += dt
	return a.Elapsed >= a.Duration
}

// Progress 在生命周期内从 0 走到 1
func (a *AreaAttack) Progress() float32 {
	return clamp(a.Elapsed/a.Duration, 0, 1)
}

func (a *AreaAttack) AffectsPoint(x, y float32) bool {
	return distance(a.X, a.Y, x, y) <= AreaAttackRadius
}

func (a *AreaAttack) Damage() uint32 { return AreaAttackDamage }

// DamageIndicator 向上飘并淡出的伤害数字，仅用于表现
type DamageIndicator struct {
	X, Y       float32
	Amount     uint32
	Elapsed    float32
	Duration   float32
	FromPlayer bool
}

func NewDamageIndicator(x, y float32, amount uint32, fromPlayer bool) DamageIndicator {
	return DamageIndicator{X: x, Y: y, Amount: amount, Duration: IndicatorDuration, FromPlayer: fromPlayer}
}

func (d *DamageIndicator) Update(dt float32) bool {
	d.Elapsed += dt
	d.Y -= IndicatorFloatSpeed * dt
	return d.Elapsed >= d.Duration
}

func (d *DamageIndicator) Progress() float32 {
	return clamp(d.Elapsed/d.Duration, 0, 1)
}
