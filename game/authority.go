package game

// DamageAuthority 决定命中如何改变血量；碰撞检测只负责找出命中，
// 数值由这里的实现决定。服务端权威的版本可以替换 TrustingAuthority
type DamageAuthority interface {
	// DamageLocal 对本地玩家造成伤害，返回是否致死
	DamageLocal(p *Player, amount uint32) bool
	// DamageRemote 对远端副本造成伤害，返回新血量
	DamageRemote(p *Player, amount uint32) uint32
	// DamageBoss 对 Boss 造成伤害，返回是否击杀
	DamageBoss(b *Boss, amount uint32) bool
}

// TrustingAuthority 所有命中都按检测结果在本地结算
type TrustingAuthority struct{}

func (TrustingAuthority) DamageLocal(p *Player, amount uint32) bool {
	return p.TakeDamage(amount)
}

func (TrustingAuthority) DamageRemote(p *Player, amount uint32) uint32 {
	p.TakeDamage(amount)
	return p.Health
}

func (TrustingAuthority) DamageBoss(b *Boss, amount uint32) bool {
	return b.TakeDamage(amount)
}
