package game

import "bossarena/protocol"

// Resolver 每帧对所有子弹做一次碰撞结算。每颗子弹最多命中一次，
// 命中后当帧移除，不会被重复结算
type Resolver struct {
	hit []bool
}

// Resolve 依次检查：Boss 子弹打本地玩家 → 本地子弹打远端玩家 →
// 他人子弹打本地玩家 → 玩家子弹打 Boss
func (r *Resolver) Resolve(w *World) {
	if cap(r.hit) < len(w.Bullets) {
		r.hit = make([]bool, len(w.Bullets))
	}
	r.hit = r.hit[:len(w.Bullets)]
	clear(r.hit)

	for i := range w.Bullets {
		r.hit[i] = r.resolveBullet(w, &w.Bullets[i])
	}

	i := 0
	w.Bullets = retain(w.Bullets, func(*Bullet) bool {
		keep := !r.hit[i]
		i++
		return keep
	})
}

func (r *Resolver) resolveBullet(w *World, b *Bullet) bool {
	local := w.Local

	if b.FromBoss {
		if local.Alive && b.CollidesWith(local.X, local.Y, PlayerRadius) {
			w.damageLocal(BossBulletDamage, false)
			w.cues.Cue(CueHit)
			return true
		}
		return false
	}

	if b.OwnerID == local.ID {
		for _, victim := range w.Remotes {
			if !victim.Alive || !b.CollidesWith(victim.X, victim.Y, PlayerRadius) {
				continue
			}
			health := w.authority.DamageRemote(victim, PvPDamage)
			// 伤害数字由中继回显的 PlayerDamaged 统一显示
			w.out.Send(protocol.PlayerDamaged{ID: victim.ID, NewHealth: health, Damage: PvPDamage})
			w.cues.Cue(CueHit)
			if health == 0 {
				local.Kills++
				w.out.Send(protocol.PlayerKilled{KillerID: local.ID, VictimID: victim.ID})
				w.cues.Cue(CueExplosion)
				w.log.Infow("player killed", "killer", local.ID, "victim", victim.ID)
			}
			return true
		}
	} else if local.Alive && b.CollidesWith(local.X, local.Y, PlayerRadius) {
		// 对方子弹命中本地玩家：尽力而为的本地判定，致死时记在射手名下
		if w.damageLocal(PvPDamage, true) {
			if shooter := w.Remote(b.OwnerID); shooter != nil {
				shooter.Kills++
			}
		}
		w.cues.Cue(CueHit)
		return true
	}

	boss := w.Boss
	if boss.Alive() && b.CollidesWith(boss.X, boss.Y, BossRadius) {
		// 护盾期间子弹被吸收：血量不变但仍会宣告
		before := boss.Health
		if w.authority.DamageBoss(boss, BossHitDamage) {
			w.out.Send(protocol.BossDefeated{})
			w.cues.Cue(CueExplosion)
			w.log.Infow("boss defeated", "by", b.OwnerID)
		} else {
			w.out.Send(protocol.BossDamaged{NewHealth: boss.Health})
			w.cues.Cue(CueHit)
		}
		if dealt := before - boss.Health; dealt > 0 {
			w.indicate(boss.X, boss.Y, dealt, true)
		}
		return true
	}
	return false
}

// damageLocal 结算本地玩家受到的伤害，并向其他客户端宣告新血量
func (w *World) damageLocal(amount uint32, fromPlayer bool) bool {
	local := w.Local
	died := w.authority.DamageLocal(local, amount)
	w.indicate(local.X, local.Y, amount, fromPlayer)
	w.out.Send(protocol.PlayerDamaged{ID: local.ID, NewHealth: local.Health, Damage: amount})
	if died {
		w.cues.Cue(CueExplosion)
		w.log.Infow("local player died", "id", local.ID)
	}
	return died
}
