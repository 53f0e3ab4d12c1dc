package game

import (
	"bossarena/protocol"
)

// Drain 非阻塞地取出入站消息并应用，单帧最多 MaxMessagesPerStep 条，
// 剩余的留到下一帧
func (w *World) Drain(in <-chan protocol.Message) int {
	n := 0
	for n < MaxMessagesPerStep {
		select {
		case m, ok := <-in:
			if !ok {
				return n
			}
			w.Apply(m)
			n++
		default:
			return n
		}
	}
	return n
}

// Apply 把一条来自网络（或离线时来自本地）的消息合并进世界。
// 所有分支都是幂等或按"设置"语义处理，重复与乱序都不会破坏状态
func (w *World) Apply(msg protocol.Message) {
	local := w.Local
	switch m := msg.(type) {
	case protocol.PositionUpdate:
		if m.ID == local.ID {
			return
		}
		if p := w.Remote(m.ID); p != nil {
			p.X, p.Y = m.X, m.Y
			return
		}
		// 错过了 Join：按位置直接建档
		w.addRemote(NewPlayer(m.ID, m.X, m.Y))
		w.log.Debugw("remote created from move", "id", m.ID)

	case protocol.PlayerJoined:
		if m.ID == local.ID || w.Remote(m.ID) != nil {
			return
		}
		w.addRemote(NewPlayerAtCenter(m.ID))
		w.cues.Cue(CueJoin)
		w.log.Infow("player joined", "id", m.ID)

	case protocol.PlayerLeft:
		if w.removeRemote(m.ID) {
			w.log.Infow("player left", "id", m.ID)
		}

	case protocol.PlayerShot:
		if m.ID == local.ID {
			return
		}
		w.Bullets = append(w.Bullets, NewPlayerBullet(m.ID, m.X, m.Y, m.DirX, m.DirY))

	case protocol.BossShot:
		w.Bullets = append(w.Bullets, NewBossBullet(m.X, m.Y, m.DirX, m.DirY))
		w.cues.Cue(CueBossShot)

	case protocol.BossMultiShot:
		for _, d := range m.Directions {
			w.Bullets = append(w.Bullets, NewBossBullet(m.X, m.Y, d.X, d.Y))
		}
		w.cues.Cue(CuePower)

	case protocol.BossAreaAttack:
		a := NewAreaAttack(m.CenterX, m.CenterY)
		w.AreaAttacks = append(w.AreaAttacks, a)
		w.cues.Cue(CuePower)
		// 伤害只在出现时结算一次，且每个客户端只结算自己的本地玩家
		if local.Alive && a.AffectsPoint(local.X, local.Y) {
			w.damageLocal(a.Damage(), false)
		}

	case protocol.PlayerDamaged:
		if m.ID == local.ID {
			local.SetHealth(m.NewHealth)
			return
		}
		if p := w.Remote(m.ID); p != nil {
			p.SetHealth(m.NewHealth)
			w.indicate(p.X, p.Y, m.Damage, false)
		}

	case protocol.BossDamaged:
		w.Boss.SetHealth(m.NewHealth)

	case protocol.BossSpawned:
		w.Boss.RespawnAt(m.X, m.Y)

	case protocol.BossDefeated:
		if w.Boss.Alive() {
			w.Boss.Kill()
			w.cues.Cue(CueExplosion)
		}

	case protocol.BossDashed:
		w.Boss.StartDash(m.TargetX, m.TargetY)

	case protocol.BossShielded:
		if m.Active {
			w.Boss.ActivateShield()
		} else {
			w.Boss.DropShield()
		}

	case protocol.PlayerRespawned:
		if p := w.Remote(m.ID); p != nil {
			p.Revive(m.X, m.Y)
			w.cues.Cue(CueRespawn)
		}

	case protocol.PlayerFacing:
		if p := w.Remote(m.ID); p != nil {
			p.SetFacing(m.DirX, m.DirY)
		}

	case protocol.PlayerKilled:
		// 受害者是本地玩家时，击杀已在碰撞结算时记过；未知受害者整条忽略
		if m.VictimID == local.ID {
			return
		}
		victim := w.Remote(m.VictimID)
		if victim == nil {
			return
		}
		if killer := w.Remote(m.KillerID); killer != nil {
			killer.Kills++
		}
		if victim.Alive {
			victim.Kill()
		}

	default:
		w.log.Warnw("unhandled message", "kind", msg.Kind())
	}
}
