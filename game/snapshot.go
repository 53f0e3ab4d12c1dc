package game

import "sort"

// BossView 供表现层读取的 Boss 状态
type BossView struct {
	X, Y             float32
	Health           uint32
	MaxHealth        uint32
	State            BossState
	Shielded         bool
	PowerWarning     float32
	DashWarning      float32
	RespawnRemaining float32
}

// Snapshot 一帧的只读快照，表现层不得反向修改世界
type Snapshot struct {
	LocalID     uint32
	Players     []Player // 本地玩家在首位
	Boss        BossView
	Bullets     []Bullet
	AreaAttacks []AreaAttack
	Indicators  []DamageIndicator
	Leaderboard []Player
}

// Local 返回快照中的本地玩家
func (s *Snapshot) Local() Player {
	return s.Players[0]
}

func (w *World) Snapshot() Snapshot {
	players := make([]Player, 0, len(w.Remotes)+1)
	for _, p := range w.Players() {
		players = append(players, *p)
	}
	b := w.Boss
	return Snapshot{
		LocalID: w.Local.ID,
		Players: players,
		Boss: BossView{
			X:                b.X,
			Y:                b.Y,
			Health:           b.Health,
			MaxHealth:        b.MaxHealth,
			State:            b.State(),
			Shielded:         b.ShieldActive(),
			PowerWarning:     b.PowerWarning(),
			DashWarning:      b.DashWarning(),
			RespawnRemaining: b.RespawnRemaining(),
		},
		Bullets:     append([]Bullet(nil), w.Bullets...),
		AreaAttacks: append([]AreaAttack(nil), w.AreaAttacks...),
		Indicators:  append([]DamageIndicator(nil), w.Indicators...),
		Leaderboard: Leaderboard(players, LeaderboardSize),
	}
}

// Leaderboard 按击杀数降序取前 n 名，击杀相同按 id 升序
func Leaderboard(players []Player, n int) []Player {
	ranked := append([]Player(nil), players...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Kills != ranked[j].Kills {
			return ranked[i].Kills > ranked[j].Kills
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
