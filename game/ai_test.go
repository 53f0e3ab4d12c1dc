package game

import (
	"math/rand"
	"testing"

	"bossarena/protocol"
)

func TestFanDirectionsSymmetric(t *testing.T) {
	dirs := FanDirections(0, 0, 3, 4)
	if len(dirs) != MultiShotCount {
		t.Fatalf("len = %d", len(dirs))
	}
	ax, ay, _ := normalize(3, 4)
	mid := dirs[MultiShotCount/2]
	if mid.X != ax || mid.Y != ay {
		t.Fatalf("center = %+v, want (%v,%v)", mid, ax, ay)
	}
	dot := func(d protocol.Direction) float32 { return d.X*ax + d.Y*ay }
	cross := func(d protocol.Direction) float32 { return ax*d.Y - ay*d.X }
	for i := 0; i < MultiShotCount/2; i++ {
		l, r := dirs[i], dirs[MultiShotCount-1-i]
		if !approx(dot(l), dot(r)) || !approx(cross(l), -cross(r)) {
			t.Fatalf("pair %d not mirrored: %+v %+v", i, l, r)
		}
	}
}

func TestFanDirectionsZeroDistance(t *testing.T) {
	if dirs := FanDirections(5, 5, 5, 5); dirs != nil {
		t.Fatalf("dirs = %v, want nil", dirs)
	}
}

func TestNearestAliveTieBreak(t *testing.T) {
	a := NewPlayer(1, 0, 0)
	b := NewPlayer(2, 10, 0)
	if got := NearestAlive([]*Player{a, b}, 5, 0); got != a {
		t.Fatalf("got %d, want first on tie", got.ID)
	}
	a.Kill()
	if got := NearestAlive([]*Player{a, b}, 5, 0); got != b {
		t.Fatalf("dead player chosen")
	}
	b.Kill()
	if got := NearestAlive([]*Player{a, b}, 5, 0); got != nil {
		t.Fatalf("expected nil")
	}
}

func TestBossShotOfflineAppliesAtOnce(t *testing.T) {
	w, out := newTestWorld(t, false)
	w.Boss.timers.shoot = BossShootInterval
	w.updateBoss(0)

	if out.count(protocol.KindBossShot) != 1 {
		t.Fatalf("messages = %v", out.kinds())
	}
	if len(w.Bullets) != 1 || !w.Bullets[0].FromBoss {
		t.Fatalf("bullets = %+v", w.Bullets)
	}
	if w.Boss.ShouldShoot() {
		t.Fatalf("shoot timer not reset")
	}
}

func TestBossShotNetworkedWaitsForEcho(t *testing.T) {
	w, out := newTestWorld(t, true)
	w.Boss.timers.shoot = BossShootInterval
	w.updateBoss(0)

	if len(w.Bullets) != 0 {
		t.Fatalf("bullet spawned before echo")
	}
	w.Apply(out.msgs[0])
	if len(w.Bullets) != 1 {
		t.Fatalf("echo did not spawn bullet")
	}
}

func TestBossHoldsFireWithoutAim(t *testing.T) {
	w, out := newTestWorld(t, false)
	w.Local.X, w.Local.Y = w.Boss.X, w.Boss.Y
	w.Boss.timers.shoot = BossShootInterval
	w.updateBoss(0)

	if out.count(protocol.KindBossShot) != 0 {
		t.Fatalf("shot with zero-length aim")
	}
	if !w.Boss.ShouldShoot() {
		t.Fatalf("timer should be held for retry")
	}
}

func TestBossIdleWithoutTargets(t *testing.T) {
	w, out := newTestWorld(t, false)
	w.Local.Kill()
	w.Boss.timers.shoot = BossShootInterval
	w.Boss.timers.power = BossPowerInterval
	w.Boss.timers.dash = BossDashInterval
	w.updateBoss(0)
	if len(out.msgs) != 0 {
		t.Fatalf("boss acted with no targets: %v", out.kinds())
	}
}

func TestBossRespawnsWithoutPlayers(t *testing.T) {
	w, out := newTestWorld(t, true)
	w.Local.Kill()
	w.Boss.Kill()
	w.updateBoss(BossRespawnTime)

	if !w.Boss.Alive() {
		t.Fatalf("boss did not respawn")
	}
	if got, ok := out.msgs[0].(protocol.BossSpawned); !ok || got.X != ArenaWidth/2 || got.Y != BossSpawnY {
		t.Fatalf("message = %#v", out.msgs[0])
	}
}

func TestMultiShotPowerOffline(t *testing.T) {
	w, out := newTestWorld(t, false)
	w.usePower(PowerMultiShot, w.alivePlayers())
	if out.count(protocol.KindBossMultiShot) != 1 || len(w.Bullets) != MultiShotCount {
		t.Fatalf("messages=%v bullets=%d", out.kinds(), len(w.Bullets))
	}
}

func TestShieldPowerAppliesLocally(t *testing.T) {
	w, out := newTestWorld(t, true)
	w.usePower(PowerShield, w.alivePlayers())
	if !w.Boss.ShieldActive() {
		t.Fatalf("shield not raised")
	}
	if got, ok := out.msgs[0].(protocol.BossShielded); !ok || !got.Active {
		t.Fatalf("message = %#v", out.msgs[0])
	}
}

func TestBossDashesAtNearestAndHoldsFire(t *testing.T) {
	cases := []struct {
		name      string
		networked bool
	}{
		{"offline", false},
		{"networked", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, out := newTestWorld(t, tc.networked)
			far := NewPlayer(2, 700, 550)
			w.addRemote(far)
			w.Boss.timers.dash = BossDashInterval
			w.Boss.timers.shoot = BossShootInterval
			w.updateBoss(0)

			got, ok := out.msgs[0].(protocol.BossDashed)
			if !ok || got.TargetX != w.Local.X || got.TargetY != w.Local.Y {
				t.Fatalf("messages = %#v", out.msgs)
			}
			if !w.Boss.Dashing() {
				t.Fatalf("state = %v", w.Boss.State())
			}
			// 冲刺当帧不射击，射击计时器保留
			if out.count(protocol.KindBossShot) != 0 || !w.Boss.ShouldShoot() {
				t.Fatalf("shot while dashing: %v", out.kinds())
			}
			if w.Boss.DashWarning() != 0 {
				t.Fatalf("dash warning while dashing")
			}
		})
	}
}

func TestAreaAttackPower(t *testing.T) {
	cases := []struct {
		name         string
		networked    bool
		nearRemote   bool
		wantLocalHit bool
	}{
		{"offline hits local", false, false, true},
		{"networked waits for echo", true, false, true},
		{"centred on nearest remote", false, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, out := newTestWorld(t, tc.networked)
			wantX, wantY := w.Local.X, w.Local.Y
			if tc.nearRemote {
				r := NewPlayer(2, w.Boss.X, w.Boss.Y+60)
				w.addRemote(r)
				wantX, wantY = r.X, r.Y
			}
			w.usePower(PowerAreaAttack, w.alivePlayers())

			got, ok := out.msgs[0].(protocol.BossAreaAttack)
			if !ok || got.CenterX != wantX || got.CenterY != wantY {
				t.Fatalf("messages = %#v", out.msgs)
			}
			if tc.networked {
				if len(w.AreaAttacks) != 0 || w.Local.Health != PlayerMaxHealth {
					t.Fatalf("applied before echo")
				}
				w.Apply(got)
			}
			if len(w.AreaAttacks) != 1 {
				t.Fatalf("area attacks = %d", len(w.AreaAttacks))
			}

			want := PlayerMaxHealth
			hits := 0
			if tc.wantLocalHit {
				want -= AreaAttackDamage
				hits = 1
			}
			// 后续帧只播放动画，不再结算伤害
			for i := 0; i < 3; i++ {
				w.Update(0.1)
			}
			if w.Local.Health != want || out.count(protocol.KindPlayerDamaged) != hits {
				t.Fatalf("health=%d damaged=%d", w.Local.Health, out.count(protocol.KindPlayerDamaged))
			}
		})
	}
}

func TestPowerTimerResetsWhateverPowerIsPicked(t *testing.T) {
	cases := []struct {
		name    string
		onBoss  bool
		wantMsg bool
	}{
		{"aimed", false, true},
		{"multi-shot cannot aim", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sawSilent := false
			for seed := int64(1); seed <= 64; seed++ {
				out := &recordingOutbox{}
				w := NewWorld(1, Options{Out: out, Rand: rand.New(rand.NewSource(seed))})
				if tc.onBoss {
					w.Local.X, w.Local.Y = w.Boss.X, w.Boss.Y
				}
				w.Boss.timers.power = BossPowerInterval
				w.updateBoss(0)

				if w.Boss.ShouldUsePower() {
					t.Fatalf("seed %d: power timer not reset", seed)
				}
				if len(out.msgs) == 0 {
					sawSilent = true
				}
			}
			if sawSilent == tc.wantMsg {
				t.Fatalf("silent power seen = %v", sawSilent)
			}
		})
	}
}
