package game

import (
	"math/rand"

	"go.uber.org/zap"

	"bossarena/protocol"
)

// Outbox 出站消息的接收方（通常是网络客户端的发送队列），不得阻塞模拟
type Outbox interface {
	Send(m protocol.Message)
}

type nopOutbox struct{}

func (nopOutbox) Send(protocol.Message) {}

// Options 构造 World 时的可选依赖，零值均可用
type Options struct {
	Out       Outbox
	Cues      CueSink
	Authority DamageAuthority
	Rand      *rand.Rand
	Log       *zap.SugaredLogger
	// Networked 为 true 时，Boss 生成类事件（射击/散射/范围攻击）只发出，
	// 等中继回显后再生效；离线时直接本地生效
	Networked bool
}

// World 单个客户端的完整模拟：本地玩家、远端副本、Boss 与所有短命实体。
// 只在模拟线程内访问，不加锁
type World struct {
	Local   *Player
	Remotes []*Player
	Boss    *Boss

	Bullets     []Bullet
	AreaAttacks []AreaAttack
	Indicators  []DamageIndicator

	out       Outbox
	cues      CueSink
	authority DamageAuthority
	rng       *rand.Rand
	log       *zap.SugaredLogger
	networked bool
	resolver  Resolver
}

// NewWorld 创建世界，本地玩家出生在场地中心
func NewWorld(localID uint32, opts Options) *World {
	w := &World{
		Local:     NewPlayerAtCenter(localID),
		Boss:      NewBoss(),
		out:       opts.Out,
		cues:      opts.Cues,
		authority: opts.Authority,
		rng:       opts.Rand,
		log:       opts.Log,
		networked: opts.Networked,
	}
	if w.out == nil {
		w.out = nopOutbox{}
	}
	if w.cues == nil {
		w.cues = NopCues()
	}
	if w.authority == nil {
		w.authority = TrustingAuthority{}
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(int64(localID)))
	}
	if w.log == nil {
		w.log = zap.NewNop().Sugar()
	}
	return w
}

// Join 向其他客户端宣告本地玩家加入，并同步初始位置
func (w *World) Join() {
	w.out.Send(protocol.PlayerJoined{ID: w.Local.ID})
	w.out.Send(protocol.PositionUpdate{ID: w.Local.ID, X: w.Local.X, Y: w.Local.Y})
}

// Leave 宣告本地玩家离开（尽力而为）
func (w *World) Leave() {
	w.out.Send(protocol.PlayerLeft{ID: w.Local.ID})
}

// Update 推进一帧：实体更新 → Boss AI → 碰撞结算。入站消息由 Drain 单独处理
func (w *World) Update(dt float32) {
	w.Bullets = retain(w.Bullets, func(b *Bullet) bool { return !b.Update(dt) })
	w.AreaAttacks = retain(w.AreaAttacks, func(a *AreaAttack) bool { return !a.Update(dt) })
	w.Indicators = retain(w.Indicators, func(d *DamageIndicator) bool { return !d.Update(dt) })

	for _, p := range w.Remotes {
		p.UpdateRespawn(dt)
	}

	w.updateBoss(dt)
	w.resolver.Resolve(w)
}

// Step 按固定顺序推进一整帧：输入 → 更新 → 入站消息
func (w *World) Step(in Input, dt float32, incoming <-chan protocol.Message) int {
	w.ApplyInput(in, dt)
	w.Update(dt)
	return w.Drain(incoming)
}

// Remote 按 id 查找远端玩家
func (w *World) Remote(id uint32) *Player {
	for _, p := range w.Remotes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Players 返回本地玩家在前的全部玩家
func (w *World) Players() []*Player {
	all := make([]*Player, 0, len(w.Remotes)+1)
	all = append(all, w.Local)
	return append(all, w.Remotes...)
}

func (w *World) addRemote(p *Player) {
	w.Remotes = append(w.Remotes, p)
}

func (w *World) removeRemote(id uint32) bool {
	for i, p := range w.Remotes {
		if p.ID == id {
			w.Remotes = append(w.Remotes[:i], w.Remotes[i+1:]...)
			return true
		}
	}
	return false
}

// emit 发出 Boss 生成类事件；联网时等回显，离线时立即应用
func (w *World) emit(m protocol.Message) {
	w.out.Send(m)
	if !w.networked {
		w.Apply(m)
	}
}

func (w *World) indicate(x, y float32, amount uint32, fromPlayer bool) {
	w.Indicators = append(w.Indicators, NewDamageIndicator(x, y, amount, fromPlayer))
}

// retain 原地保留满足 keep 的元素
func retain[T any](s []T, keep func(*T) bool) []T {
	n := 0
	for i := range s {
		if keep(&s[i]) {
			s[n] = s[i]
			n++
		}
	}
	clear(s[n:])
	return s[:n]
}
