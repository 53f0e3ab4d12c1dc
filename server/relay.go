package server

import (
	"io"
	"sort"
	"sync/atomic"
	"time"

	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"

	"bossarena/protocol"
)

// Relay 无权威的帧中继：不模拟世界，只按消息类别转发原始帧，
// 并维护一份玩家位置缓存用于给新加入者回放
type Relay struct {
	cfg     Config
	log     *zap.SugaredLogger
	metrics *RelayMetrics

	// mu 保护 peers，只在单次广播/回放期间持有
	mu    deadlock.Mutex
	peers map[PeerID]*peer

	// cacheMu 保护 positions 与 bindings；不与 mu 嵌套持有
	cacheMu   deadlock.Mutex
	positions map[uint32]Position
	bindings  map[PeerID]*binding

	nextID atomic.Uint32
}

// NewRelay 创建中继
func NewRelay(cfg Config, log *zap.SugaredLogger) *Relay {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Relay{
		cfg:       cfg,
		log:       log,
		metrics:   &RelayMetrics{},
		peers:     make(map[PeerID]*peer),
		positions: make(map[uint32]Position),
		bindings:  make(map[PeerID]*binding),
	}
}

func (r *Relay) Metrics() *RelayMetrics { return r.metrics }

// Accept 登记新连接并分配编号
func (r *Relay) Accept(c Conn, addr string) PeerID {
	id := PeerID(r.nextID.Add(1))

	r.cacheMu.Lock()
	r.bindings[id] = &binding{player: uint32(id)}
	r.cacheMu.Unlock()

	r.mu.Lock()
	r.peers[id] = &peer{id: id, conn: c, addr: addr, joinedAt: time.Now()}
	r.mu.Unlock()

	r.metrics.IncAccepted()
	r.log.Infow("peer connected", "peer", id, "addr", addr)
	return id
}

// Serve 从 src 持续读帧并分发，直到 EOF 或读错误；返回前完成断开清理
func (r *Relay) Serve(id PeerID, src io.Reader) {
	defer r.Disconnect(id)
	if err := protocol.ReadFrames(src, func(frame []byte) { r.HandleFrame(id, frame) }); err != nil {
		r.log.Debugw("peer read ended", "peer", id, "err", err)
	}
}

// HandleFrame 解码一帧；解码失败的帧计数后丢弃，连接保持
func (r *Relay) HandleFrame(sender PeerID, frame []byte) {
	r.metrics.IncFramesIn()
	msg, err := protocol.DecodeFrame(frame)
	if err != nil {
		r.metrics.IncDecodeErrors()
		r.log.Warnw("dropping undecodable frame", "peer", sender, "size", len(frame), "err", err)
		return
	}
	r.Dispatch(sender, msg, frame)
}

// Dispatch 按消息类别更新缓存并转发原始帧
func (r *Relay) Dispatch(sender PeerID, msg protocol.Message, frame []byte) {
	switch m := msg.(type) {
	case protocol.PositionUpdate:
		r.bind(sender, m.ID)
		r.cacheMu.Lock()
		r.positions[m.ID] = Position{X: m.X, Y: m.Y}
		r.cacheMu.Unlock()
	case protocol.PlayerJoined:
		r.bind(sender, m.ID)
		r.replayTo(sender, m.ID)
		r.cacheMu.Lock()
		if _, ok := r.positions[m.ID]; !ok {
			r.positions[m.ID] = Position{X: r.cfg.JoinX, Y: r.cfg.JoinY}
		}
		r.cacheMu.Unlock()
		r.log.Infow("player joined", "peer", sender, "player", m.ID)
	case protocol.PlayerLeft:
		r.forget(m.ID)
		r.log.Infow("player left", "peer", sender, "player", m.ID)
	}

	if PolicyFor(msg.Kind()) == RelayToAll {
		r.broadcast(frame, noPeer)
	} else {
		r.broadcast(frame, sender)
	}
}

// Disconnect 注销连接，清理缓存，并向其余连接广播 Leave。重复调用无副作用
func (r *Relay) Disconnect(id PeerID) {
	r.cacheMu.Lock()
	b, ok := r.bindings[id]
	delete(r.bindings, id)
	if ok {
		delete(r.positions, b.player)
	}
	r.cacheMu.Unlock()
	if !ok {
		return
	}

	r.mu.Lock()
	p, present := r.peers[id]
	delete(r.peers, id)
	r.mu.Unlock()
	if present {
		_ = p.conn.Close()
	}

	r.metrics.IncDisconnected()
	r.log.Infow("peer disconnected", "peer", id, "player", b.player)
	if frame := r.encode(protocol.PlayerLeft{ID: b.player}); frame != nil {
		r.broadcast(frame, noPeer)
	}
}

// PeerCount 当前登记的连接数
func (r *Relay) PeerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers)
}

// Positions 位置缓存快照，按玩家 id 升序
func (r *Relay) Positions() []PlayerState {
	return r.snapshot(0, false)
}

func (r *Relay) snapshot(skip uint32, exclude bool) []PlayerState {
	r.cacheMu.Lock()
	out := make([]PlayerState, 0, len(r.positions))
	for id, pos := range r.positions {
		if exclude && id == skip {
			continue
		}
		out = append(out, PlayerState{ID: id, X: pos.X, Y: pos.Y})
	}
	r.cacheMu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Relay) bind(id PeerID, player uint32) {
	r.cacheMu.Lock()
	if b, ok := r.bindings[id]; ok && !b.set {
		b.player = player
		b.set = true
	}
	r.cacheMu.Unlock()
}

func (r *Relay) forget(player uint32) {
	r.cacheMu.Lock()
	delete(r.positions, player)
	r.cacheMu.Unlock()
}

// replayTo 向新加入者逐个发送已知玩家的 Join + Move，不含其自身
func (r *Relay) replayTo(sender PeerID, joiner uint32) {
	known := r.snapshot(joiner, true)
	if len(known) == 0 {
		return
	}

	r.mu.Lock()
	p, ok := r.peers[sender]
	if !ok {
		r.mu.Unlock()
		return
	}
	var err error
	for _, s := range known {
		if err = p.conn.Send(r.encode(protocol.PlayerJoined{ID: s.ID})); err != nil {
			break
		}
		if err = p.conn.Send(r.encode(protocol.PositionUpdate{ID: s.ID, X: s.X, Y: s.Y})); err != nil {
			break
		}
	}
	if err != nil {
		delete(r.peers, sender)
	}
	r.mu.Unlock()

	if err != nil {
		r.evict(p, err)
		return
	}
	r.metrics.IncJoinReplays()
	r.log.Debugw("join replayed", "peer", sender, "players", len(known))
}

// broadcast 将帧写给所有连接（skip 除外）。写失败的连接当场移出注册表，
// 释放锁后再关闭
func (r *Relay) broadcast(frame []byte, skip PeerID) {
	type failure struct {
		p   *peer
		err error
	}
	var failed []failure

	r.mu.Lock()
	for id, p := range r.peers {
		if id == skip {
			continue
		}
		if err := p.conn.Send(frame); err != nil {
			delete(r.peers, id)
			failed = append(failed, failure{p, err})
			continue
		}
		r.metrics.IncRelayed()
	}
	r.mu.Unlock()

	for _, f := range failed {
		r.evict(f.p, f.err)
	}
}

// evict 关闭写失败的连接并清除其位置缓存；Leave 由其读协程退出时的 Disconnect 广播
func (r *Relay) evict(p *peer, err error) {
	_ = p.conn.Close()
	r.cacheMu.Lock()
	if b, ok := r.bindings[p.id]; ok {
		delete(r.positions, b.player)
	}
	r.cacheMu.Unlock()
	r.metrics.IncEvicted()
	r.log.Warnw("evicting peer after write failure", "peer", p.id, "addr", p.addr, "err", err)
}

func (r *Relay) encode(m protocol.Message) []byte {
	frame, err := protocol.EncodeFrame(m)
	if err != nil {
		r.log.Errorw("encode failed", "kind", m.Kind(), "err", err)
		return nil
	}
	return frame
}
