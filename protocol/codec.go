package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// DecodeError 负载无法还原为消息；帧边界仍然已知，调用方丢弃该帧继续读取
type DecodeError struct {
	Kind   Kind
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s at byte %d: %s", e.Kind, e.Offset, e.Reason)
}

// ErrNilMessage 编码 nil 消息时返回
var ErrNilMessage = errors.New("encode: nil message")

// Encode 序列化消息（不含长度前缀）
// 布局：u32 类型标签，随后按字段声明顺序写入；整数与浮点为小端 32 位，
// 布尔一个字节，方向列表为 u64 数量加若干 f32 对
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, ErrNilMessage
	}
	e := encoder{buf: make([]byte, 0, 24)}
	e.u32(uint32(m.Kind()))

	switch v := m.(type) {
	case PositionUpdate:
		e.u32(v.ID)
		e.f32(v.X)
		e.f32(v.Y)
	case PlayerJoined:
		e.u32(v.ID)
	case PlayerLeft:
		e.u32(v.ID)
	case PlayerShot:
		e.u32(v.ID)
		e.f32(v.X)
		e.f32(v.Y)
		e.f32(v.DirX)
		e.f32(v.DirY)
	case BossShot:
		e.f32(v.X)
		e.f32(v.Y)
		e.f32(v.DirX)
		e.f32(v.DirY)
	case PlayerDamaged:
		e.u32(v.ID)
		e.u32(v.NewHealth)
		e.u32(v.Damage)
	case BossDamaged:
		e.u32(v.NewHealth)
	case BossSpawned:
		e.f32(v.X)
		e.f32(v.Y)
	case BossDefeated:
	case BossMultiShot:
		e.f32(v.X)
		e.f32(v.Y)
		e.u64(uint64(len(v.Directions)))
		for _, d := range v.Directions {
			e.f32(d.X)
			e.f32(d.Y)
		}
	case BossDashed:
		e.f32(v.TargetX)
		e.f32(v.TargetY)
	case BossAreaAttack:
		e.f32(v.CenterX)
		e.f32(v.CenterY)
	case BossShielded:
		e.boolean(v.Active)
	case PlayerRespawned:
		e.u32(v.ID)
		e.f32(v.X)
		e.f32(v.Y)
	case PlayerFacing:
		e.u32(v.ID)
		e.f32(v.DirX)
		e.f32(v.DirY)
	case PlayerKilled:
		e.u32(v.KillerID)
		e.u32(v.VictimID)
	default:
		return nil, fmt.Errorf("encode: unsupported message type %T", m)
	}
	return e.buf, nil
}

// Decode 解析 Encode 产出的负载，多余的尾部字节视为错误
func Decode(b []byte) (Message, error) {
	d := decoder{buf: b}
	d.kind = Kind(d.u32())
	if d.err != nil {
		return nil, d.err
	}

	var m Message
	switch d.kind {
	case KindPositionUpdate:
		m = PositionUpdate{ID: d.u32(), X: d.f32(), Y: d.f32()}
	case KindPlayerJoined:
		m = PlayerJoined{ID: d.u32()}
	case KindPlayerLeft:
		m = PlayerLeft{ID: d.u32()}
	case KindPlayerShot:
		m = PlayerShot{ID: d.u32(), X: d.f32(), Y: d.f32(), DirX: d.f32(), DirY: d.f32()}
	case KindBossShot:
		m = BossShot{X: d.f32(), Y: d.f32(), DirX: d.f32(), DirY: d.f32()}
	case KindPlayerDamaged:
		m = PlayerDamaged{ID: d.u32(), NewHealth: d.u32(), Damage: d.u32()}
	case KindBossDamaged:
		m = BossDamaged{NewHealth: d.u32()}
	case KindBossSpawned:
		m = BossSpawned{X: d.f32(), Y: d.f32()}
	case KindBossDefeated:
		m = BossDefeated{}
	case KindBossMultiShot:
		m = d.multiShot()
	case KindBossDashed:
		m = BossDashed{TargetX: d.f32(), TargetY: d.f32()}
	case KindBossAreaAttack:
		m = BossAreaAttack{CenterX: d.f32(), CenterY: d.f32()}
	case KindBossShielded:
		m = BossShielded{Active: d.boolean()}
	case KindPlayerRespawned:
		m = PlayerRespawned{ID: d.u32(), X: d.f32(), Y: d.f32()}
	case KindPlayerFacing:
		m = PlayerFacing{ID: d.u32(), DirX: d.f32(), DirY: d.f32()}
	case KindPlayerKilled:
		m = PlayerKilled{KillerID: d.u32(), VictimID: d.u32()}
	default:
		return nil, &DecodeError{Kind: d.kind, Offset: 0, Reason: "unknown message kind"}
	}

	if d.err != nil {
		return nil, d.err
	}
	if d.off != len(b) {
		return nil, d.fail(fmt.Sprintf("%d trailing bytes", len(b)-d.off))
	}
	return m, nil
}

type encoder struct {
	buf []byte
}

func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) u64(v uint64) { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }
func (e *encoder) f32(v float32) { e.u32(math.Float32bits(v)) }

func (e *encoder) boolean(v bool) {
	if v {
		e.buf = append(e.buf, 1)
		return
	}
	e.buf = append(e.buf, 0)
}

// decoder 记住第一个错误，之后读取一律返回零值，
// 因此可以逐字段读取、最后统一检查
type decoder struct {
	buf  []byte
	off  int
	kind Kind
	err  error
}

func (d *decoder) fail(reason string) error {
	if d.err == nil {
		d.err = &DecodeError{Kind: d.kind, Offset: d.off, Reason: reason}
	}
	return d.err
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.buf)-d.off < n {
		d.fail("truncated payload")
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) u32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) u64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *decoder) f32() float32 { return math.Float32frombits(d.u32()) }

func (d *decoder) boolean() bool {
	b := d.take(1)
	if b == nil {
		return false
	}
	switch b[0] {
	case 0:
		return false
	case 1:
		return true
	}
	d.off--
	d.fail(fmt.Sprintf("invalid bool byte 0x%02x", b[0]))
	return false
}

func (d *decoder) multiShot() BossMultiShot {
	m := BossMultiShot{X: d.f32(), Y: d.f32()}
	n := d.u64()
	if d.err != nil {
		return m
	}
	// 每个方向占两个 f32；负载放不下的数量视为畸形
	if n > uint64(len(d.buf)-d.off)/8 {
		d.fail(fmt.Sprintf("direction count %d exceeds payload", n))
		return m
	}
	if n > 0 {
		m.Directions = make([]Direction, n)
		for i := range m.Directions {
			m.Directions[i] = Direction{X: d.f32(), Y: d.f32()}
		}
	}
	return m
}
