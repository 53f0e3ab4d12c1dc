package protocol

import "fmt"

// Kind 写在每个负载开头的变体标签
// 取值属于线上协议，只能追加
type Kind uint32

const (
	KindPositionUpdate Kind = iota
	KindPlayerJoined
	KindPlayerLeft
	KindPlayerShot
	KindBossShot
	KindPlayerDamaged
	KindBossDamaged
	KindBossSpawned
	KindBossDefeated
	KindBossMultiShot
	KindBossDashed
	KindBossAreaAttack
	KindBossShielded
	KindPlayerRespawned
	KindPlayerFacing
	KindPlayerKilled

	kindCount
)

var kindNames = [...]string{
	KindPositionUpdate:  "position_update",
	KindPlayerJoined:    "player_joined",
	KindPlayerLeft:      "player_left",
	KindPlayerShot:      "player_shot",
	KindBossShot:        "boss_shot",
	KindPlayerDamaged:   "player_damaged",
	KindBossDamaged:     "boss_damaged",
	KindBossSpawned:     "boss_spawned",
	KindBossDefeated:    "boss_defeated",
	KindBossMultiShot:   "boss_multi_shot",
	KindBossDashed:      "boss_dashed",
	KindBossAreaAttack:  "boss_area_attack",
	KindBossShielded:    "boss_shielded",
	KindPlayerRespawned: "player_respawned",
	KindPlayerFacing:    "player_facing",
	KindPlayerKilled:    "player_killed",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint32(k))
}

// Valid 是否为已知变体
func (k Kind) Valid() bool { return k < kindCount }

// Message 协议变体之一，每个变体都携带应用它所需的全部信息
type Message interface {
	Kind() Kind
}

// Direction 线上传输的单位向量
type Direction struct {
	X float32
	Y float32
}

// PositionUpdate 移动玩家；接收方遇到未知玩家时创建它
type PositionUpdate struct {
	ID   uint32
	X, Y float32
}

type PlayerJoined struct {
	ID uint32
}

type PlayerLeft struct {
	ID uint32
}

type PlayerShot struct {
	ID         uint32
	X, Y       float32
	DirX, DirY float32
}

type BossShot struct {
	X, Y       float32
	DirX, DirY float32
}

// PlayerDamaged 声明玩家被击中后的血量
type PlayerDamaged struct {
	ID        uint32
	NewHealth uint32
	Damage    uint32
}

type BossDamaged struct {
	NewHealth uint32
}

type BossSpawned struct {
	X, Y float32
}

type BossDefeated struct{}

type BossMultiShot struct {
	X, Y       float32
	Directions []Direction
}

type BossDashed struct {
	TargetX, TargetY float32
}

type BossAreaAttack struct {
	CenterX, CenterY float32
}

type BossShielded struct {
	Active bool
}

type PlayerRespawned struct {
	ID   uint32
	X, Y float32
}

type PlayerFacing struct {
	ID         uint32
	DirX, DirY float32
}

type PlayerKilled struct {
	KillerID uint32
	VictimID uint32
}

func (PositionUpdate) Kind() Kind  { return KindPositionUpdate }
func (PlayerJoined) Kind() Kind    { return KindPlayerJoined }
func (PlayerLeft) Kind() Kind      { return KindPlayerLeft }
func (PlayerShot) Kind() Kind      { return KindPlayerShot }
func (BossShot) Kind() Kind        { return KindBossShot }
func (PlayerDamaged) Kind() Kind   { return KindPlayerDamaged }
func (BossDamaged) Kind() Kind     { return KindBossDamaged }
func (BossSpawned) Kind() Kind     { return KindBossSpawned }
func (BossDefeated) Kind() Kind    { return KindBossDefeated }
func (BossMultiShot) Kind() Kind   { return KindBossMultiShot }
func (BossDashed) Kind() Kind      { return KindBossDashed }
func (BossAreaAttack) Kind() Kind  { return KindBossAreaAttack }
func (BossShielded) Kind() Kind    { return KindBossShielded }
func (PlayerRespawned) Kind() Kind { return KindPlayerRespawned }
func (PlayerFacing) Kind() Kind    { return KindPlayerFacing }
func (PlayerKilled) Kind() Kind    { return KindPlayerKilled }
