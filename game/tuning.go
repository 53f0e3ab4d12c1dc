package game

// 场地尺寸；出生点与边界依赖这些值，各客户端与中继需保持一致
const (
	ArenaWidth  float32 = 800
	ArenaHeight float32 = 600
)

const (
	PlayerRadius      float32 = 15
	PlayerSpeed       float32 = 200
	PlayerMaxHealth   uint32  = 100
	PlayerRespawnTime float32 = 5
)

const (
	BossRadius           float32 = 60
	BossMaxHealth        uint32  = 500
	BossSpeed            float32 = 60
	BossDashSpeed        float32 = 600
	BossShootInterval    float32 = 1.4
	BossMoveInterval     float32 = 1.5
	BossPowerInterval    float32 = 6
	BossDashInterval     float32 = 4
	BossShieldDuration   float32 = 3
	BossRespawnTime      float32 = 5
	BossSpawnY           float32 = 100
	BossMovementVariance float32 = 250
	BossEdgeMargin       float32 = 50
	BossDashStopDistance float32 = 10
	// BossArriveDistance Boss 距移动目标多近时停下
	BossArriveDistance float32 = 5
)

const (
	BulletRadius         float32 = 3
	BossBulletRadius     float32 = 5
	PlayerBulletSpeed    float32 = 400
	BossBulletSpeed      float32 = 300
	PlayerBulletLifetime float32 = 3
	BossBulletLifetime   float32 = 4

	// PvPDamage 玩家子弹对其他玩家的伤害
	PvPDamage uint32 = 15
	// BossHitDamage 玩家子弹对 Boss 的伤害
	BossHitDamage uint32 = 10
	// BossBulletDamage Boss 子弹对玩家的伤害
	BossBulletDamage uint32 = 10
)

const (
	AreaAttackRadius   float32 = 100
	AreaAttackDuration float32 = 1
	AreaAttackDamage   uint32  = 20
)

const (
	IndicatorDuration   float32 = 1.5
	IndicatorFloatSpeed float32 = 30
)

const (
	MultiShotCount  = 5
	MultiShotSpread = 0.2 // 相邻子弹间的弧度
)

const (
	// WarningWindow Boss 技能或冲刺前多久开始给出预警
	WarningWindow float32 = 2
	// MaxMessagesPerStep 每个模拟步最多应用的入站消息数
	MaxMessagesPerStep = 100
	// LeaderboardSize 快照中按击杀数排名的玩家数
	LeaderboardSize = 5
)
