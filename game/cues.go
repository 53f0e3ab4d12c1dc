package game

// Cue 表现层可能需要播放音效的时刻
type Cue string

const (
	CuePlayerShot Cue = "player_shot"
	CueBossShot   Cue = "boss_shot"
	CueHit        Cue = "hit"
	CueExplosion  Cue = "explosion"
	CueJoin       Cue = "join"
	CuePower      Cue = "power"
	CueDash       Cue = "dash"
	CueRespawn    Cue = "respawn"
)

// AllCues 模拟可能发出的全部提示
var AllCues = []Cue{CuePlayerShot, CueBossShot, CueHit, CueExplosion, CueJoin, CuePower, CueDash, CueRespawn}

// CueSink 接收提示；实现不得阻塞模拟
type CueSink interface {
	Cue(c Cue)
}

type nopCues struct{}

func (nopCues) Cue(Cue) {}

// NopCues 丢弃所有提示
func NopCues() CueSink { return nopCues{} }
