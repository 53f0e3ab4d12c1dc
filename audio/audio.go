// Package audio 为模拟提示播放简短的合成音
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"bossarena/game"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq   float64
	length time.Duration
	volume float64 // 线性增益，1 为原样
}

var tones = map[game.Cue]tone{
	game.CuePlayerShot: {freq: 880, length: 40 * time.Millisecond, volume: 0.25},
	game.CueBossShot:   {freq: 220, length: 60 * time.Millisecond, volume: 0.3},
	game.CueHit:        {freq: 440, length: 50 * time.Millisecond, volume: 0.4},
	game.CueExplosion:  {freq: 110, length: 250 * time.Millisecond, volume: 0.6},
	game.CueJoin:       {freq: 660, length: 120 * time.Millisecond, volume: 0.3},
	game.CuePower:      {freq: 330, length: 200 * time.Millisecond, volume: 0.5},
	game.CueDash:       {freq: 165, length: 150 * time.Millisecond, volume: 0.5},
	game.CueRespawn:    {freq: 990, length: 180 * time.Millisecond, volume: 0.3},
}

// Tone 为提示构建有限长度的音频流
func Tone(c game.Cue) (beep.Streamer, error) {
	t, ok := tones[c]
	if !ok {
		return nil, fmt.Errorf("audio: no tone for cue %q", c)
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(t.length), sine),
		Base:     2,
		Volume:   math.Log2(t.volume),
	}, nil
}

// Speaker 把提示音混合输出到默认设备，实现 game.CueSink
type Speaker struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
	log   *zap.SugaredLogger
}

func NewSpeaker(log *zap.SugaredLogger) *Speaker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Speaker{mixer: &beep.Mixer{}, log: log}
}

// Init 打开输出设备；没有设备时所有提示都会被丢弃
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.ready = true
	return nil
}

// Cue 排队播放 c 对应的音，不会等待播放
func (s *Speaker) Cue(c game.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	st, err := Tone(c)
	if err != nil {
		s.log.Debugw("cue skipped", "cue", string(c), "err", err)
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.ready = false
}
