// Package tui 在终端中渲染场地，并把按键与鼠标事件转换为每帧输入
package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"bossarena/game"
)

// holdWindow 一次按键维持方向的时长；终端只上报按下事件，靠按键重复填补间隔
const holdWindow = 150 * time.Millisecond

// hudRows 场地下方的分隔线加两行状态
const hudRows = 3

type axis int

const (
	left axis = iota
	right
	up
	down
	axisCount
)

// Screen 同时作为客户端循环的表现层与输入源；Poll 与 Draw 须在同一 goroutine 调用
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event
	now    func() time.Time

	held    [axisCount]time.Time
	facingX float32
	facingY float32
	fire    bool
	quit    bool

	// 上次绘制时本地玩家所在格子，用于鼠标瞄准
	localCol, localRow int
	view               viewport
}

// New 打开终端
func New() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.EnableMouse()
	s.HideCursor()
	return NewWithScreen(s), nil
}

// NewWithScreen 包装已初始化的 tcell 屏幕并开始读取事件
func NewWithScreen(s tcell.Screen) *Screen {
	scr := &Screen{
		screen: s,
		events: make(chan tcell.Event, 100),
		now:    time.Now,
	}
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				close(scr.events)
				return
			}
			scr.events <- ev
		}
	}()
	return scr
}

// Close 恢复终端
func (s *Screen) Close() {
	s.screen.Fini()
}

// Poll 取出积压的事件并返回本帧输入
func (s *Screen) Poll() game.Input {
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.quit = true
				return s.collect()
			}
			s.Handle(ev)
		default:
			return s.collect()
		}
	}
}

func (s *Screen) collect() game.Input {
	now := s.now()
	heldAt := func(a axis) float32 {
		if !s.held[a].IsZero() && now.Sub(s.held[a]) < holdWindow {
			return 1
		}
		return 0
	}
	in := game.Input{
		MoveX:   heldAt(right) - heldAt(left),
		MoveY:   heldAt(down) - heldAt(up),
		FacingX: s.facingX,
		FacingY: s.facingY,
		Fire:    s.fire,
		Quit:    s.quit,
	}
	s.fire = false
	s.facingX, s.facingY = 0, 0
	return in
}

// Handle 处理一个终端事件
func (s *Screen) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		s.handleKey(ev)
	case *tcell.EventMouse:
		s.handleMouse(ev)
	case *tcell.EventResize:
		s.screen.Sync()
	}
}

func (s *Screen) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.quit = true
	case tcell.KeyUp:
		s.facingX, s.facingY = 0, -1
	case tcell.KeyDown:
		s.facingX, s.facingY = 0, 1
	case tcell.KeyLeft:
		s.facingX, s.facingY = -1, 0
	case tcell.KeyRight:
		s.facingX, s.facingY = 1, 0
	case tcell.KeyRune:
		now := s.now()
		switch ev.Rune() {
		case 'w', 'W':
			s.held[up] = now
		case 's', 'S':
			s.held[down] = now
		case 'a', 'A':
			s.held[left] = now
		case 'd', 'D':
			s.held[right] = now
		case ' ':
			s.fire = true
		case 'q', 'Q':
			s.quit = true
		}
	}
}

// handleMouse 从本地玩家指向鼠标位置瞄准；左键射击
func (s *Screen) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	if s.view.cols > 0 {
		cw, ch := s.view.cellSize()
		s.facingX = float32(col-s.localCol) * cw
		s.facingY = float32(row-s.localRow) * ch
	}
	if ev.Buttons()&tcell.Button1 != 0 {
		s.fire = true
	}
}
