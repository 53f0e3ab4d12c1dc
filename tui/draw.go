package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"bossarena/game"
)

var (
	styleArena     = tcell.StyleDefault
	styleBorder    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLocal     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleRemote    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleDead      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBoss      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleShield    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleDash      = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleBullet    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBossShot  = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleArea      = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleIndicator = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleWarn      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// viewport 把场地坐标映射到 HUD 上方的格子
type viewport struct {
	cols, rows int
}

func (v viewport) cellSize() (float32, float32) {
	return game.ArenaWidth / float32(v.cols), game.ArenaHeight / float32(v.rows)
}

func (v viewport) cell(x, y float32) (int, int) {
	cw, ch := v.cellSize()
	col := int(x / cw)
	row := int(y / ch)
	return min(max(col, 0), v.cols-1), min(max(row, 0), v.rows-1)
}

// Draw 渲染一帧快照
func (s *Screen) Draw(snap game.Snapshot) {
	scr := s.screen
	scr.Clear()
	w, h := scr.Size()
	if w < 20 || h < hudRows+5 {
		s.text(0, 0, "terminal too small", styleWarn)
		scr.Show()
		return
	}
	s.view = viewport{cols: w, rows: h - hudRows}

	for _, a := range snap.AreaAttacks {
		s.ring(a.X, a.Y, game.AreaAttackRadius, '░', styleArea)
	}
	for _, b := range snap.Bullets {
		col, row := s.view.cell(b.X, b.Y)
		if b.FromBoss {
			scr.SetContent(col, row, '*', nil, styleBossShot)
		} else {
			scr.SetContent(col, row, '·', nil, styleBullet)
		}
	}
	s.drawBoss(snap.Boss)
	for i, p := range snap.Players {
		s.drawPlayer(p, i == 0)
	}
	for _, d := range snap.Indicators {
		col, row := s.view.cell(d.X, d.Y)
		s.text(col, row, fmt.Sprintf("-%d", d.Amount), styleIndicator)
	}
	for col := 0; col < w; col++ {
		scr.SetContent(col, s.view.rows, '─', nil, styleBorder)
	}
	s.drawHUD(snap, s.view.rows+1, w)
	scr.Show()
}

func (s *Screen) drawBoss(b game.BossView) {
	if b.State == game.BossDead {
		return
	}
	style, glyph := styleBoss, 'B'
	switch {
	case b.Shielded:
		style, glyph = styleShield, '◎'
	case b.State == game.BossDashing:
		style = styleDash
	}
	s.ring(b.X, b.Y, game.BossRadius, '.', style)
	col, row := s.view.cell(b.X, b.Y)
	s.screen.SetContent(col, row, glyph, nil, style)
}

func (s *Screen) drawPlayer(p game.Player, local bool) {
	col, row := s.view.cell(p.X, p.Y)
	style, glyph := styleRemote, 'P'
	if local {
		style, glyph = styleLocal, '@'
		s.localCol, s.localRow = col, row
	}
	if !p.Alive {
		style, glyph = styleDead, 'x'
	}
	s.screen.SetContent(col, row, glyph, nil, style)
}

// ring 在 (x, y) 周围画半径 r 的圆
func (s *Screen) ring(x, y, r float32, glyph rune, style tcell.Style) {
	const steps = 48
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		px := x + r*float32(math.Cos(a))
		py := y + r*float32(math.Sin(a))
		if px < 0 || py < 0 || px > game.ArenaWidth || py > game.ArenaHeight {
			continue
		}
		col, row := s.view.cell(px, py)
		s.screen.SetContent(col, row, glyph, nil, style)
	}
}

func (s *Screen) drawHUD(snap game.Snapshot, row, width int) {
	me := snap.Local()
	status := fmt.Sprintf("HP %d/%d  kills %d", me.Health, me.MaxHealth, me.Kills)
	if !me.Alive {
		status = fmt.Sprintf("DEAD  respawn in %.1fs  kills %d", me.RespawnRemaining(), me.Kills)
	}
	col := s.text(0, row, status, styleHUD)

	b := snap.Boss
	switch {
	case b.State == game.BossDead:
		col = s.text(col+3, row, fmt.Sprintf("BOSS down, back in %.1fs", b.RespawnRemaining), styleWarn)
	default:
		col = s.text(col+3, row, fmt.Sprintf("BOSS %d/%d", b.Health, b.MaxHealth), styleBoss)
		if b.Shielded {
			col = s.text(col+1, row, "[shield]", styleShield)
		}
		if b.PowerWarning > 0 {
			col = s.text(col+1, row, fmt.Sprintf("power %.1fs", b.PowerWarning), styleWarn)
		}
		if b.DashWarning > 0 {
			s.text(col+1, row, fmt.Sprintf("dash %.1fs", b.DashWarning), styleWarn)
		}
	}

	board := "top:"
	for i, p := range snap.Leaderboard {
		board += fmt.Sprintf(" %d.#%d(%d)", i+1, p.ID, p.Kills)
	}
	if len(board) > width {
		board = board[:width]
	}
	s.text(0, row+1, board, styleArena)
}

// text 从 (col, row) 写入字符串，返回其后的列
func (s *Screen) text(col, row int, str string, style tcell.Style) int {
	for _, r := range str {
		s.screen.SetContent(col, row, r, nil, style)
		col++
	}
	return col
}
