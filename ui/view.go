package ui

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcalc/calc"
	"github.com/lixenwraith/termcalc/config"
	"github.com/mattn/go-runewidth"
)

// Layout, relative to the view origin
const (
	originX = 2
	originY = 1

	// Display window holds MaxDisplayLen plus one space of padding each side
	displayInner = calc.MaxDisplayLen + 2
	frameWidth   = displayInner + 2

	rowTitle    = 0
	rowFrameTop = 1
	rowDisplay  = 2
	rowFrameBot = 3
	rowClock    = 4
	rowLegend   = 6
)

// keypad mirrors the on-screen button grid of a desk calculator
var keypad = [][]string{
	{"AC", "CE", "%", "/"},
	{"7", "8", "9", "*"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", ".", "=", ""},
}

// State is everything the view needs for one frame
type State struct {
	Display string
	Now     time.Time
	Muted   bool
	NoAudio bool
	Remote  string // Listen address, empty when the keypad server is off
	Status  string // Transient message, e.g. after copy
}

// View paints the calculator onto a tcell screen
type View struct {
	screen tcell.Screen
	cfg    config.DisplayConfig
}

// NewView creates a view over screen
func NewView(screen tcell.Screen, cfg config.DisplayConfig) *View {
	return &View{screen: screen, cfg: cfg}
}

// Draw renders one frame and shows it
func (v *View) Draw(st State) {
	v.screen.Clear()

	v.drawText(originX, originY+rowTitle, "termcalc", styleTitle)
	v.drawFrame(st.Display)

	if v.cfg.ShowClock {
		line := st.Now.Format(v.cfg.TimeLayout) + "  " + st.Now.Format(v.cfg.DateLayout)
		v.drawText(originX, originY+rowClock, line, styleClock)
	}

	bottom := originY + rowClock + 1
	if v.cfg.ShowLegend {
		bottom = v.drawLegend(originY + rowLegend)
	}

	v.drawText(originX, bottom+1, v.statusLine(st), styleStatus)

	v.screen.Show()
}

func (v *View) drawFrame(display string) {
	top := "┌" + strings.Repeat("─", displayInner) + "┐"
	bot := "└" + strings.Repeat("─", displayInner) + "┘"
	v.drawText(originX, originY+rowFrameTop, top, styleFrame)
	v.drawText(originX, originY+rowFrameBot, bot, styleFrame)

	y := originY + rowDisplay
	v.screen.SetContent(originX, y, '│', nil, styleFrame)
	v.screen.SetContent(originX+frameWidth-1, y, '│', nil, styleFrame)

	style := styleDisplay
	if display == calc.Sentinel {
		style = styleError
	}
	// Right aligned, one cell of padding before the closing border
	v.drawRight(originX+frameWidth-3, y, display, style)
}

// drawLegend paints the keypad and returns the row after it
func (v *View) drawLegend(y int) int {
	const cell = 4
	for r, row := range keypad {
		for c, label := range row {
			style := styleKey
			if _, ok := calc.ParseOperator(label); ok || label == "=" || label == "%" {
				style = styleOp
			}
			v.drawText(originX+c*cell, y+r, label, style)
		}
	}
	return y + len(keypad)
}

func (v *View) statusLine(st State) string {
	var parts []string
	switch {
	case st.NoAudio:
		parts = append(parts, "sound n/a")
	case st.Muted:
		parts = append(parts, "sound off")
	default:
		parts = append(parts, "sound on")
	}
	if st.Remote != "" {
		parts = append(parts, "remote "+st.Remote)
	}
	if st.Status != "" {
		parts = append(parts, st.Status)
	}
	parts = append(parts, "^C copy ^V paste ^S sound ^Q quit")
	return strings.Join(parts, " | ")
}

// drawText writes s from x, advancing by rune width; returns the next column
func (v *View) drawText(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// drawRight writes s so that its last cell lands on column right
func (v *View) drawRight(right, y int, s string, style tcell.Style) {
	v.drawText(right-runewidth.StringWidth(s)+1, y, s, style)
}

// Sync repaints after a resize
func (v *View) Sync() {
	v.screen.Sync()
}
