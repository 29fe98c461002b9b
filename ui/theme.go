package ui

import "github.com/gdamore/tcell/v2"

// Styles used by the calculator view
var (
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
	styleFrame   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDisplay = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleClock   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleKey     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleOp      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)
