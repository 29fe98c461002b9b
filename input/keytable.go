package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcalc/calc"
)

// KeyTable maps raw input to commands
type KeyTable struct {
	// Symbols covers button names ("sum", "ac") and keyboard characters ("+", "Escape")
	Symbols map[string]Command

	// Keys covers terminal special keys (Enter, Backspace, Ctrl+*)
	Keys map[tcell.Key]Command
}

// DefaultKeyTable returns the default bindings
// Button names and keyboard characters resolve to the same commands
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		Symbols: map[string]Command{
			// Button names
			"ac":             {Type: CommandAllClear},
			"ce":             {Type: CommandClearEntry},
			"percent":        {Type: CommandPercent},
			"division":       Operator(calc.OpDiv),
			"multiplication": Operator(calc.OpMul),
			"subtraction":    Operator(calc.OpSub),
			"sum":            Operator(calc.OpAdd),
			"equal":          {Type: CommandEquals},
			"dot":            {Type: CommandDot},

			// Keyboard
			"Escape":    {Type: CommandAllClear},
			"Backspace": {Type: CommandClearEntry},
			"%":         {Type: CommandPercent},
			"/":         Operator(calc.OpDiv),
			"*":         Operator(calc.OpMul),
			"-":         Operator(calc.OpSub),
			"+":         Operator(calc.OpAdd),
			"=":         {Type: CommandEquals},
			"Enter":     {Type: CommandEquals},
			".":         {Type: CommandDot},
			",":         {Type: CommandDot},
		},

		Keys: map[tcell.Key]Command{
			tcell.KeyEnter:      {Type: CommandEquals},
			tcell.KeyEscape:     {Type: CommandAllClear},
			tcell.KeyDelete:     {Type: CommandAllClear},
			tcell.KeyBackspace:  {Type: CommandClearEntry},
			tcell.KeyBackspace2: {Type: CommandClearEntry},
			tcell.KeyCtrlC:      {Type: CommandCopy},
			tcell.KeyCtrlV:      {Type: CommandPaste},
			tcell.KeyCtrlS:      {Type: CommandToggleSound},
			tcell.KeyCtrlQ:      {Type: CommandQuit},
		},
	}

	for d := '0'; d <= '9'; d++ {
		kt.Symbols[string(d)] = Digit(d)
	}
	return kt
}

// Lookup resolves a raw symbol
func (kt *KeyTable) Lookup(raw string) (Command, bool) {
	cmd, ok := kt.Symbols[raw]
	return cmd, ok
}

// LookupKey resolves a terminal special key
func (kt *KeyTable) LookupKey(k tcell.Key) (Command, bool) {
	cmd, ok := kt.Keys[k]
	return cmd, ok
}

// Clone returns a deep copy with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		Symbols: make(map[string]Command, len(kt.Symbols)),
		Keys:    make(map[tcell.Key]Command, len(kt.Keys)),
	}
	for k, v := range kt.Symbols {
		c.Symbols[k] = v
	}
	for k, v := range kt.Keys {
		c.Keys[k] = v
	}
	return c
}
