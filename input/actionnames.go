package input

import (
	"sort"

	"github.com/lixenwraith/termcalc/calc"
)

// actionRegistry maps canonical action names to commands
// Used by the keymap loader to resolve TOML action strings
var actionRegistry map[string]Command

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]Command {
	reg := map[string]Command{
		// Unbind sentinel
		"none": {},

		// Operators, named after the calculator buttons
		"sum":            Operator(calc.OpAdd),
		"subtraction":    Operator(calc.OpSub),
		"multiplication": Operator(calc.OpMul),
		"division":       Operator(calc.OpDiv),
		"percent":        {Type: CommandPercent},
		"equal":          {Type: CommandEquals},
		"dot":            {Type: CommandDot},

		// Clearing
		"all_clear":   {Type: CommandAllClear},
		"clear_entry": {Type: CommandClearEntry},

		// Clipboard
		"copy":  {Type: CommandCopy},
		"paste": {Type: CommandPaste},

		// Front end
		"toggle_sound": {Type: CommandToggleSound},
		"quit":         {Type: CommandQuit},
	}

	for d := '0'; d <= '9'; d++ {
		reg["digit_"+string(d)] = Digit(d)
	}
	return reg
}

// ActionEntry resolves an action name
func ActionEntry(name string) (Command, bool) {
	cmd, ok := actionRegistry[name]
	return cmd, ok
}

// ActionName returns the canonical name of a command
func ActionName(cmd Command) (string, bool) {
	for name, c := range actionRegistry {
		if c == cmd && name != "none" {
			return name, true
		}
	}
	return "", false
}

// ActionNames returns all action names sorted, for help output
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
