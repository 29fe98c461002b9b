package input

import (
	"fmt"

	"github.com/lixenwraith/termcalc/calc"
)

// CommandType discriminates semantic calculator commands
type CommandType uint8

const (
	CommandNone CommandType = iota

	// Buffer commands
	CommandDigit      // 0-9
	CommandDot        // . ,
	CommandOperator   // + - * /
	CommandAllClear   // ac, Escape
	CommandClearEntry // ce, Backspace
	CommandPercent    // percent, %
	CommandEquals     // equal, =, Enter

	// Clipboard
	CommandCopy  // cControl chord, Ctrl+C
	CommandPaste // Ctrl+V

	// Front-end only, never reach the buffer
	CommandToggleSound // Ctrl+S
	CommandQuit        // Ctrl+Q
)

// Command is a classified key
// Pure data, safe to copy and compare
type Command struct {
	Type     CommandType
	Digit    rune          // Valid for CommandDigit
	Operator calc.Operator // Valid for CommandOperator
}

// Digit builds a digit command
func Digit(d rune) Command {
	return Command{Type: CommandDigit, Digit: d}
}

// Operator builds a binary operator command
func Operator(op calc.Operator) Command {
	return Command{Type: CommandOperator, Operator: op}
}

// IsFrontEnd reports commands handled by the UI rather than the buffer
func (c Command) IsFrontEnd() bool {
	return c.Type == CommandToggleSound || c.Type == CommandQuit
}

func (c Command) String() string {
	switch c.Type {
	case CommandDigit:
		return fmt.Sprintf("digit(%c)", c.Digit)
	case CommandOperator:
		return fmt.Sprintf("operator(%s)", c.Operator)
	}
	if name, ok := ActionName(c); ok {
		return name
	}
	return "none"
}
