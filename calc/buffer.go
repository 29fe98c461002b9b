package calc

import (
	"math"
	"strings"
)

const (
	// MaxDisplayLen is the widest string the display can show
	MaxDisplayLen = 10

	// Sentinel replaces the display on any error condition
	Sentinel = "ERROR"

	// maxTokens is operand, operator, operand
	maxTokens = 3
)

// Buffer folds key commands into a pending [operand, operator, operand] expression
// Even positions always hold numbers, position 1 an operator
// Not safe for concurrent use; each calculator session owns one
type Buffer struct {
	tokens []Token

	// Memory for repeated equals
	lastNumber   Token
	lastOperator Operator
	hasMemory    bool

	// Latched error, cleared only by AllClear
	err error
}

// NewBuffer creates an empty expression buffer
func NewBuffer() *Buffer {
	return &Buffer{
		tokens: make([]Token, 0, maxTokens+1),
	}
}

// Len returns the number of pending tokens
func (b *Buffer) Len() int {
	return len(b.tokens)
}

// Tokens returns a copy of the pending tokens
func (b *Buffer) Tokens() []Token {
	out := make([]Token, len(b.tokens))
	copy(out, b.tokens)
	return out
}

// Err returns the latched error, nil when usable
func (b *Buffer) Err() error {
	return b.err
}

// Memory returns the operator and operand replayed by repeated equals
func (b *Buffer) Memory() (Operator, string, bool) {
	return b.lastOperator, b.lastNumber.Text, b.hasMemory
}

// PushDigit starts a new operand or extends the active one
func (b *Buffer) PushDigit(d rune) string {
	if b.err != nil {
		return Sentinel
	}
	if d < '0' || d > '9' {
		return b.display()
	}

	n := len(b.tokens)
	if n == 0 || !b.tokens[n-1].IsNumber() {
		b.push(Number(string(d)))
	} else {
		b.tokens[n-1].Text += string(d)
	}
	return b.display()
}

// PushDot adds a decimal point to the active operand, at most once
func (b *Buffer) PushDot() string {
	if b.err != nil {
		return Sentinel
	}

	n := len(b.tokens)
	switch {
	case n == 0 || !b.tokens[n-1].IsNumber():
		b.push(Number("0."))
	case !strings.ContainsAny(b.tokens[n-1].Text, ".e"):
		b.tokens[n-1].Text += "."
	}
	return b.display()
}

// PushOperator appends op, folding a complete expression first
// A second operator in a row replaces the pending one
func (b *Buffer) PushOperator(op Operator) string {
	if b.err != nil {
		return Sentinel
	}
	if op == OpNone {
		return b.display()
	}

	n := len(b.tokens)
	if n == 0 {
		return b.fail(ErrInvalidStart)
	}

	if b.tokens[n-1].IsNumber() {
		if n == maxTokens {
			if err := b.evaluate(); err != nil {
				return b.fail(err)
			}
		}
		b.push(Op(op))
	} else {
		b.tokens[n-1] = Op(op)
	}
	return b.display()
}

// Percent rewrites the pending expression as a percentage and evaluates it
//   - a %      → a / 100
//   - a * b %  → (a * b) / 100
//   - a / b %  → a * b
//   - a + b %, a - b % → evaluated as typed
func (b *Buffer) Percent() string {
	if b.err != nil {
		return Sentinel
	}

	switch len(b.tokens) {
	case 0:
		return b.fail(ErrInvalidStart)

	case 1:
		b.push(Op(OpDiv))
		b.push(Number("100"))

	case 2:
		// Operand and operator only, nothing to scale
		return b.display()

	case maxTokens:
		switch b.tokens[1].Op {
		case OpMul:
			if err := b.evaluate(); err != nil {
				return b.fail(err)
			}
			b.push(Op(OpDiv))
			b.push(Number("100"))
		case OpDiv:
			b.tokens[1] = Op(OpMul)
		}
	}

	if err := b.evaluate(); err != nil {
		return b.fail(err)
	}
	return b.display()
}

// Equals completes and evaluates the expression
// Repeated presses re-apply the remembered operator and operand
func (b *Buffer) Equals() string {
	if b.err != nil {
		return Sentinel
	}

	switch len(b.tokens) {
	case 0:
		return "0"

	case 1:
		if !b.hasMemory {
			return b.display()
		}
		b.push(Op(b.lastOperator))
		b.push(b.lastNumber)

	case 2:
		operand := b.tokens[0]
		if b.hasMemory {
			operand = b.lastNumber
		}
		b.remember(b.tokens[1].Op, operand)
		b.push(operand)

	case maxTokens:
		b.remember(b.tokens[1].Op, b.tokens[2])
	}

	if err := b.evaluate(); err != nil {
		return b.fail(err)
	}
	return b.display()
}

// AllClear empties the buffer and leaves the error state
// Memory is kept so equals can still replay the last operation
func (b *Buffer) AllClear() string {
	b.tokens = b.tokens[:0]
	b.err = nil
	return "0"
}

// ClearEntry removes the most recently pushed token
func (b *Buffer) ClearEntry() string {
	if b.err != nil {
		return Sentinel
	}
	if n := len(b.tokens); n > 0 {
		b.tokens = b.tokens[:n-1]
	}
	return b.display()
}

// Load enters v as a complete operand, replacing the active one
// Used by paste; non-finite values are ignored
func (b *Buffer) Load(v float64) string {
	if b.err != nil {
		return Sentinel
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return b.display()
	}

	tok := Number(FormatNumber(v))
	n := len(b.tokens)
	if n == 0 || !b.tokens[n-1].IsNumber() {
		b.push(tok)
	} else {
		b.tokens[n-1] = tok
	}
	return b.display()
}

// Render joins the tokens for display without changing state
func (b *Buffer) Render() string {
	if b.err != nil {
		return Sentinel
	}
	if len(b.tokens) == 0 {
		return "0"
	}

	var sb strings.Builder
	for _, t := range b.tokens {
		sb.WriteString(t.String())
	}
	s := sb.String()
	if len(s) > MaxDisplayLen {
		return Sentinel
	}
	return s
}

// display renders and latches overflow as an error
func (b *Buffer) display() string {
	s := b.Render()
	if s == Sentinel && b.err == nil {
		b.err = ErrOverflow
		b.tokens = b.tokens[:0]
	}
	return s
}

func (b *Buffer) push(t Token) {
	b.tokens = append(b.tokens, t)
}

func (b *Buffer) remember(op Operator, operand Token) {
	b.lastOperator = op
	b.lastNumber = operand
	b.hasMemory = true
}

// evaluate folds positions 0-2 into a single result
func (b *Buffer) evaluate() error {
	if len(b.tokens) != maxTokens {
		return nil
	}

	result, err := Evaluate(b.tokens[0], b.tokens[1].Op, b.tokens[2])
	if err != nil {
		return err
	}

	b.tokens = append(b.tokens[:0], Number(FormatNumber(result)))
	return nil
}

func (b *Buffer) fail(err error) string {
	b.err = err
	b.tokens = b.tokens[:0]
	return Sentinel
}
