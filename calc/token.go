package calc

import (
	"fmt"
	"strconv"
)

// TokenKind discriminates buffer tokens
type TokenKind uint8

const (
	TokenNumber TokenKind = iota
	TokenOperator
)

// Operator identifies a binary arithmetic operator
type Operator uint8

const (
	OpNone Operator = iota
	OpAdd           // +
	OpSub           // -
	OpMul           // *
	OpDiv           // /
)

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return ""
}

// ParseOperator resolves an operator glyph
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	}
	return OpNone, false
}

// Token is one element of the pending expression
// Numbers keep their literal form so partial entries ("12.") render as typed
type Token struct {
	Kind TokenKind
	Text string   // Number literal, valid when Kind == TokenNumber
	Op   Operator // Valid when Kind == TokenOperator
}

// Number creates a number token from its literal form
func Number(text string) Token {
	return Token{Kind: TokenNumber, Text: text}
}

// Op creates an operator token
func Op(op Operator) Token {
	return Token{Kind: TokenOperator, Op: op}
}

// IsNumber reports whether the token is an operand
func (t Token) IsNumber() bool {
	return t.Kind == TokenNumber
}

func (t Token) String() string {
	if t.Kind == TokenOperator {
		return t.Op.String()
	}
	return t.Text
}

// Value converts a number token to float64
// This is the only place literals become numeric
func (t Token) Value() (float64, error) {
	if t.Kind != TokenNumber {
		return 0, fmt.Errorf("token %q: %w", t.String(), ErrNotNumber)
	}
	v, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		return 0, fmt.Errorf("token %q: %w", t.Text, ErrMalformedNumber)
	}
	return v, nil
}
