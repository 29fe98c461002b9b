package toml

import "fmt"

// TokenType classifies lexer output
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF
	TokenNewline
	TokenComment

	TokenBare    // bare key or unquoted word
	TokenString  // "basic" or 'literal'
	TokenInteger // 42, -7
	TokenFloat   // 0.5, 1e3
	TokenBool    // true, false

	TokenEqual    // =
	TokenDot      // .
	TokenComma    // ,
	TokenLBracket // [
	TokenRBracket // ]
)

// Token is a lexeme with its source position
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "newline"
	case TokenError:
		return "error: " + t.Literal
	}
	return fmt.Sprintf("%q", t.Literal)
}
