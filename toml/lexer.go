package toml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer splits TOML input into tokens
type Lexer struct {
	input []byte
	pos   int
	line  int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input, line: 1}
}

// NextToken returns the next token, TokenEOF at end of input
func (l *Lexer) NextToken() Token {
	l.skipBlank()
	if l.pos >= len(l.input) {
		return l.token(TokenEOF, "")
	}

	ch := l.peek()
	switch ch {
	case '\n':
		l.advance()
		tok := l.token(TokenNewline, "\n")
		tok.Line--
		return tok
	case '#':
		return l.readComment()
	case '=':
		l.advance()
		return l.token(TokenEqual, "=")
	case '.':
		l.advance()
		return l.token(TokenDot, ".")
	case ',':
		l.advance()
		return l.token(TokenComma, ",")
	case '[':
		l.advance()
		return l.token(TokenLBracket, "[")
	case ']':
		l.advance()
		return l.token(TokenRBracket, "]")
	case '"':
		return l.readBasicString()
	case '\'':
		return l.readLiteralString()
	}

	if isBareChar(ch) || ch == '+' {
		return l.readWord()
	}

	l.advance()
	return l.token(TokenError, fmt.Sprintf("unexpected character %q", ch))
}

func (l *Lexer) token(typ TokenType, lit string) Token {
	return Token{Type: typ, Literal: lit, Line: l.line}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) skipBlank() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) readComment() Token {
	start := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenComment, string(l.input[start:l.pos]))
}

// readBasicString reads a double-quoted string with Go-compatible escapes
func (l *Lexer) readBasicString() Token {
	start := l.pos
	l.advance()
	escaped := false
	for l.pos < len(l.input) {
		ch := l.advance()
		switch {
		case ch == '\n':
			return l.token(TokenError, "newline in string")
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			s, err := strconv.Unquote(string(l.input[start:l.pos]))
			if err != nil {
				return l.token(TokenError, fmt.Sprintf("bad escape in string: %v", err))
			}
			return l.token(TokenString, s)
		}
	}
	return l.token(TokenError, "unterminated string")
}

// readLiteralString reads a single-quoted string without escapes
func (l *Lexer) readLiteralString() Token {
	l.advance()
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '\n' {
			return l.token(TokenError, "newline in string")
		}
		if ch == '\'' {
			s := string(l.input[start:l.pos])
			l.advance()
			return l.token(TokenString, s)
		}
		l.advance()
	}
	return l.token(TokenError, "unterminated string")
}

// readWord reads a bare key, number or boolean
func (l *Lexer) readWord() Token {
	start := l.pos
	numeric := isDigit(l.peek()) || l.peek() == '+' || l.peek() == '-'
	for l.pos < len(l.input) {
		ch := l.peek()
		if isBareChar(ch) || ch == '+' || (ch == '.' && numeric) {
			l.advance()
			continue
		}
		break
	}
	word := string(l.input[start:l.pos])

	switch {
	case word == "true", word == "false":
		return l.token(TokenBool, word)
	case !numeric:
		return l.token(TokenBare, word)
	}
	if _, err := parseInteger(word); err == nil {
		return l.token(TokenInteger, word)
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(word, "_", ""), 64); err == nil {
		return l.token(TokenFloat, word)
	}
	return l.token(TokenBare, word)
}

// parseInteger accepts decimal and 0x/0o/0b prefixed integers with _ separators
func parseInteger(word string) (int64, error) {
	clean := strings.ReplaceAll(word, "_", "")
	digits := strings.TrimLeft(clean, "+-")
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return strconv.ParseInt(clean, 0, 64)
		}
	}
	return strconv.ParseInt(clean, 10, 64)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isBareChar reports A-Za-z0-9_- which TOML allows in bare keys
func isBareChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r) || r == '_' || r == '-'
}
