package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser builds a map[string]any tree from TOML input
// Supported: [table] headers, dotted keys, strings, integers, floats, booleans, arrays
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
	root  map[string]any
	scope map[string]any
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
		root:  make(map[string]any),
	}
	p.scope = p.root
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
	for p.peek.Type == TokenComment {
		p.peek = p.lexer.NextToken()
	}
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenNewline:
			p.next()
			continue
		case TokenLBracket:
			if err := p.parseTable(); err != nil {
				return nil, err
			}
		case TokenBare, TokenString, TokenInteger, TokenBool:
			if err := p.parseKeyValue(); err != nil {
				return nil, err
			}
		case TokenError:
			return nil, fmt.Errorf("line %d: %s", p.cur.Line, p.cur.Literal)
		default:
			return nil, fmt.Errorf("line %d: unexpected %s", p.cur.Line, p.cur)
		}

		if err := p.expectLineEnd(); err != nil {
			return nil, err
		}
	}
	return p.root, nil
}

func (p *Parser) expectLineEnd() error {
	switch p.cur.Type {
	case TokenNewline:
		p.next()
		return nil
	case TokenEOF:
		return nil
	}
	return fmt.Errorf("line %d: expected end of line, got %s", p.cur.Line, p.cur)
}

// parseTable handles a [a.b] header and moves the scope to it
func (p *Parser) parseTable() error {
	line := p.cur.Line
	p.next() // [
	if p.cur.Type == TokenLBracket {
		return fmt.Errorf("line %d: arrays of tables are not supported", line)
	}

	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenRBracket {
		return fmt.Errorf("line %d: expected ] after table name", line)
	}
	p.next() // ]

	table, err := descend(p.root, keys)
	if err != nil {
		return fmt.Errorf("line %d: %w", line, err)
	}
	p.scope = table
	return nil
}

func (p *Parser) parseKeyValue() error {
	line := p.cur.Line
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return fmt.Errorf("line %d: expected = after key %q, got %s", line, strings.Join(keys, "."), p.cur)
	}
	p.next() // =

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	table, err := descend(p.scope, keys[:len(keys)-1])
	if err != nil {
		return fmt.Errorf("line %d: %w", line, err)
	}
	last := keys[len(keys)-1]
	if _, exists := table[last]; exists {
		return fmt.Errorf("line %d: duplicate key %q", line, last)
	}
	table[last] = val
	return nil
}

// parseKey reads a possibly dotted key
func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		switch p.cur.Type {
		case TokenBare, TokenString, TokenInteger, TokenBool:
			keys = append(keys, p.cur.Literal)
		default:
			return nil, fmt.Errorf("line %d: expected key, got %s", p.cur.Line, p.cur)
		}
		p.next()
		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.next()
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.next()
		return tok.Literal, nil
	case TokenInteger:
		p.next()
		v, err := parseInteger(tok.Literal)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", tok.Line, err)
		}
		return int(v), nil
	case TokenFloat:
		p.next()
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Literal, "_", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", tok.Line, err)
		}
		return v, nil
	case TokenBool:
		p.next()
		return tok.Literal == "true", nil
	case TokenLBracket:
		return p.parseArray()
	case TokenError:
		return nil, fmt.Errorf("line %d: %s", tok.Line, tok.Literal)
	}
	return nil, fmt.Errorf("line %d: unexpected value %s", tok.Line, tok)
}

// parseArray reads [v, v, ...], newlines and a trailing comma allowed
func (p *Parser) parseArray() ([]any, error) {
	line := p.cur.Line
	p.next() // [
	arr := make([]any, 0)

	for {
		for p.cur.Type == TokenNewline {
			p.next()
		}
		if p.cur.Type == TokenRBracket {
			p.next()
			return arr, nil
		}
		if p.cur.Type == TokenEOF {
			return nil, fmt.Errorf("line %d: unterminated array", line)
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		for p.cur.Type == TokenNewline {
			p.next()
		}
		switch p.cur.Type {
		case TokenComma:
			p.next()
		case TokenRBracket:
		case TokenEOF:
			return nil, fmt.Errorf("line %d: unterminated array", line)
		default:
			return nil, fmt.Errorf("line %d: expected , or ] in array, got %s", p.cur.Line, p.cur)
		}
	}
}

// descend walks keys from table, creating intermediate tables
func descend(table map[string]any, keys []string) (map[string]any, error) {
	for _, key := range keys {
		child, exists := table[key]
		if !exists {
			m := make(map[string]any)
			table[key] = m
			table = m
			continue
		}
		m, ok := child.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q is not a table", key)
		}
		table = m
	}
	return table, nil
}
