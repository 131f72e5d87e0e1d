package lispi

import (
	"fmt"
	"strconv"
	"unicode"
)

// Parser is an incremental reader. Lists left open at the end of a chunk
// survive across ParseNext calls, so a form may span several lines of input.
type Parser struct {
	stack [][]Value
}

func NewParser() *Parser {
	return &Parser{}
}

// Depth reports how many lists are currently open.
func (p *Parser) Depth() int {
	return len(p.stack)
}

// ParseNext consumes one chunk of source text and returns the top-level
// forms completed by it, in source order. Tokens and string literals must
// not straddle chunk boundaries; open lists may.
func (p *Parser) ParseNext(src string) ([]Value, error) {
	var result []Value
	add := func(v Value) {
		if n := len(p.stack); n > 0 {
			p.stack[n-1] = append(p.stack[n-1], v)
		} else {
			result = append(result, v)
		}
	}

	input := []rune(src)
	pos := 0
	for pos < len(input) {
		ch := input[pos]
		switch {
		case unicode.IsSpace(ch):
			pos++
		case ch == ';':
			for pos < len(input) && input[pos] != '\n' {
				pos++
			}
		case ch == '(':
			p.stack = append(p.stack, []Value{})
			pos++
		case ch == ')':
			if len(p.stack) == 0 {
				return nil, fmt.Errorf("unmatched closing parenthesis")
			}
			elems := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			add(ListVal(elems))
			pos++
		case ch == '"':
			// No escape processing: the string is the raw text up to the
			// next double quote.
			pos++
			start := pos
			for pos < len(input) && input[pos] != '"' {
				pos++
			}
			if pos >= len(input) {
				return nil, fmt.Errorf("unterminated string: %s", string(input[start:]))
			}
			add(StringVal(string(input[start:pos])))
			pos++
		default:
			start := pos
			for pos < len(input) && !isDelimiter(input[pos]) {
				pos++
			}
			token := string(input[start:pos])
			if n, err := strconv.ParseInt(token, 10, 64); err == nil {
				add(IntVal(n))
			} else if isSymbol(token) {
				add(SymbolVal(token))
			} else {
				return nil, fmt.Errorf("unsupported token %q", token)
			}
		}
	}
	return result, nil
}

// Finish fails if the reader was left inside an unclosed list.
func (p *Parser) Finish() error {
	if len(p.stack) == 0 {
		return nil
	}
	return fmt.Errorf("unexpected end of input: %d unclosed list(s)", len(p.stack))
}

func isSymbol(token string) bool {
	switch token {
	case "+", "-", "*", "/", "=", ">", "<":
		return true
	}
	runes := []rune(token)
	if len(runes) == 0 || !unicode.IsLetter(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '?' && r != '/' && r != '_' {
			return false
		}
	}
	return true
}

func isDelimiter(ch rune) bool {
	return unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' || ch == ';'
}
