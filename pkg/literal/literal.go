// Package literal parses the human-readable literal syntax that scripting
// languages use when printing nested data structures. The grammar is a strict
// superset of JSON: strings may be single- or double-quoted, booleans and
// null accept both the JSON spellings (true/false/null) and the capitalized
// ones (True/False/None), and tuples in parentheses are read as arrays.
package literal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// SyntaxError describes a parse failure at a byte offset in the input.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// Parse reads exactly one literal value from s. The result is one of
// nil, bool, int64, float64, string, []interface{} or map[string]interface{},
// so it can be handed directly to encoding/json for re-serialization.
// Trailing non-whitespace input is an error.
func Parse(s string) (interface{}, error) {
	p := &parser{input: s}
	p.skipSpace()
	if p.eof() {
		return nil, &SyntaxError{Pos: p.pos, Msg: "empty input"}
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, &SyntaxError{Pos: p.pos, Msg: "unexpected trailing data"}
	}
	return v, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errf(format string, args ...interface{}) error {
	return &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseValue() (interface{}, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errf("unexpected end of input")
	}
	switch c := p.peek(); {
	case c == '[':
		return p.parseSequence(']')
	case c == '(':
		return p.parseSequence(')')
	case c == '{':
		return p.parseMapping()
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || c == '+' || (c >= '0' && c <= '9') || c == '.':
		return p.parseNumber()
	default:
		return p.parseKeyword()
	}
}

// parseKeyword handles the bare word literals. Anything else that starts
// with a letter is a name, not a literal, and is rejected.
func (p *parser) parseKeyword() (interface{}, error) {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			p.pos++
			continue
		}
		break
	}
	word := p.input[start:p.pos]
	switch word {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	case "null", "None":
		return nil, nil
	case "":
		return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", p.peek())}
	default:
		return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid literal %q", word)}
	}
}

func (p *parser) parseNumber() (interface{}, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	digits := 0
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
		digits++
	}
	isFloat := false
	if !p.eof() && p.peek() == '.' {
		isFloat = true
		p.pos++
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
			digits++
		}
	}
	if digits == 0 {
		return nil, &SyntaxError{Pos: start, Msg: "malformed number"}
	}
	if !p.eof() && (p.peek() == 'e' || p.peek() == 'E') {
		isFloat = true
		p.pos++
		if !p.eof() && (p.peek() == '-' || p.peek() == '+') {
			p.pos++
		}
		expDigits := 0
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
			expDigits++
		}
		if expDigits == 0 {
			return nil, &SyntaxError{Pos: start, Msg: "malformed exponent"}
		}
	}
	text := p.input[start:p.pos]
	if !isFloat {
		if n, err := strconv.ParseInt(strings.TrimPrefix(text, "+"), 10, 64); err == nil {
			return n, nil
		}
		// Falls through for integers beyond int64 range.
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("malformed number %q", text)}
	}
	return f, nil
}

func (p *parser) parseString() (string, error) {
	quote := p.peek()
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated string")
		}
		c := p.peek()
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			p.pos++
			if err := p.parseEscape(&sb); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.input[p.pos:])
			sb.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) parseEscape(sb *strings.Builder) error {
	if p.eof() {
		return p.errf("unterminated escape sequence")
	}
	c := p.peek()
	p.pos++
	switch c {
	case '\'', '"', '\\', '/':
		sb.WriteByte(c)
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '0':
		sb.WriteByte(0)
	case 'x':
		n, err := p.hexDigits(2)
		if err != nil {
			return err
		}
		sb.WriteRune(rune(n))
	case 'u':
		n, err := p.hexDigits(4)
		if err != nil {
			return err
		}
		r := rune(n)
		// Combine UTF-16 surrogate pairs the way a JSON decoder would.
		if utf16.IsSurrogate(r) && p.pos+6 <= len(p.input) && p.input[p.pos] == '\\' && p.input[p.pos+1] == 'u' {
			p.pos += 2
			n2, err := p.hexDigits(4)
			if err != nil {
				return err
			}
			r = utf16.DecodeRune(r, rune(n2))
		}
		sb.WriteRune(r)
	default:
		p.pos--
		return p.errf("invalid escape sequence \\%c", c)
	}
	return nil
}

func (p *parser) hexDigits(count int) (int, error) {
	if p.pos+count > len(p.input) {
		return 0, p.errf("truncated hex escape")
	}
	text := p.input[p.pos : p.pos+count]
	n, err := strconv.ParseInt(text, 16, 32)
	if err != nil {
		return 0, p.errf("invalid hex escape %q", text)
	}
	p.pos += count
	return int(n), nil
}

func (p *parser) parseSequence(closer byte) ([]interface{}, error) {
	p.pos++ // consume the opening bracket
	items := []interface{}{}
	p.skipSpace()
	if !p.eof() && p.peek() == closer {
		p.pos++
		return items, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		p.skipSpace()
		if p.eof() {
			return nil, p.errf("unterminated sequence, expected %q", closer)
		}
		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()
			// Trailing comma before the closer is accepted, matching the
			// relaxed source grammar.
			if !p.eof() && p.peek() == closer {
				p.pos++
				return items, nil
			}
		case closer:
			p.pos++
			return items, nil
		default:
			return nil, p.errf("expected ',' or %q in sequence", closer)
		}
	}
}

func (p *parser) parseMapping() (map[string]interface{}, error) {
	p.pos++ // consume '{'
	m := map[string]interface{}{}
	p.skipSpace()
	if !p.eof() && p.peek() == '}' {
		p.pos++
		return m, nil
	}
	for {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.eof() || p.peek() != ':' {
			return nil, p.errf("expected ':' after mapping key")
		}
		p.pos++
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		m[key] = v
		p.skipSpace()
		if p.eof() {
			return nil, p.errf("unterminated mapping, expected '}'")
		}
		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()
			if !p.eof() && p.peek() == '}' {
				p.pos++
				return m, nil
			}
		case '}':
			p.pos++
			return m, nil
		default:
			return nil, p.errf("expected ',' or '}' in mapping")
		}
	}
}

// parseKey reads a mapping key. String keys are used as-is; numeric keys are
// coerced to their decimal text, matching how the reference serializer
// renders non-string keys in JSON output.
func (p *parser) parseKey() (string, error) {
	p.skipSpace()
	if p.eof() {
		return "", p.errf("unexpected end of input in mapping key")
	}
	start := p.pos
	v, err := p.parseValue()
	if err != nil {
		return "", err
	}
	switch k := v.(type) {
	case string:
		return k, nil
	case int64:
		return strconv.FormatInt(k, 10), nil
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64), nil
	default:
		return "", &SyntaxError{Pos: start, Msg: "unsupported mapping key type"}
	}
}
