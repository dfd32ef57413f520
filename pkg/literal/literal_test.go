package literal

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  interface{}
	}{
		{name: "json true", input: "true", want: true},
		{name: "capitalized true", input: "True", want: true},
		{name: "json false", input: "false", want: false},
		{name: "capitalized false", input: "False", want: false},
		{name: "json null", input: "null", want: nil},
		{name: "none", input: "None", want: nil},
		{name: "integer", input: "42", want: int64(42)},
		{name: "negative integer", input: "-7", want: int64(-7)},
		{name: "explicit positive", input: "+3", want: int64(3)},
		{name: "float", input: "2.5", want: 2.5},
		{name: "leading dot float", input: ".5", want: 0.5},
		{name: "exponent", input: "1e3", want: 1000.0},
		{name: "negative exponent", input: "25e-1", want: 2.5},
		{name: "single quoted string", input: "'hello'", want: "hello"},
		{name: "double quoted string", input: `"hello"`, want: "hello"},
		{name: "surrounding whitespace", input: "  17  ", want: int64(17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "escaped single quote", input: `'it\'s'`, want: "it's"},
		{name: "escaped double quote", input: `"say \"hi\""`, want: `say "hi"`},
		{name: "newline and tab", input: `'a\nb\tc'`, want: "a\nb\tc"},
		{name: "backslash", input: `'a\\b'`, want: `a\b`},
		{name: "hex escape", input: `'\x41'`, want: "A"},
		{name: "unicode escape", input: `'\u00e9'`, want: "é"},
		{name: "surrogate pair", input: `"\ud83d\ude00"`, want: "😀"},
		{name: "unicode passthrough", input: "'héllo'", want: "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseContainers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  interface{}
	}{
		{
			name:  "single quoted list",
			input: "['a', 'b', 1, true]",
			want:  []interface{}{"a", "b", int64(1), true},
		},
		{
			name:  "json array",
			input: `["x", "y"]`,
			want:  []interface{}{"x", "y"},
		},
		{
			name:  "empty list",
			input: "[]",
			want:  []interface{}{},
		},
		{
			name:  "nested list",
			input: "[[1, 2], [3]]",
			want:  []interface{}{[]interface{}{int64(1), int64(2)}, []interface{}{int64(3)}},
		},
		{
			name:  "tuple reads as array",
			input: "('a', 1)",
			want:  []interface{}{"a", int64(1)},
		},
		{
			name:  "trailing comma",
			input: "[1, 2,]",
			want:  []interface{}{int64(1), int64(2)},
		},
		{
			name:  "single quoted map",
			input: "{'a': 1, 'b': None}",
			want:  map[string]interface{}{"a": int64(1), "b": nil},
		},
		{
			name:  "empty map",
			input: "{}",
			want:  map[string]interface{}{},
		},
		{
			name:  "numeric key coerced",
			input: "{1: 'one'}",
			want:  map[string]interface{}{"1": "one"},
		},
		{
			name:  "nested structure",
			input: "{'items': [{'id': 1}, {'id': 2}], 'ok': True}",
			want: map[string]interface{}{
				"items": []interface{}{
					map[string]interface{}{"id": int64(1)},
					map[string]interface{}{"id": int64(2)},
				},
				"ok": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty input", input: "", wantMsg: "empty input"},
		{name: "whitespace only", input: "   ", wantMsg: "empty input"},
		{name: "bare name", input: "not json at all", wantMsg: "invalid literal"},
		{name: "missing map value", input: "{'a': }", wantMsg: "unexpected character"},
		{name: "unterminated list", input: "[1, 2", wantMsg: "unterminated sequence"},
		{name: "unterminated string", input: "'abc", wantMsg: "unterminated string"},
		{name: "mismatched brackets", input: "[1, 2}", wantMsg: "expected ',' or"},
		{name: "trailing data", input: "1 2", wantMsg: "unexpected trailing data"},
		{name: "lone dot", input: ".", wantMsg: "malformed number"},
		{name: "bad escape", input: `'\q'`, wantMsg: "invalid escape"},
		{name: "non-string map key", input: "{[1]: 2}", wantMsg: "unsupported mapping key"},
		{name: "missing colon", input: "{'a' 1}", wantMsg: "expected ':'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got none", tt.input)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse(%q) error = %q, want it to contain %q", tt.input, err, tt.wantMsg)
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Errorf("Parse(%q) error type = %T, want *SyntaxError", tt.input, err)
			}
		})
	}
}

func TestParseInt64Overflow(t *testing.T) {
	got, err := Parse("92233720368547758080")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := got.(float64); !ok {
		t.Errorf("Parse() = %T, want float64 fallback for out-of-range integer", got)
	}
}
