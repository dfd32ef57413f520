// Package jsoncheck decides whether a raw field value is well-formed JSON,
// tolerating the common malformed variant where the value is written in a
// scripting language's literal style (single-quoted strings, True/False/None)
// instead of strict JSON.
package jsoncheck

import (
	"encoding/json"
	"strings"

	"github.com/dmaier/csvjsoncheck/pkg/literal"
)

// Stage identifies where in the pipeline a value was rejected.
type Stage string

const (
	// StageNone means the value passed both stages.
	StageNone Stage = ""
	// StageEmpty means the raw value was the empty string.
	StageEmpty Stage = "empty"
	// StagePreprocess means the relaxed literal parse failed.
	StagePreprocess Stage = "preprocess"
	// StageDecode means the strict JSON parse of the normalized form failed.
	StageDecode Stage = "decode"
)

// Outcome is the result of classifying one field value.
type Outcome struct {
	Valid      bool
	Message    string // empty when Valid
	Stage      Stage  // failure stage, StageNone when Valid
	Normalized string // strict JSON form, set only when Valid
}

// Classify runs the two-stage relaxed-then-strict pipeline on raw.
//
// The relaxed stage trims whitespace, strips one wrapping pair of single
// quotes, and parses the remainder with the literal grammar, which is a
// superset of JSON. The parsed value is re-serialized as strict JSON and that
// normalized form is parsed again with a strict JSON decoder. The second
// parse is expected to succeed, but it is a real parse so that any
// serializer/decoder disagreement surfaces instead of being assumed away.
func Classify(raw string) Outcome {
	if raw == "" {
		return Outcome{Message: "Empty string", Stage: StageEmpty}
	}

	normalized, err := normalize(raw)
	if err != nil {
		return Outcome{Message: "Preprocessing error: " + err.Error(), Stage: StagePreprocess}
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(normalized), &decoded); err != nil {
		return Outcome{Message: "JSON decode error: " + err.Error(), Stage: StageDecode}
	}

	return Outcome{Valid: true, Normalized: normalized}
}

// normalize converts a literal-style value into strict JSON text.
func normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		s = s[1 : len(s)-1]
	} else if s == "'" {
		s = ""
	}

	v, err := literal.Parse(s)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
