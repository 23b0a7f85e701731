package seoaudit

import (
	"encoding/json"
	"io"
	"strings"
)

// Type tags assigned to structured-data blocks that carry no usable @type.
const (
	TypeTagGraph  = "graph"
	TypeTagObject = "object"
	TypeTagList   = "list"
	TypeTagRaw    = "raw"
)

// StructuredDataBlock is one embedded JSON-LD script payload.
//
// Parsed reports whether Raw could be decoded. When it is false Value is nil
// and Raw is kept as evidence; a payload of literal null is Parsed with a
// nil Value.
type StructuredDataBlock struct {
	Raw    string `json:"raw"`
	Value  any    `json:"json"`
	Parsed bool   `json:"parsed"`
}

// newlineReplacer collapses raw line breaks, which authors often leave
// inside JSON string literals.
var newlineReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// ParseStructuredData decodes a trimmed JSON-LD payload. The payload is
// parsed as-is first, then again with newlines collapsed to spaces. If both
// attempts fail the block is returned unparsed. Numbers are kept as
// json.Number so identifiers such as GTINs survive re-encoding digit for
// digit.
func ParseStructuredData(raw string) StructuredDataBlock {
	block := StructuredDataBlock{Raw: raw}

	if v, ok := decodeJSON(raw); ok {
		block.Value, block.Parsed = v, true
		return block
	}
	if v, ok := decodeJSON(newlineReplacer.Replace(raw)); ok {
		block.Value, block.Parsed = v, true
		return block
	}

	return block
}

// decodeJSON decodes exactly one JSON value from s.
func decodeJSON(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}

// TypeTag classifies the block for summaries.
//
// An object whose @graph is a list is "graph"; otherwise an object reports
// its @type, or "object" if it has none. A list is "list". Unparseable
// payloads and bare scalars are "raw".
func (b *StructuredDataBlock) TypeTag() string {
	if !b.Parsed {
		return TypeTagRaw
	}

	switch v := b.Value.(type) {
	case map[string]any:
		if _, ok := v["@graph"].([]any); ok {
			return TypeTagGraph
		}
		if t := typeName(v["@type"]); t != "" {
			return t
		}
		return TypeTagObject
	case []any:
		return TypeTagList
	default:
		return TypeTagRaw
	}
}

// typeName renders an @type value. Multi-typed nodes are joined with commas
// so they stay inside one semicolon-separated summary entry.
func typeName(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		names := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				names = append(names, s)
			}
		}
		return strings.Join(names, ",")
	default:
		return ""
	}
}
