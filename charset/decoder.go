// Package charset decodes page bytes of unknown encoding into UTF-8 text.
package charset

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/seoaudit"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is assumed when the detector cannot guess an encoding.
const DefaultEncoding = "utf-8"

// Ensure Decoder implements seoaudit.Decoder at compile time.
var _ seoaudit.Decoder = (*Decoder)(nil)

// Decoder converts raw bytes to text through a fallback chain: strict UTF-8,
// then the detector's guess, then UTF-8 with replacement characters.
type Decoder struct {
	detector seoaudit.EncodingDetector
}

// NewDecoder creates a Decoder. A nil detector skips the detection step.
func NewDecoder(detector seoaudit.EncodingDetector) *Decoder {
	return &Decoder{detector: detector}
}

// Decode returns raw as text. It never fails.
func (d *Decoder) Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	if d.detector != nil {
		label := d.detector.DetectEncoding(raw)
		if label == "" {
			label = DefaultEncoding
		}
		if text, ok := decodeLabel(raw, label); ok {
			return text
		}
	}

	return replaceInvalid(raw)
}

// decodeLabel decodes raw with the named encoding, substituting undecodable
// sequences. Returns false if the label is unknown or decoding fails.
func decodeLabel(raw []byte, label string) (string, bool) {
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return "", false
	}

	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}

	// Some labels (utf-8 itself) pass bytes through untouched.
	if !utf8.Valid(out) {
		return replaceInvalid(out), true
	}
	return string(out), true
}

// replaceInvalid decodes raw as UTF-8, mapping each invalid sequence to
// U+FFFD.
func replaceInvalid(raw []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(out)
}
