// Package chardet guesses character encodings using gogs/chardet.
package chardet

import (
	"github.com/fwojciec/seoaudit"
	"github.com/gogs/chardet"
)

// Ensure Detector implements seoaudit.EncodingDetector at compile time.
var _ seoaudit.EncodingDetector = (*Detector)(nil)

// Detector wraps the chardet text detector.
type Detector struct {
	d *chardet.Detector
}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{d: chardet.NewTextDetector()}
}

// DetectEncoding returns the most likely charset name, or an empty string
// if nothing matched with non-zero confidence.
func (d *Detector) DetectEncoding(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	result, err := d.d.DetectBest(raw)
	if err != nil || result == nil || result.Confidence == 0 {
		return ""
	}
	return result.Charset
}
