package mock

import "github.com/fwojciec/seoaudit"

var _ seoaudit.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of seoaudit.Decoder.
type Decoder struct {
	DecodeFn func(raw []byte) string
}

func (d *Decoder) Decode(raw []byte) string {
	return d.DecodeFn(raw)
}

var _ seoaudit.EncodingDetector = (*EncodingDetector)(nil)

// EncodingDetector is a mock implementation of seoaudit.EncodingDetector.
type EncodingDetector struct {
	DetectEncodingFn func(raw []byte) string
}

func (d *EncodingDetector) DetectEncoding(raw []byte) string {
	return d.DetectEncodingFn(raw)
}
