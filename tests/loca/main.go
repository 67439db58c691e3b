//go:build gofuzz
// +build gofuzz

package fuzz

import "github.com/tdewolff/truetype"

// Fuzz is a fuzz test. The first byte selects the loca format and the second the number of glyphs, the loca table follows and the rest is the glyf table.
func Fuzz(data []byte) int {
	if len(data) < 2 {
		return 0
	}
	format, numGlyphs := int16(data[0]&1), uint16(data[1])
	data = data[2:]
	n := 2 * (int(numGlyphs) + 1)
	if format == 1 {
		n *= 2
	}
	if len(data) < n {
		return 0
	}
	loca, err := truetype.ParseLoca(data[:n], format, numGlyphs)
	if err != nil {
		return 0
	}
	glyf, err := truetype.ParseOpenTypeGlyf(data[n:], loca)
	if err != nil {
		return 0
	}
	for glyphID := 0; glyphID < glyf.NumGlyphs(); glyphID++ {
		_, _ = glyf.Contour(uint16(glyphID))
		_, _ = glyf.Dependencies(uint16(glyphID))
	}
	return 1
}
