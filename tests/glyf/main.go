//go:build gofuzz
// +build gofuzz

package fuzz

import "github.com/tdewolff/truetype"

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	if _, err := truetype.ParseOpenTypeGlyph(data); err != nil {
		return 0
	}
	return 1
}
