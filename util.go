package truetype

import (
	"errors"
	"fmt"
)

// MaxCompoundDepth is the maximum nesting of compound glyphs that will be resolved.
var MaxCompoundDepth = 8

// ErrShortRead is returned when fewer bytes remain than a field requires.
var ErrShortRead = errors.New("short read")

// ErrMalformedGlyph is returned when a glyph record violates the glyf format.
var ErrMalformedGlyph = errors.New("malformed glyph")

// ErrCyclicGlyph is returned when compound glyphs reference each other in a cycle.
var ErrCyclicGlyph = errors.New("cyclic compound glyph")

// ErrInvalidFontData is returned if a table is malformed.
var ErrInvalidFontData = fmt.Errorf("invalid font data")

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("glyf: %w: %s", ErrMalformedGlyph, fmt.Sprintf(format, args...))
}

// Uint16ToFlags converts a uint16 in 16 booleans from least to most significant.
func Uint16ToFlags(v uint16) (flags [16]bool) {
	for i := 0; i < 16; i++ {
		flags[i] = v&(1<<i) != 0
	}
	return
}
