package main

import (
	"errors"
	"fmt"

	"github.com/tdewolff/truetype"
)

type Check struct {
	OpenType bool   `short:"O" name:"opentype" desc:"Accept OpenType flag bits"`
	Resolve  bool   `short:"r" desc:"Also resolve the components of compound glyphs"`
	Quiet    bool   `short:"q" desc:"Suppress warnings"`
	Input    string `index:"0" desc:"Input file"`
}

func (cmd *Check) Run() error {
	setQuiet(cmd.Quiet)
	font, err := readFont(cmd.Input, cmd.OpenType)
	if err != nil {
		return err
	}

	numBad := 0
	for glyphID := 0; glyphID < font.Glyf.NumGlyphs(); glyphID++ {
		if _, err := font.Glyf.Glyph(uint16(glyphID)); err != nil {
			numBad++
			if !cmd.OpenType && errors.Is(err, truetype.ErrMalformedGlyph) {
				if _, err2 := truetype.ParseOpenTypeGlyph(font.Glyf.Get(uint16(glyphID))); err2 == nil {
					Warning.Printf("%v (accepted with --opentype)\n", err)
					continue
				}
			}
			Error.Println(err)
			continue
		}
		if cmd.Resolve && font.Glyf.IsCompound(uint16(glyphID)) {
			if _, err := font.Glyf.Contour(uint16(glyphID)); err != nil {
				numBad++
				Error.Printf("glyph %d: %v\n", glyphID, err)
			}
		}
	}
	if numBad != 0 {
		return fmt.Errorf("%d of %d glyphs failed to decode", numBad, font.Glyf.NumGlyphs())
	}
	fmt.Printf("%d glyphs OK\n", font.Glyf.NumGlyphs())
	return nil
}
