package main

import (
	"fmt"
)

type Glyph struct {
	OpenType bool   `short:"O" name:"opentype" desc:"Accept OpenType flag bits"`
	Contour  bool   `short:"c" desc:"Print the outline with components resolved"`
	Quiet    bool   `short:"q" desc:"Suppress warnings"`
	GlyphID  uint16 `index:"0" name:"glyph" desc:"Glyph ID"`
	Input    string `index:"1" desc:"Input file"`
}

func (cmd *Glyph) Run() error {
	setQuiet(cmd.Quiet)
	font, err := readFont(cmd.Input, cmd.OpenType)
	if err != nil {
		return err
	} else if err := checkGlyphID(font, cmd.GlyphID); err != nil {
		return err
	}

	if cmd.Contour {
		contour, err := font.Glyf.Contour(cmd.GlyphID)
		if err != nil {
			return err
		}
		fmt.Print(contour)
		return nil
	}

	glyph, err := font.Glyf.Glyph(cmd.GlyphID)
	if err != nil {
		return err
	}
	fmt.Printf("Glyph %d: %d bytes\n", cmd.GlyphID, len(font.Glyf.Get(cmd.GlyphID)))
	fmt.Print(glyph)
	return nil
}
