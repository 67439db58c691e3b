package main

import (
	"fmt"
	"strings"
)

type Deps struct {
	OpenType bool   `short:"O" name:"opentype" desc:"Accept OpenType flag bits"`
	Quiet    bool   `short:"q" desc:"Suppress warnings"`
	GlyphID  uint16 `index:"0" name:"glyph" desc:"Glyph ID"`
	Input    string `index:"1" desc:"Input file"`
}

func (cmd *Deps) Run() error {
	setQuiet(cmd.Quiet)
	font, err := readFont(cmd.Input, cmd.OpenType)
	if err != nil {
		return err
	} else if err := checkGlyphID(font, cmd.GlyphID); err != nil {
		return err
	}

	deps, err := font.Glyf.Dependencies(cmd.GlyphID)
	if err != nil {
		return err
	}
	ids := make([]string, len(deps))
	for i, glyphID := range deps {
		ids[i] = fmt.Sprintf("%d", glyphID)
	}
	fmt.Println(strings.Join(ids, " "))
	return nil
}
