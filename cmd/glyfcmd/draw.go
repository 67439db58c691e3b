package main

import (
	"fmt"

	"github.com/tdewolff/canvas"
)

type Draw struct {
	OpenType bool    `short:"O" name:"opentype" desc:"Accept OpenType flag bits"`
	Quiet    bool    `short:"q" desc:"Suppress warnings"`
	Force    bool    `short:"f" desc:"Overwrite the output file without asking"`
	Size     float64 `short:"s" default:"0" desc:"Height of the em square in the output, font units if zero"`
	Output   string  `short:"o" default:"-" desc:"Output SVG file"`
	GlyphID  uint16  `index:"0" name:"glyph" desc:"Glyph ID"`
	Input    string  `index:"1" desc:"Input file"`
}

// flipY draws into a canvas path with the y-axis pointing down, as in SVG.
type flipY struct {
	*canvas.Path
}

func (p flipY) MoveTo(x, y float64) {
	p.Path.MoveTo(x, -y)
}

func (p flipY) LineTo(x, y float64) {
	p.Path.LineTo(x, -y)
}

func (p flipY) QuadTo(cpx, cpy, x, y float64) {
	p.Path.QuadTo(cpx, -cpy, x, -y)
}

func (p flipY) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	p.Path.CubeTo(cpx1, -cpy1, cpx2, -cpy2, x, -y)
}

func (cmd *Draw) Run() error {
	setQuiet(cmd.Quiet)
	font, err := readFont(cmd.Input, cmd.OpenType)
	if err != nil {
		return err
	} else if err := checkGlyphID(font, cmd.GlyphID); err != nil {
		return err
	}

	scale := 1.0
	if cmd.Size != 0.0 {
		scale = cmd.Size / float64(font.Head.UnitsPerEm)
	}

	xMin, yMin, xMax, yMax, err := font.Glyf.ControlBox(cmd.GlyphID)
	if err != nil {
		return err
	} else if xMin == xMax || yMin == yMax {
		Warning.Printf("glyph %d has no outline\n", cmd.GlyphID)
	}

	p := &canvas.Path{}
	if err := font.Glyf.ToPath(flipY{p}, cmd.GlyphID, 0.0, 0.0, scale); err != nil {
		return err
	}

	x, y := scale*float64(xMin), -scale*float64(yMax)
	w, h := scale*(float64(xMax)-float64(xMin)), scale*(float64(yMax)-float64(yMin))
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g"><path d="%s"/></svg>`+"\n", x, y, w, h, p.ToSVG())
	return writeFile(cmd.Output, cmd.Force, []byte(svg))
}
