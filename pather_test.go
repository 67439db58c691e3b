package truetype

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

type pathRecorder struct {
	cmds []string
}

func (p *pathRecorder) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, fmt.Sprintf("M%v %v", x, y))
}

func (p *pathRecorder) LineTo(x, y float64) {
	p.cmds = append(p.cmds, fmt.Sprintf("L%v %v", x, y))
}

func (p *pathRecorder) QuadTo(cpx, cpy, x, y float64) {
	p.cmds = append(p.cmds, fmt.Sprintf("Q%v %v %v %v", cpx, cpy, x, y))
}

func (p *pathRecorder) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	p.cmds = append(p.cmds, fmt.Sprintf("C%v %v %v %v %v %v", cpx1, cpy1, cpx2, cpy2, x, y))
}

func (p *pathRecorder) Close() {
	p.cmds = append(p.cmds, "z")
}

func TestContourToPath(t *testing.T) {
	var tests = []struct {
		name    string
		contour *Contour
		cmds    []string
	}{
		{"square", &Contour{
			EndPoints: []uint16{3},
			OnCurve:   []bool{true, true, true, true},
			X:         []int16{0, 100, 100, 0},
			Y:         []int16{0, 0, 100, 100},
		}, []string{"M0 0", "L100 0", "L100 100", "L0 100", "z"}},
		{"quadratic", &Contour{
			EndPoints: []uint16{2},
			OnCurve:   []bool{true, false, true},
			X:         []int16{0, 50, 100},
			Y:         []int16{0, 100, 0},
		}, []string{"M0 0", "Q50 100 100 0", "z"}},
		{"starts off curve", &Contour{
			EndPoints: []uint16{2},
			OnCurve:   []bool{false, true, true},
			X:         []int16{50, 100, 0},
			Y:         []int16{100, 0, 0},
		}, []string{"M100 0", "L0 0", "Q50 100 100 0", "z"}},
		{"implied on curve point", &Contour{
			EndPoints: []uint16{3},
			OnCurve:   []bool{true, false, false, true},
			X:         []int16{0, 0, 100, 100},
			Y:         []int16{0, 100, 100, 0},
		}, []string{"M0 0", "Q0 100 50 100", "Q100 100 100 0", "z"}},
		{"only off curve", &Contour{
			EndPoints: []uint16{1},
			OnCurve:   []bool{false, false},
			X:         []int16{0, 100},
			Y:         []int16{0, 0},
		}, []string{"M50 0", "Q0 0 50 0", "Q100 0 50 0", "z"}},
		{"zero-length contour", &Contour{
			EndPoints: []uint16{0, 0, 1},
			OnCurve:   []bool{true, true},
			X:         []int16{0, 10},
			Y:         []int16{0, 10},
		}, []string{"M0 0", "z", "M10 10", "z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &pathRecorder{}
			tt.contour.ToPath(p, 0.0, 0.0, 1.0)
			test.T(t, p.cmds, tt.cmds)
		})
	}
}

func TestGlyphToPath(t *testing.T) {
	glyf := newGlyphTable(t, false, square())
	p := &pathRecorder{}
	test.Error(t, glyf.ToPath(p, 0, 10.0, 20.0, 0.5))
	test.T(t, p.cmds, []string{"M10 20", "L60 20", "L60 70", "L10 70", "z"})

	test.That(t, glyf.ToPath(p, 1, 0.0, 0.0, 1.0) != nil)
}

func TestControlBox(t *testing.T) {
	glyf := newGlyphTable(t, false,
		[]byte{},
		outline([]uint16{2}, point{-10, 5, true}, point{50, 120, false}, point{110, -7, true}),
		compoundRecord(component(flagArgsAreXY, 1, 0xFB, 10)),
	)

	xMin, yMin, xMax, yMax, err := glyf.ControlBox(0)
	test.Error(t, err)
	test.T(t, []int16{xMin, yMin, xMax, yMax}, []int16{0, 0, 0, 0})

	xMin, yMin, xMax, yMax, err = glyf.ControlBox(1)
	test.Error(t, err)
	test.T(t, []int16{xMin, yMin, xMax, yMax}, []int16{-10, -7, 110, 120})

	xMin, yMin, xMax, yMax, err = glyf.ControlBox(2)
	test.Error(t, err)
	test.T(t, []int16{xMin, yMin, xMax, yMax}, []int16{-15, 3, 105, 130})
}
