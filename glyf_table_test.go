package truetype

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/test"
)

type point struct {
	x, y int16
	on   bool
}

// outline encodes a simple glyph with all deltas as words.
func outline(endPoints []uint16, points ...point) []byte {
	w := parse.NewBinaryWriter([]byte{})
	writeHeader(w, int16(len(endPoints)))
	for _, endPoint := range endPoints {
		w.WriteUint16(endPoint)
	}
	w.WriteUint16(0) // instructionLength
	for _, pt := range points {
		if pt.on {
			w.WriteUint8(0x01)
		} else {
			w.WriteUint8(0x00)
		}
	}
	var prev int16
	for _, pt := range points {
		w.WriteInt16(pt.x - prev)
		prev = pt.x
	}
	prev = 0
	for _, pt := range points {
		w.WriteInt16(pt.y - prev)
		prev = pt.y
	}
	return w.Bytes()
}

func square() []byte {
	return outline([]uint16{3}, point{0, 0, true}, point{100, 0, true}, point{100, 100, true}, point{0, 100, true})
}

func newGlyphTable(t *testing.T, openType bool, records ...[]byte) *GlyphTable {
	glyf := parse.NewBinaryWriter([]byte{})
	loca := parse.NewBinaryWriter([]byte{})
	for _, record := range records {
		loca.WriteUint32(uint32(glyf.Len()))
		glyf.WriteBytes(record)
	}
	loca.WriteUint32(uint32(glyf.Len()))

	locaTable, err := ParseLoca(loca.Bytes(), 1, uint16(len(records)))
	test.Error(t, err)
	var table *GlyphTable
	if openType {
		table, err = ParseOpenTypeGlyf(glyf.Bytes(), locaTable)
	} else {
		table, err = ParseGlyf(glyf.Bytes(), locaTable)
	}
	test.Error(t, err)
	return table
}

func TestLoca(t *testing.T) {
	loca, err := ParseLoca([]byte{0x00, 0x00, 0x00, 0x05, 0x00, 0x05, 0x00, 0x0A}, 0, 3)
	test.Error(t, err)
	test.T(t, loca.NumGlyphs(), 3)
	test.T(t, loca.Offsets, []uint32{0, 10, 10, 20})

	start, end, ok := loca.Get(1)
	test.That(t, ok)
	test.T(t, start, uint32(10))
	test.T(t, end, uint32(10))
	_, _, ok = loca.Get(3)
	test.That(t, !ok)

	loca, err = ParseLoca([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00}, 1, 1)
	test.Error(t, err)
	test.T(t, loca.Offsets, []uint32{0, 65536})
}

func TestLocaErrors(t *testing.T) {
	var tests = []struct {
		name      string
		b         []byte
		format    int16
		numGlyphs uint16
	}{
		{"short format 0", []byte{0x00, 0x00, 0x00}, 0, 1},
		{"short format 1", []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 1, 1},
		{"bad format", []byte{0x00, 0x00, 0x00, 0x00}, 2, 1},
		{"decreasing offsets", []byte{0x00, 0x02, 0x00, 0x01}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLoca(tt.b, tt.format, tt.numGlyphs)
			test.That(t, errors.Is(err, ErrInvalidFontData), err)
		})
	}
}

func TestGlyfErrors(t *testing.T) {
	_, err := ParseGlyf([]byte{}, nil)
	test.That(t, errors.Is(err, ErrInvalidFontData), err)

	loca, err := ParseLoca([]byte{0x00, 0x00, 0x00, 0x08}, 0, 1)
	test.Error(t, err)
	_, err = ParseGlyf(make([]byte, 15), loca)
	test.That(t, errors.Is(err, ErrInvalidFontData), err)
}

func TestGlyphTable(t *testing.T) {
	compound := compoundRecord(component(flagArgsAreXY, 1, 0x00, 0x00))
	glyf := newGlyphTable(t, false, []byte{}, square(), compound)
	test.T(t, glyf.NumGlyphs(), 3)
	test.T(t, glyf.Get(1), square())
	test.T(t, len(glyf.Get(0)), 0)
	test.That(t, glyf.Get(3) == nil)

	test.That(t, !glyf.IsCompound(0))
	test.That(t, !glyf.IsCompound(1))
	test.That(t, glyf.IsCompound(2))

	glyph, err := glyf.Glyph(0)
	test.Error(t, err)
	test.T(t, glyph.Simple().NumPoints(), 0)

	glyph, err = glyf.Glyph(2)
	test.Error(t, err)
	test.T(t, glyph.Compound().Components[0].GlyphID, uint16(1))

	_, err = glyf.Glyph(3)
	test.That(t, errors.Is(err, ErrInvalidFontData), err)
}

func TestGlyphTableMalformed(t *testing.T) {
	glyf := newGlyphTable(t, false, square(), simpleRecord(2, []byte{0x09, 0x03}))
	_, err := glyf.Glyph(1)
	test.That(t, errors.Is(err, ErrMalformedGlyph), err)

	// record cut short by the next loca offset
	glyf = newGlyphTable(t, false, square()[:20], square())
	_, err = glyf.Glyph(0)
	test.That(t, errors.Is(err, ErrShortRead), err)
}

func TestDependencies(t *testing.T) {
	glyf := newGlyphTable(t, false,
		[]byte{},
		square(),
		compoundRecord(component(flagArgsAreXY|flagMoreComponents, 1, 0, 0), component(flagArgsAreXY, 1, 10, 0)),
		compoundRecord(component(flagArgsAreXY|flagMoreComponents, 2, 0, 0), component(flagArgsAreXY, 1, 0, 10)),
		compoundRecord(component(flagArgsAreXY, 5, 0, 0)),
		compoundRecord(component(flagArgsAreXY, 4, 0, 0)),
		compoundRecord(component(flagArgsAreXY, 6, 0, 0)),
		compoundRecord(component(flagArgsAreXY, 99, 0, 0)),
	)

	var tests = []struct {
		glyphID uint16
		deps    []uint16
	}{
		{0, []uint16{0}},
		{1, []uint16{1}},
		{2, []uint16{2, 1}},
		{3, []uint16{3, 2, 1}},
	}
	for _, tt := range tests {
		deps, err := glyf.Dependencies(tt.glyphID)
		test.Error(t, err)
		test.T(t, deps, tt.deps)
	}

	_, err := glyf.Dependencies(4)
	test.That(t, errors.Is(err, ErrCyclicGlyph), err)
	_, err = glyf.Dependencies(6)
	test.That(t, errors.Is(err, ErrCyclicGlyph), err)
	_, err = glyf.Dependencies(7)
	test.That(t, errors.Is(err, ErrInvalidFontData), err)

	_, err = glyf.Contour(5)
	test.That(t, errors.Is(err, ErrCyclicGlyph), err)
}

func TestDependenciesDepth(t *testing.T) {
	records := [][]byte{}
	for i := 1; i < 12; i++ {
		records = append(records, compoundRecord(component(flagArgsAreXY, uint16(i), 0, 0)))
	}
	records = append(records, square())
	glyf := newGlyphTable(t, false, records...)

	deps, err := glyf.Dependencies(5)
	test.Error(t, err)
	test.T(t, len(deps), 7)

	_, err = glyf.Dependencies(0)
	test.That(t, err != nil)
	test.That(t, !errors.Is(err, ErrCyclicGlyph), err)
}

func TestContour(t *testing.T) {
	glyf := newGlyphTable(t, true,
		square(),
		compoundRecord(component(flagArgsAreXY|flagHasScale, 0, 10, 20, 0x20, 0x00)),
		compoundRecord(component(flagArgsAreXY|flagHasScale|flagScaledComponentOffset, 0, 10, 20, 0x20, 0x00)),
		compoundRecord(component(flagArgsAreXY|flagMoreComponents, 0, 0, 0), component(0, 0, 2, 0)),
		compoundRecord(component(flagArgsAreXY|flagMoreComponents, 0, 0, 0), component(0, 0, 9, 0)),
	)

	contour, err := glyf.Contour(0)
	test.Error(t, err)
	test.T(t, contour.EndPoints, []uint16{3})
	test.T(t, contour.OnCurve, []bool{true, true, true, true})
	test.T(t, contour.X, []int16{0, 100, 100, 0})
	test.T(t, contour.Y, []int16{0, 0, 100, 100})

	contour, err = glyf.Contour(1)
	test.Error(t, err)
	test.T(t, contour.GlyphID, uint16(1))
	test.T(t, contour.EndPoints, []uint16{3})
	test.T(t, contour.X, []int16{10, 60, 60, 10})
	test.T(t, contour.Y, []int16{20, 20, 70, 70})

	contour, err = glyf.Contour(2)
	test.Error(t, err)
	test.T(t, contour.X, []int16{5, 55, 55, 5})
	test.T(t, contour.Y, []int16{10, 10, 60, 60})

	// second component's point 0 is moved onto point 2 of the first
	contour, err = glyf.Contour(3)
	test.Error(t, err)
	test.T(t, contour.EndPoints, []uint16{3, 7})
	test.T(t, contour.X, []int16{0, 100, 100, 0, 100, 200, 200, 100})
	test.T(t, contour.Y, []int16{0, 0, 100, 100, 100, 100, 200, 200})
	test.T(t, len(contour.OnCurve), 8)

	_, err = glyf.Contour(4)
	test.That(t, errors.Is(err, ErrMalformedGlyph), err)
}

func TestTransform(t *testing.T) {
	var tests = []struct {
		name   string
		opts   Options
		x, y   int16
		tx, ty int16
	}{
		{"identity", Identity{}, 100, -50, 100, -50},
		{"scalar", Scalar{0x2000}, 100, -50, 50, -25},
		{"vector", Vector{0x4000, -0x4000}, 100, 50, 100, -50},
		{"rotation", Matrix{XX: 0, XY: 0x4000, YX: -0x4000, YY: 0}, 100, 0, 0, 100},
		{"shear", Matrix{XX: 0x4000, XY: 0, YX: 0x2000, YY: 0x4000}, 10, 100, 60, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := transform(tt.opts, tt.x, tt.y)
			test.T(t, x, tt.tx)
			test.T(t, y, tt.ty)
		})
	}
}

func TestDecodeAll(t *testing.T) {
	records := [][]byte{[]byte{}, triangle(), square()}
	for i := 0; i < 50; i++ {
		records = append(records, compoundRecord(component(flagArgsAreXY|flagHasScale, uint16(i%3), byte(i), 0, 0x40, 0x00)))
	}
	glyf := newGlyphTable(t, false, records...)

	want := make([]*Glyph, glyf.NumGlyphs())
	for i := range want {
		glyph, err := glyf.Glyph(uint16(i))
		test.Error(t, err)
		want[i] = glyph
	}

	for _, workers := range []int{0, 1, 4} {
		glyphs, err := glyf.DecodeAll(context.Background(), workers)
		test.Error(t, err)
		if diff := cmp.Diff(want, glyphs); diff != "" {
			t.Errorf("workers=%d: glyphs mismatch (-want +got):\n%s", workers, diff)
		}
	}

	records[25] = simpleRecord(1, []byte{0x81})
	glyf = newGlyphTable(t, false, records...)
	_, err := glyf.DecodeAll(context.Background(), 4)
	test.That(t, errors.Is(err, ErrMalformedGlyph), err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = glyf.DecodeAll(ctx, 4)
	test.That(t, err != nil)
}
