package truetype

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/tdewolff/parse/v2"
	"golang.org/x/sync/errgroup"
)

// LocaTable holds the offsets of the glyph records into the glyf table.
type LocaTable struct {
	Format  int16
	Offsets []uint32 // numGlyphs+1 entries
}

// ParseLoca parses the loca table, the format is head.IndexToLocFormat and the number of glyphs comes from maxp.
func ParseLoca(b []byte, indexToLocFormat int16, numGlyphs uint16) (*LocaTable, error) {
	n := int(numGlyphs) + 1
	loca := &LocaTable{
		Format:  indexToLocFormat,
		Offsets: make([]uint32, n),
	}
	r := parse.NewBinaryReaderBytes(b)
	if indexToLocFormat == 0 {
		if len(b) < 2*n {
			return nil, fmt.Errorf("loca: %w: bad table", ErrInvalidFontData)
		}
		for i := 0; i < n; i++ {
			loca.Offsets[i] = 2 * uint32(r.ReadUint16())
		}
	} else if indexToLocFormat == 1 {
		if len(b) < 4*n {
			return nil, fmt.Errorf("loca: %w: bad table", ErrInvalidFontData)
		}
		for i := 0; i < n; i++ {
			loca.Offsets[i] = r.ReadUint32()
		}
	} else {
		return nil, fmt.Errorf("loca: %w: bad indexToLocFormat %d", ErrInvalidFontData, indexToLocFormat)
	}
	for i := 1; i < n; i++ {
		if loca.Offsets[i] < loca.Offsets[i-1] {
			return nil, fmt.Errorf("loca: %w: bad offsets", ErrInvalidFontData)
		}
	}
	return loca, nil
}

// NumGlyphs returns the number of glyphs.
func (loca *LocaTable) NumGlyphs() int {
	return len(loca.Offsets) - 1
}

// Get returns the start and end offset of the glyph record.
func (loca *LocaTable) Get(glyphID uint16) (uint32, uint32, bool) {
	if loca.NumGlyphs() <= int(glyphID) {
		return 0, 0, false
	}
	return loca.Offsets[glyphID], loca.Offsets[glyphID+1], true
}

// GlyphTable gives access to the glyph records of the glyf table.
type GlyphTable struct {
	data     []byte
	loca     *LocaTable
	reserved reservedBits
}

// ParseGlyf returns the glyf table whose records are located by loca. Glyphs are decoded as in ParseGlyph.
func ParseGlyf(b []byte, loca *LocaTable) (*GlyphTable, error) {
	return parseGlyf(b, loca, strictReserved)
}

// ParseOpenTypeGlyf is like ParseGlyf but glyphs are decoded as in ParseOpenTypeGlyph.
func ParseOpenTypeGlyf(b []byte, loca *LocaTable) (*GlyphTable, error) {
	return parseGlyf(b, loca, openTypeReserved)
}

func parseGlyf(b []byte, loca *LocaTable, reserved reservedBits) (*GlyphTable, error) {
	if loca == nil {
		return nil, fmt.Errorf("glyf: %w: missing loca table", ErrInvalidFontData)
	} else if uint32(len(b)) < loca.Offsets[len(loca.Offsets)-1] {
		return nil, fmt.Errorf("glyf: %w: bad table", ErrInvalidFontData)
	}
	return &GlyphTable{
		data:     b,
		loca:     loca,
		reserved: reserved,
	}, nil
}

// NumGlyphs returns the number of glyphs.
func (glyf *GlyphTable) NumGlyphs() int {
	return glyf.loca.NumGlyphs()
}

// Get returns the glyph record corresponding to the passed glyphID. It returns nil if the glyph doesn't exist.
func (glyf *GlyphTable) Get(glyphID uint16) []byte {
	start, end, ok := glyf.loca.Get(glyphID)
	if !ok {
		return nil
	}
	return glyf.data[start:end:end]
}

// IsCompound returns true if the glyph is a compound glyph.
func (glyf *GlyphTable) IsCompound(glyphID uint16) bool {
	b := glyf.Get(glyphID)
	if len(b) < 1 {
		return false
	}
	return b[0]&0x80 != 0 // sign bit is set on numberOfContours
}

// Glyph decodes the glyph record of glyphID.
func (glyf *GlyphTable) Glyph(glyphID uint16) (*Glyph, error) {
	b := glyf.Get(glyphID)
	if b == nil {
		return nil, fmt.Errorf("glyf: %w: bad glyphID %v", ErrInvalidFontData, glyphID)
	}
	glyph, err := parseGlyph(b, glyf.reserved)
	if err != nil {
		return nil, fmt.Errorf("glyph %v: %w", glyphID, err)
	}
	return glyph, nil
}

// DecodeAll decodes every glyph using the given number of concurrent workers, or GOMAXPROCS if workers is not positive. It stops at the first error.
func (glyf *GlyphTable) DecodeAll(ctx context.Context, workers int) ([]*Glyph, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	glyphs := make([]*Glyph, glyf.NumGlyphs())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range glyphs {
		if gctx.Err() != nil {
			break
		}
		glyphID := uint16(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			glyph, err := glyf.Glyph(glyphID)
			if err != nil {
				return err
			}
			glyphs[glyphID] = glyph // each worker writes its own index
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}
	return glyphs, nil
}

// compoundWalk tracks the glyphs on the current resolution path.
type compoundWalk struct {
	glyf   *GlyphTable
	onPath map[uint16]bool
}

func (glyf *GlyphTable) newWalk() *compoundWalk {
	return &compoundWalk{
		glyf:   glyf,
		onPath: map[uint16]bool{},
	}
}

func (w *compoundWalk) enter(glyphID uint16) error {
	if w.onPath[glyphID] {
		return fmt.Errorf("glyf: %w: glyph %v references itself", ErrCyclicGlyph, glyphID)
	} else if MaxCompoundDepth < len(w.onPath) {
		return fmt.Errorf("glyf: %w: compound glyphs too deeply nested", ErrInvalidFontData)
	}
	w.onPath[glyphID] = true
	return nil
}

func (w *compoundWalk) leave(glyphID uint16) {
	delete(w.onPath, glyphID)
}

// Dependencies returns the glyph and all glyph IDs that it uses through its components, each listed once in depth-first order.
func (glyf *GlyphTable) Dependencies(glyphID uint16) ([]uint16, error) {
	deps := []uint16{}
	seen := map[uint16]bool{}
	if err := glyf.newWalk().dependencies(glyphID, &deps, seen); err != nil {
		return nil, err
	}
	return deps, nil
}

func (w *compoundWalk) dependencies(glyphID uint16, deps *[]uint16, seen map[uint16]bool) error {
	if err := w.enter(glyphID); err != nil {
		return err
	}
	defer w.leave(glyphID)

	if seen[glyphID] {
		return nil // subtree already resolved
	}
	seen[glyphID] = true
	*deps = append(*deps, glyphID)

	glyph, err := w.glyf.Glyph(glyphID)
	if err != nil {
		return err
	}
	if compound := glyph.Compound(); compound != nil {
		for _, component := range compound.Components {
			if err := w.dependencies(component.GlyphID, deps, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// Contour is a glyph outline in absolute coordinates with all components resolved.
type Contour struct {
	GlyphID                uint16
	XMin, YMin, XMax, YMax int16
	EndPoints              []uint16
	OnCurve                []bool
	X, Y                   []int16
}

func (contour *Contour) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Glyph %v:\n", contour.GlyphID)
	fmt.Fprintf(&b, "  Contours: %v\n", len(contour.EndPoints))
	fmt.Fprintf(&b, "  Bounds: (%v,%v)-(%v,%v)\n", contour.XMin, contour.YMin, contour.XMax, contour.YMax)
	fmt.Fprintf(&b, "  EndPoints: %v\n", contour.EndPoints)
	for i := range contour.X {
		onCurve := "Off"
		if contour.OnCurve[i] {
			onCurve = "On"
		}
		fmt.Fprintf(&b, "    %8v %8v %3v\n", contour.X[i], contour.Y[i], onCurve)
	}
	return b.String()
}

// Contour returns the outline of a glyph in absolute coordinates. Compound glyphs are flattened into the final shape.
func (glyf *GlyphTable) Contour(glyphID uint16) (*Contour, error) {
	return glyf.newWalk().contour(glyphID)
}

func (w *compoundWalk) contour(glyphID uint16) (*Contour, error) {
	if err := w.enter(glyphID); err != nil {
		return nil, err
	}
	defer w.leave(glyphID)

	glyph, err := w.glyf.Glyph(glyphID)
	if err != nil {
		return nil, err
	}
	contour := &Contour{
		GlyphID: glyphID,
		XMin:    glyph.XMin,
		YMin:    glyph.YMin,
		XMax:    glyph.XMax,
		YMax:    glyph.YMax,
	}

	if simple := glyph.Simple(); simple != nil {
		contour.EndPoints = simple.EndPoints
		contour.X, contour.Y = simple.Points()
		contour.OnCurve = make([]bool, len(simple.Flags))
		for i, flag := range simple.Flags {
			contour.OnCurve[i] = flag.OnCurve()
		}
		return contour, nil
	}

	for _, component := range glyph.Compound().Components {
		sub, err := w.contour(component.GlyphID)
		if err != nil {
			return nil, err
		}

		xs := make([]int16, len(sub.X))
		ys := make([]int16, len(sub.Y))
		for i := range sub.X {
			xs[i], ys[i] = transform(component.Options, sub.X[i], sub.Y[i])
		}

		var dx, dy int16
		switch args := component.Arguments.(type) {
		case Offsets:
			dx, dy = args.X, args.Y
			if component.Flags.ScaledComponentOffset() {
				dx, dy = transform(component.Options, dx, dy)
			}
		case Indices:
			if len(contour.X) <= int(args.Parent) || len(xs) <= int(args.Child) {
				return nil, malformed("glyph %v: point index out of range in component %v", glyphID, component.GlyphID)
			}
			dx = contour.X[args.Parent] - xs[args.Child]
			dy = contour.Y[args.Parent] - ys[args.Child]
		}

		numPoints := uint16(len(contour.X))
		for _, endPoint := range sub.EndPoints {
			contour.EndPoints = append(contour.EndPoints, numPoints+endPoint)
		}
		contour.OnCurve = append(contour.OnCurve, sub.OnCurve...)
		for i := range xs {
			contour.X = append(contour.X, dx+xs[i])
			contour.Y = append(contour.Y, dy+ys[i])
		}
	}
	return contour, nil
}

// transform applies the linear transformation of a component using 2.14 arithmetic with rounding.
func transform(opts Options, x, y int16) (int16, int16) {
	var txx, txy, tyx, tyy F2Dot14
	switch opts := opts.(type) {
	case Scalar:
		txx, tyy = opts.Scale, opts.Scale
	case Vector:
		txx, tyy = opts.X, opts.Y
	case Matrix:
		txx, txy, tyx, tyy = opts.XX, opts.XY, opts.YX, opts.YY
	default:
		return x, y
	}
	mul := func(v int16, f F2Dot14) int16 {
		const half = 1 << 13
		return int16((int64(v)*int64(f) + half) >> 14)
	}
	return mul(x, txx) + mul(y, tyx), mul(x, txy) + mul(y, tyy)
}
