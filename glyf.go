package truetype

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Glyph is a single decoded record of the glyf table.
type Glyph struct {
	ContourCount           int16 // negative for compound glyphs
	XMin, YMin, XMax, YMax int16
	Description            Description
}

// Description is either a *SimpleOutline or a *CompoundOutline.
type Description interface {
	isDescription()
}

func (*SimpleOutline) isDescription()   {}
func (*CompoundOutline) isDescription() {}

// IsCompound returns true if the glyph references other glyphs.
func (glyph *Glyph) IsCompound() bool {
	return glyph.ContourCount < 0
}

// Simple returns the simple outline, or nil for compound glyphs.
func (glyph *Glyph) Simple() *SimpleOutline {
	simple, _ := glyph.Description.(*SimpleOutline)
	return simple
}

// Compound returns the compound outline, or nil for simple glyphs.
func (glyph *Glyph) Compound() *CompoundOutline {
	compound, _ := glyph.Description.(*CompoundOutline)
	return compound
}

// reservedBits holds the flag bits that must be zero.
type reservedBits struct {
	simple    SimpleFlags
	component ComponentFlags
}

var (
	// bits 6-7 for points, bits 4 and 9-15 for components
	strictReserved = reservedBits{simple: 0xC0, component: 0xFE10}

	// OVERLAP_SIMPLE, USE_MY_METRICS, OVERLAP_COMPOUND, SCALED_COMPONENT_OFFSET and UNSCALED_COMPONENT_OFFSET are allowed
	openTypeReserved = reservedBits{simple: 0x80, component: 0xE010}
)

// ReadGlyph decodes one glyph record starting at the tape's cursor. Flag bits not defined by the Apple TrueType reference are rejected.
func ReadGlyph(t Tape) (*Glyph, error) {
	return readGlyph(t, strictReserved)
}

// ReadOpenTypeGlyph is like ReadGlyph but accepts the flag bits added by OpenType, such as OVERLAP_SIMPLE and USE_MY_METRICS.
func ReadOpenTypeGlyph(t Tape) (*Glyph, error) {
	return readGlyph(t, openTypeReserved)
}

// ParseGlyph decodes the glyph record b, which is the byte span given by the loca table. An empty record is a glyph without contours.
func ParseGlyph(b []byte) (*Glyph, error) {
	return parseGlyph(b, strictReserved)
}

// ParseOpenTypeGlyph is like ParseGlyph but accepts the flag bits added by OpenType.
func ParseOpenTypeGlyph(b []byte) (*Glyph, error) {
	return parseGlyph(b, openTypeReserved)
}

func parseGlyph(b []byte, reserved reservedBits) (*Glyph, error) {
	if len(b) == 0 {
		return &Glyph{
			Description: &SimpleOutline{
				EndPoints:    []uint16{},
				Instructions: []byte{},
				Flags:        []SimpleFlags{},
				X:            []int16{},
				Y:            []int16{},
			},
		}, nil
	}
	// bytes left over are loca padding
	return readGlyph(parse.NewBinaryReaderBytes(b), reserved)
}

func readGlyph(t Tape, reserved reservedBits) (*Glyph, error) {
	if t.Len() < 10 {
		return nil, shortRead(10, t)
	}
	glyph := &Glyph{}
	glyph.ContourCount = t.ReadInt16()
	glyph.XMin = t.ReadInt16()
	glyph.YMin = t.ReadInt16()
	glyph.XMax = t.ReadInt16()
	glyph.YMax = t.ReadInt16()

	var err error
	if glyph.Description, err = readDescription(t, glyph.ContourCount, reserved); err != nil {
		return nil, err
	}
	return glyph, nil
}

// readDescription reads the outline whose kind is determined by the sign of contourCount.
func readDescription(t Tape, contourCount int16, reserved reservedBits) (Description, error) {
	if 0 <= contourCount {
		return readSimpleOutline(t, int(contourCount), reserved.simple)
	}
	return readCompoundOutline(t, reserved.component)
}

func (glyph *Glyph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contours: %v\n", glyph.ContourCount)
	fmt.Fprintf(&b, "Bounds: (%v,%v)-(%v,%v)\n", glyph.XMin, glyph.YMin, glyph.XMax, glyph.YMax)
	switch desc := glyph.Description.(type) {
	case *SimpleOutline:
		fmt.Fprintf(&b, "EndPoints: %v\n", desc.EndPoints)
		fmt.Fprintf(&b, "Instruction length: %v\n", desc.InstructionSize)
		if len(desc.EndPoints) == 0 {
			fmt.Fprintf(&b, "Empty glyph\n")
			break
		}
		fmt.Fprintf(&b, "Points:\n")
		xs, ys := desc.Points()
		for i := range desc.Flags {
			onCurve := "Off"
			if desc.Flags[i].OnCurve() {
				onCurve = "On"
			}
			fmt.Fprintf(&b, "  %4d  dx=%6v dy=%6v  x=%6v y=%6v  %3v\n", i, desc.X[i], desc.Y[i], xs[i], ys[i], onCurve)
		}
	case *CompoundOutline:
		fmt.Fprintf(&b, "Components: %v\n", len(desc.Components))
		for i, component := range desc.Components {
			fmt.Fprintf(&b, "  %2d  glyph=%v  %v  %v  flags=%v\n", i, component.GlyphID, component.Arguments, component.Options, component.Flags)
		}
		fmt.Fprintf(&b, "Instruction length: %v\n", desc.InstructionSize)
	}
	return b.String()
}
