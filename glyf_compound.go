package truetype

import (
	"fmt"
	"strings"
)

// ComponentFlags are the flags of a compound glyph component.
type ComponentFlags uint16

const (
	flagArgsAreWords            ComponentFlags = 0x0001
	flagArgsAreXY               ComponentFlags = 0x0002
	flagRoundXYToGrid           ComponentFlags = 0x0004
	flagHasScale                ComponentFlags = 0x0008
	flagMoreComponents          ComponentFlags = 0x0020
	flagHasXYScale              ComponentFlags = 0x0040
	flagHasTwoByTwo             ComponentFlags = 0x0080
	flagHasInstructions         ComponentFlags = 0x0100
	flagUseMyMetrics            ComponentFlags = 0x0200
	flagOverlapCompound         ComponentFlags = 0x0400
	flagScaledComponentOffset   ComponentFlags = 0x0800
	flagUnscaledComponentOffset ComponentFlags = 0x1000
)

func (f ComponentFlags) ArgsAreWords() bool            { return f&flagArgsAreWords != 0 }
func (f ComponentFlags) ArgsAreXY() bool               { return f&flagArgsAreXY != 0 }
func (f ComponentFlags) RoundXYToGrid() bool           { return f&flagRoundXYToGrid != 0 }
func (f ComponentFlags) HasScale() bool                { return f&flagHasScale != 0 }
func (f ComponentFlags) MoreComponents() bool          { return f&flagMoreComponents != 0 }
func (f ComponentFlags) HasXYScale() bool              { return f&flagHasXYScale != 0 }
func (f ComponentFlags) HasTwoByTwo() bool             { return f&flagHasTwoByTwo != 0 }
func (f ComponentFlags) HasInstructions() bool         { return f&flagHasInstructions != 0 }
func (f ComponentFlags) UseMyMetrics() bool            { return f&flagUseMyMetrics != 0 }
func (f ComponentFlags) OverlapCompound() bool         { return f&flagOverlapCompound != 0 }
func (f ComponentFlags) ScaledComponentOffset() bool   { return f&flagScaledComponentOffset != 0 }
func (f ComponentFlags) UnscaledComponentOffset() bool { return f&flagUnscaledComponentOffset != 0 }

var componentFlagNames = map[ComponentFlags]string{
	flagArgsAreWords:            "ARG_1_AND_2_ARE_WORDS",
	flagArgsAreXY:               "ARGS_ARE_XY_VALUES",
	flagRoundXYToGrid:           "ROUND_XY_TO_GRID",
	flagHasScale:                "WE_HAVE_A_SCALE",
	flagMoreComponents:          "MORE_COMPONENTS",
	flagHasXYScale:              "WE_HAVE_AN_X_AND_Y_SCALE",
	flagHasTwoByTwo:             "WE_HAVE_A_TWO_BY_TWO",
	flagHasInstructions:         "WE_HAVE_INSTRUCTIONS",
	flagUseMyMetrics:            "USE_MY_METRICS",
	flagOverlapCompound:         "OVERLAP_COMPOUND",
	flagScaledComponentOffset:   "SCALED_COMPONENT_OFFSET",
	flagUnscaledComponentOffset: "UNSCALED_COMPONENT_OFFSET",
}

func (f ComponentFlags) String() string {
	var flags []string
	for i := 0; i < 16; i++ {
		bit := ComponentFlags(1 << i)
		if f&bit == 0 {
			continue
		} else if name, ok := componentFlagNames[bit]; ok {
			flags = append(flags, name)
		} else {
			flags = append(flags, fmt.Sprintf("RESERVED%d", i))
		}
	}
	return strings.Join(flags, "|")
}

// F2Dot14 is a signed fixed-point number with 14 fractional bits.
type F2Dot14 int16

// Float64 returns the value as a floating-point number.
func (v F2Dot14) Float64() float64 {
	return float64(v) / (1 << 14)
}

func (v F2Dot14) String() string {
	return fmt.Sprintf("%g", v.Float64())
}

// Arguments is either Offsets or Indices.
type Arguments interface {
	isArguments()
}

// Offsets places the component by a signed offset in font units.
type Offsets struct {
	X, Y int16
}

// Indices places the component by matching a point of the parent outline with a point of the component.
type Indices struct {
	Parent, Child uint16
}

func (Offsets) isArguments() {}
func (Indices) isArguments() {}

func (args Offsets) String() string {
	return fmt.Sprintf("offset=(%v,%v)", args.X, args.Y)
}

func (args Indices) String() string {
	return fmt.Sprintf("points=(%v,%v)", args.Parent, args.Child)
}

// Options is the linear transformation of a component, one of Identity, Scalar, Vector or Matrix.
type Options interface {
	isOptions()
}

// Identity leaves the component unscaled.
type Identity struct{}

// Scalar scales both axes uniformly.
type Scalar struct {
	Scale F2Dot14
}

// Vector scales the x and y axes independently.
type Vector struct {
	X, Y F2Dot14
}

// Matrix is a 2x2 transformation, where x' = XX*x + YX*y and y' = XY*x + YY*y.
type Matrix struct {
	XX, XY, YX, YY F2Dot14
}

func (Identity) isOptions() {}
func (Scalar) isOptions()   {}
func (Vector) isOptions()   {}
func (Matrix) isOptions()   {}

func (Identity) String() string {
	return "identity"
}

func (opts Scalar) String() string {
	return fmt.Sprintf("scale=%v", opts.Scale)
}

func (opts Vector) String() string {
	return fmt.Sprintf("scale=(%v,%v)", opts.X, opts.Y)
}

func (opts Matrix) String() string {
	return fmt.Sprintf("matrix=[%v %v; %v %v]", opts.XX, opts.XY, opts.YX, opts.YY)
}

// Component is a reference to another glyph together with its placement.
type Component struct {
	Flags     ComponentFlags
	GlyphID   uint16
	Arguments Arguments
	Options   Options
}

// CompoundOutline is the description of a glyph composed of other glyphs.
type CompoundOutline struct {
	Components      []Component
	InstructionSize uint16
	Instructions    []byte
}

func readCompoundOutline(t Tape, reserved ComponentFlags) (*CompoundOutline, error) {
	compound := &CompoundOutline{}
	hasInstructions := false
	for {
		component, err := readComponent(t, reserved)
		if err != nil {
			return nil, err
		}
		compound.Components = append(compound.Components, component)
		hasInstructions = hasInstructions || component.Flags.HasInstructions()
		if !component.Flags.MoreComponents() {
			break
		}
	}

	if hasInstructions {
		var err error
		if compound.InstructionSize, err = readUint16(t); err != nil {
			return nil, err
		} else if compound.Instructions, err = readBytes(t, int(compound.InstructionSize)); err != nil {
			return nil, err
		}
	} else {
		compound.Instructions = []byte{}
	}
	return compound, nil
}

func readComponent(t Tape, reserved ComponentFlags) (Component, error) {
	v, err := readUint16(t)
	if err != nil {
		return Component{}, err
	}
	flags := ComponentFlags(v)
	if flags&reserved != 0 {
		return Component{}, malformed("reserved bits set in component flags 0x%04X", v)
	}

	component := Component{Flags: flags}
	if component.GlyphID, err = readUint16(t); err != nil {
		return Component{}, err
	} else if component.Arguments, err = readArguments(t, flags); err != nil {
		return Component{}, err
	} else if component.Options, err = readOptions(t, flags); err != nil {
		return Component{}, err
	}
	return component, nil
}

// readArguments reads two arguments whose width and meaning are given by flags.
func readArguments(t Tape, flags ComponentFlags) (Arguments, error) {
	if flags.ArgsAreWords() {
		if t.Len() < 4 {
			return nil, shortRead(4, t)
		}
		if flags.ArgsAreXY() {
			return Offsets{t.ReadInt16(), t.ReadInt16()}, nil
		}
		return Indices{t.ReadUint16(), t.ReadUint16()}, nil
	}

	if t.Len() < 2 {
		return nil, shortRead(2, t)
	}
	if flags.ArgsAreXY() {
		return Offsets{int16(t.ReadInt8()), int16(t.ReadInt8())}, nil
	}
	return Indices{uint16(t.ReadUint8()), uint16(t.ReadUint8())}, nil
}

// readOptions reads the transformation selected by flags, checking the scale bits in a fixed order.
func readOptions(t Tape, flags ComponentFlags) (Options, error) {
	if flags.HasScale() {
		scale, err := readF2Dot14(t)
		if err != nil {
			return nil, err
		}
		return Scalar{scale}, nil
	} else if flags.HasXYScale() {
		if t.Len() < 4 {
			return nil, shortRead(4, t)
		}
		return Vector{F2Dot14(t.ReadInt16()), F2Dot14(t.ReadInt16())}, nil
	} else if flags.HasTwoByTwo() {
		if t.Len() < 8 {
			return nil, shortRead(8, t)
		}
		return Matrix{F2Dot14(t.ReadInt16()), F2Dot14(t.ReadInt16()), F2Dot14(t.ReadInt16()), F2Dot14(t.ReadInt16())}, nil
	}
	return Identity{}, nil
}
