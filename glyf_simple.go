package truetype

import "strings"

// SimpleFlags are the per-point flags of a simple glyph.
type SimpleFlags uint8

const (
	flagOnCurve       SimpleFlags = 0x01
	flagXShort        SimpleFlags = 0x02
	flagYShort        SimpleFlags = 0x04
	flagRepeat        SimpleFlags = 0x08
	flagXSameOrPos    SimpleFlags = 0x10
	flagYSameOrPos    SimpleFlags = 0x20
	flagOverlapSimple SimpleFlags = 0x40
)

// OnCurve returns true if the point lies on the curve, otherwise it is a quadratic control point.
func (f SimpleFlags) OnCurve() bool { return f&flagOnCurve != 0 }

// XShort returns true if the x delta is stored as one unsigned byte.
func (f SimpleFlags) XShort() bool { return f&flagXShort != 0 }

// YShort returns true if the y delta is stored as one unsigned byte.
func (f SimpleFlags) YShort() bool { return f&flagYShort != 0 }

// Repeat returns true if a repeat count follows the flag.
func (f SimpleFlags) Repeat() bool { return f&flagRepeat != 0 }

// XPositive gives the sign of a short x delta. It tests the same bit as XSame.
func (f SimpleFlags) XPositive() bool { return f&flagXSameOrPos != 0 }

// XSame returns true if a non-short x delta is zero. It tests the same bit as XPositive.
func (f SimpleFlags) XSame() bool { return f&flagXSameOrPos != 0 }

// YPositive gives the sign of a short y delta. It tests the same bit as YSame.
func (f SimpleFlags) YPositive() bool { return f&flagYSameOrPos != 0 }

// YSame returns true if a non-short y delta is zero. It tests the same bit as YPositive.
func (f SimpleFlags) YSame() bool { return f&flagYSameOrPos != 0 }

// OverlapSimple returns true if contours may overlap (OpenType only).
func (f SimpleFlags) OverlapSimple() bool { return f&flagOverlapSimple != 0 }

func (f SimpleFlags) String() string {
	names := []string{"ON_CURVE", "X_SHORT", "Y_SHORT", "REPEAT", "X_SAME_OR_POSITIVE", "Y_SAME_OR_POSITIVE", "OVERLAP_SIMPLE", "RESERVED"}
	var flags []string
	for i, name := range names {
		if f&(1<<i) != 0 {
			flags = append(flags, name)
		}
	}
	return strings.Join(flags, "|")
}

// SimpleOutline is the description of a glyph with its own contours. X and Y hold deltas from the previous point, the first point is relative to the origin.
type SimpleOutline struct {
	EndPoints       []uint16 // last point index of each contour
	InstructionSize uint16
	Instructions    []byte
	Flags           []SimpleFlags // one per point
	X, Y            []int16       // one per point
}

// NumPoints returns the number of points of all contours.
func (simple *SimpleOutline) NumPoints() int {
	if len(simple.EndPoints) == 0 {
		return 0
	}
	return int(simple.EndPoints[len(simple.EndPoints)-1]) + 1
}

// Points returns the absolute coordinates of all points.
func (simple *SimpleOutline) Points() ([]int16, []int16) {
	xs := make([]int16, len(simple.X))
	ys := make([]int16, len(simple.Y))
	var x, y int16
	for i := range xs {
		x += simple.X[i]
		y += simple.Y[i]
		xs[i], ys[i] = x, y
	}
	return xs, ys
}

func readSimpleOutline(t Tape, contourCount int, reserved SimpleFlags) (*SimpleOutline, error) {
	endPoints, err := readUint16s(t, contourCount)
	if err != nil {
		return nil, err
	}
	for i := 1; i < contourCount; i++ {
		if endPoints[i] < endPoints[i-1] {
			return nil, malformed("end point %d of contour %d precedes end point %d of contour %d", endPoints[i], i, endPoints[i-1], i-1)
		}
	}

	simple := &SimpleOutline{
		EndPoints: endPoints,
	}
	numPoints := simple.NumPoints()

	if simple.InstructionSize, err = readUint16(t); err != nil {
		return nil, err
	} else if simple.Instructions, err = readBytes(t, int(simple.InstructionSize)); err != nil {
		return nil, err
	}

	if simple.Flags, err = readSimpleFlags(t, numPoints, reserved); err != nil {
		return nil, err
	}
	if simple.X, err = readCoordinates(t, simple.Flags, flagXShort, flagXSameOrPos); err != nil {
		return nil, err
	}
	if simple.Y, err = readCoordinates(t, simple.Flags, flagYShort, flagYSameOrPos); err != nil {
		return nil, err
	}
	return simple, nil
}

// readSimpleFlags expands the run-length encoded flags into exactly numPoints entries.
func readSimpleFlags(t Tape, numPoints int, reserved SimpleFlags) ([]SimpleFlags, error) {
	flags := make([]SimpleFlags, 0, numPoints)
	for len(flags) < numPoints {
		v, err := readUint8(t)
		if err != nil {
			return nil, err
		}
		flag := SimpleFlags(v)
		if flag&reserved != 0 {
			return nil, malformed("reserved bits set in point flag 0x%02X", v)
		}

		n := 1
		if flag.Repeat() {
			repeats, err := readUint8(t)
			if err != nil {
				return nil, err
			} else if repeats == 0 {
				return nil, malformed("zero repeat count for point %d", len(flags))
			}
			n += int(repeats)
		}
		if numPoints-len(flags) < n {
			return nil, malformed("flag run of %d exceeds %d points", n, numPoints)
		}
		for i := 0; i < n; i++ {
			flags = append(flags, flag)
		}
	}
	return flags, nil
}

// readCoordinates reads the deltas along one axis. The sameOrPositive bit gives the sign of short values and marks a zero delta otherwise.
func readCoordinates(t Tape, flags []SimpleFlags, short, sameOrPositive SimpleFlags) ([]int16, error) {
	values := make([]int16, len(flags))
	for i, flag := range flags {
		if flag&short != 0 {
			v, err := readUint8(t)
			if err != nil {
				return nil, err
			}
			if flag&sameOrPositive != 0 {
				values[i] = int16(v)
			} else {
				values[i] = -int16(v)
			}
		} else if flag&sameOrPositive == 0 {
			v, err := readInt16(t)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
	}
	return values, nil
}
