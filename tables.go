package truetype

import (
	"fmt"
	"math"
	"time"

	"github.com/tdewolff/parse/v2"
)

var epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

// HeadTable is the font header.
type HeadTable struct {
	FontRevision           uint32
	Flags                  [16]bool
	UnitsPerEm             uint16
	Created, Modified      time.Time
	XMin, YMin, XMax, YMax int16
	MacStyle               [16]bool
	LowestRecPPEM          uint16
	FontDirectionHint      int16
	IndexToLocFormat       int16 // 0 for short and 1 for long loca offsets
	GlyphDataFormat        int16
}

// ParseHead parses the head table.
func ParseHead(b []byte) (*HeadTable, error) {
	if len(b) != 54 {
		return nil, fmt.Errorf("head: %w: bad table", ErrInvalidFontData)
	}

	head := &HeadTable{}
	r := parse.NewBinaryReaderBytes(b)
	majorVersion := r.ReadUint16()
	minorVersion := r.ReadUint16()
	if majorVersion != 1 || minorVersion != 0 {
		return nil, fmt.Errorf("head: %w: bad version", ErrInvalidFontData)
	}
	head.FontRevision = r.ReadUint32()
	_ = r.ReadUint32()                // checksumAdjustment
	if r.ReadUint32() != 0x5F0F3CF5 { // magicNumber
		return nil, fmt.Errorf("head: %w: bad magic number", ErrInvalidFontData)
	}
	head.Flags = Uint16ToFlags(r.ReadUint16())
	head.UnitsPerEm = r.ReadUint16()
	if head.UnitsPerEm < 16 || 16384 < head.UnitsPerEm {
		return nil, fmt.Errorf("head: %w: bad unitsPerEm", ErrInvalidFontData)
	}
	created := r.ReadUint64()
	modified := r.ReadUint64()
	if math.MaxInt64/uint64(time.Second) < created || math.MaxInt64/uint64(time.Second) < modified {
		return nil, fmt.Errorf("head: %w: created and/or modified dates too large", ErrInvalidFontData)
	}
	head.Created = epoch1904.Add(time.Second * time.Duration(created))
	head.Modified = epoch1904.Add(time.Second * time.Duration(modified))
	head.XMin = r.ReadInt16()
	head.YMin = r.ReadInt16()
	head.XMax = r.ReadInt16()
	head.YMax = r.ReadInt16()
	head.MacStyle = Uint16ToFlags(r.ReadUint16())
	head.LowestRecPPEM = r.ReadUint16()
	head.FontDirectionHint = r.ReadInt16()
	head.IndexToLocFormat = r.ReadInt16()
	if head.IndexToLocFormat != 0 && head.IndexToLocFormat != 1 {
		return nil, fmt.Errorf("head: %w: bad indexToLocFormat", ErrInvalidFontData)
	}
	head.GlyphDataFormat = r.ReadInt16()
	return head, nil
}

////////////////////////////////////////////////////////////////

// MaxpTable is the maximum profile, it supplies the number of glyphs.
type MaxpTable struct {
	NumGlyphs             uint16
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// ParseMaxp parses the maxp table, either version 0.5 (only the number of glyphs) or version 1.0.
func ParseMaxp(b []byte) (*MaxpTable, error) {
	if len(b) < 6 {
		return nil, fmt.Errorf("maxp: %w: bad table", ErrInvalidFontData)
	}

	maxp := &MaxpTable{}
	r := parse.NewBinaryReaderBytes(b)
	version := r.ReadUint32()
	maxp.NumGlyphs = r.ReadUint16()
	if version == 0x00005000 && len(b) == 6 {
		return maxp, nil
	} else if version != 0x00010000 || len(b) != 32 {
		return nil, fmt.Errorf("maxp: %w: bad table", ErrInvalidFontData)
	}
	maxp.MaxPoints = r.ReadUint16()
	maxp.MaxContours = r.ReadUint16()
	maxp.MaxCompositePoints = r.ReadUint16()
	maxp.MaxCompositeContours = r.ReadUint16()
	maxp.MaxZones = r.ReadUint16()
	maxp.MaxTwilightPoints = r.ReadUint16()
	maxp.MaxStorage = r.ReadUint16()
	maxp.MaxFunctionDefs = r.ReadUint16()
	maxp.MaxInstructionDefs = r.ReadUint16()
	maxp.MaxStackElements = r.ReadUint16()
	maxp.MaxSizeOfInstructions = r.ReadUint16()
	maxp.MaxComponentElements = r.ReadUint16()
	maxp.MaxComponentDepth = r.ReadUint16()
	return maxp, nil
}

////////////////////////////////////////////////////////////////

// HheaTable is the horizontal header.
type HheaTable struct {
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	MetricDataFormat    int16
	NumberOfHMetrics    uint16
}

// ParseHhea parses the hhea table, the number of metrics is checked against the number of glyphs in maxp.
func ParseHhea(b []byte, maxp *MaxpTable) (*HheaTable, error) {
	if maxp == nil {
		return nil, fmt.Errorf("hhea: %w: missing maxp table", ErrInvalidFontData)
	} else if len(b) != 36 {
		return nil, fmt.Errorf("hhea: %w: bad table", ErrInvalidFontData)
	}

	hhea := &HheaTable{}
	r := parse.NewBinaryReaderBytes(b)
	majorVersion := r.ReadUint16()
	minorVersion := r.ReadUint16()
	if majorVersion != 1 || minorVersion != 0 {
		return nil, fmt.Errorf("hhea: %w: bad version", ErrInvalidFontData)
	}
	hhea.Ascender = r.ReadInt16()
	hhea.Descender = r.ReadInt16()
	hhea.LineGap = r.ReadInt16()
	hhea.AdvanceWidthMax = r.ReadUint16()
	hhea.MinLeftSideBearing = r.ReadInt16()
	hhea.MinRightSideBearing = r.ReadInt16()
	hhea.XMaxExtent = r.ReadInt16()
	hhea.CaretSlopeRise = r.ReadInt16()
	hhea.CaretSlopeRun = r.ReadInt16()
	hhea.CaretOffset = r.ReadInt16()
	_ = r.ReadBytes(8) // reserved
	hhea.MetricDataFormat = r.ReadInt16()
	hhea.NumberOfHMetrics = r.ReadUint16()
	if maxp.NumGlyphs < hhea.NumberOfHMetrics || hhea.NumberOfHMetrics == 0 {
		return nil, fmt.Errorf("hhea: %w: bad numberOfHMetrics", ErrInvalidFontData)
	}
	return hhea, nil
}

////////////////////////////////////////////////////////////////

// LongHorMetric is the advance width and left side bearing of a glyph.
type LongHorMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// HmtxTable holds the horizontal metrics. Glyphs beyond the last long metric share its advance width.
type HmtxTable struct {
	HMetrics         []LongHorMetric
	LeftSideBearings []int16
}

// LeftSideBearing returns the left side bearing of the glyph.
func (hmtx *HmtxTable) LeftSideBearing(glyphID uint16) int16 {
	if uint16(len(hmtx.HMetrics)) <= glyphID {
		i := int(glyphID) - len(hmtx.HMetrics)
		if len(hmtx.LeftSideBearings) <= i {
			return 0
		}
		return hmtx.LeftSideBearings[i]
	}
	return hmtx.HMetrics[glyphID].LeftSideBearing
}

// Advance returns the advance width of the glyph.
func (hmtx *HmtxTable) Advance(glyphID uint16) uint16 {
	if uint16(len(hmtx.HMetrics)) <= glyphID {
		glyphID = uint16(len(hmtx.HMetrics)) - 1
	}
	return hmtx.HMetrics[glyphID].AdvanceWidth
}

// ParseHmtx parses the hmtx table, which requires the number of metrics from hhea and the number of glyphs from maxp.
func ParseHmtx(b []byte, hhea *HheaTable, maxp *MaxpTable) (*HmtxTable, error) {
	if hhea == nil {
		return nil, fmt.Errorf("hmtx: %w: missing hhea table", ErrInvalidFontData)
	} else if maxp == nil {
		return nil, fmt.Errorf("hmtx: %w: missing maxp table", ErrInvalidFontData)
	} else if maxp.NumGlyphs < hhea.NumberOfHMetrics || hhea.NumberOfHMetrics == 0 {
		return nil, fmt.Errorf("hmtx: %w: bad numberOfHMetrics", ErrInvalidFontData)
	}

	numMetrics := int(hhea.NumberOfHMetrics)
	numBearings := int(maxp.NumGlyphs) - numMetrics
	if len(b) != 4*numMetrics+2*numBearings {
		return nil, fmt.Errorf("hmtx: %w: bad table", ErrInvalidFontData)
	}

	hmtx := &HmtxTable{
		HMetrics:         make([]LongHorMetric, numMetrics),
		LeftSideBearings: make([]int16, numBearings),
	}
	r := parse.NewBinaryReaderBytes(b)
	for i := range hmtx.HMetrics {
		hmtx.HMetrics[i].AdvanceWidth = r.ReadUint16()
		hmtx.HMetrics[i].LeftSideBearing = r.ReadInt16()
	}
	for i := range hmtx.LeftSideBearings {
		hmtx.LeftSideBearings[i] = r.ReadInt16()
	}
	return hmtx, nil
}
