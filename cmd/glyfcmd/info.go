package main

import (
	"fmt"
	"math"

	"github.com/tdewolff/truetype"
)

type Info struct {
	OpenType bool   `short:"O" name:"opentype" desc:"Accept OpenType flag bits"`
	Quiet    bool   `short:"q" desc:"Suppress warnings"`
	Input    string `index:"0" desc:"Input file"`
}

func (cmd *Info) Run() error {
	setQuiet(cmd.Quiet)
	font, err := readFont(cmd.Input, cmd.OpenType)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", cmd.Input)
	if font.Name != nil {
		if family := font.Name.Find(truetype.NameFontFamily); family != "" {
			fmt.Printf("Family: %s %s\n", family, font.Name.Find(truetype.NameFontSubfamily))
		}
		if version := font.Name.Find(truetype.NameVersion); version != "" {
			fmt.Printf("Version: %s\n", version)
		}
	}

	end := uint64(0)
	for _, record := range font.Records {
		end = max(end, uint64(record.Offset)+uint64(record.Length))
	}
	nLen := int(math.Log10(float64(end)+1) + 1)
	fmt.Printf("\nTable directory:\n")
	for i, record := range font.Records {
		fmt.Printf("  %2d  %s  checksum=0x%08X  offset=%*d  length=%*d\n", i, record.Tag, record.Checksum, nLen, record.Offset, nLen, record.Length)
	}

	locaFormat := "short"
	if font.Head.IndexToLocFormat == 1 {
		locaFormat = "long"
	}
	fmt.Printf("\nUnitsPerEm: %d\n", font.Head.UnitsPerEm)
	fmt.Printf("Bounds: (%d,%d)-(%d,%d)\n", font.Head.XMin, font.Head.YMin, font.Head.XMax, font.Head.YMax)
	fmt.Printf("Loca format: %d (%s offsets)\n", font.Head.IndexToLocFormat, locaFormat)

	numEmpty, numSimple, numCompound := 0, 0, 0
	for glyphID := 0; glyphID < font.Glyf.NumGlyphs(); glyphID++ {
		if len(font.Glyf.Get(uint16(glyphID))) == 0 {
			numEmpty++
		} else if font.Glyf.IsCompound(uint16(glyphID)) {
			numCompound++
		} else {
			numSimple++
		}
	}
	fmt.Printf("Glyphs: %d (%d simple, %d compound, %d empty)\n", font.Glyf.NumGlyphs(), numSimple, numCompound, numEmpty)
	if font.Maxp.MaxComponentDepth != 0 {
		fmt.Printf("Max component depth: %d\n", font.Maxp.MaxComponentDepth)
	}
	return nil
}
