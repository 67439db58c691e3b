package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/prompt"
	"github.com/tdewolff/truetype"
)

type tableRecord struct {
	Tag            string
	Checksum       uint32
	Offset, Length uint32
}

// sfnt holds the tables of a TrueType font needed to read its glyphs.
type sfnt struct {
	Version string
	Records []tableRecord
	Tables  map[string][]byte

	Head *truetype.HeadTable
	Maxp *truetype.MaxpTable
	Loca *truetype.LocaTable
	Glyf *truetype.GlyphTable
	Name *truetype.NameTable
}

// parseTableDirectory reads the offset table of a single font file, checksums are not verified.
func parseTableDirectory(b []byte) (*sfnt, error) {
	if len(b) < 12 {
		return nil, fmt.Errorf("bad font file")
	}
	font := &sfnt{
		Tables: map[string][]byte{},
	}
	r := parse.NewBinaryReaderBytes(b)
	font.Version = string(r.ReadBytes(4))
	if font.Version == "ttcf" {
		return nil, fmt.Errorf("font collections are not supported")
	} else if font.Version == "OTTO" {
		return nil, fmt.Errorf("CFF glyph outlines are not supported")
	} else if font.Version != "\x00\x01\x00\x00" && font.Version != "true" {
		return nil, fmt.Errorf("bad sfntVersion")
	}
	numTables := int(r.ReadUint16())
	_ = r.ReadBytes(6) // searchRange, entrySelector, rangeShift
	if r.Len() < 16*int64(numTables) {
		return nil, fmt.Errorf("bad table directory")
	}

	for i := 0; i < numTables; i++ {
		record := tableRecord{
			Tag:      string(r.ReadBytes(4)),
			Checksum: r.ReadUint32(),
			Offset:   r.ReadUint32(),
			Length:   r.ReadUint32(),
		}
		if uint64(len(b)) < uint64(record.Offset)+uint64(record.Length) {
			return nil, fmt.Errorf("%s: bad table offset", record.Tag)
		}
		font.Records = append(font.Records, record)
		font.Tables[record.Tag] = b[record.Offset : record.Offset+record.Length : record.Offset+record.Length]
	}
	return font, nil
}

func readFont(filename string, openType bool) (*sfnt, error) {
	var err error
	var r *os.File
	if filename == "-" {
		r = os.Stdin
	} else if r, err = os.Open(filename); err != nil {
		return nil, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		r.Close()
		return nil, err
	} else if err := r.Close(); err != nil {
		return nil, err
	}

	font, err := parseTableDirectory(b)
	if err != nil {
		return nil, err
	}
	for _, tag := range []string{"head", "maxp", "loca", "glyf"} {
		if _, ok := font.Tables[tag]; !ok {
			return nil, fmt.Errorf("%s: missing table", tag)
		}
	}

	if font.Head, err = truetype.ParseHead(font.Tables["head"]); err != nil {
		return nil, err
	} else if font.Maxp, err = truetype.ParseMaxp(font.Tables["maxp"]); err != nil {
		return nil, err
	} else if font.Loca, err = truetype.ParseLoca(font.Tables["loca"], font.Head.IndexToLocFormat, font.Maxp.NumGlyphs); err != nil {
		return nil, err
	}
	if openType {
		font.Glyf, err = truetype.ParseOpenTypeGlyf(font.Tables["glyf"], font.Loca)
	} else {
		font.Glyf, err = truetype.ParseGlyf(font.Tables["glyf"], font.Loca)
	}
	if err != nil {
		return nil, err
	}

	if b, ok := font.Tables["name"]; ok {
		if font.Name, err = truetype.ParseName(b); err != nil {
			Warning.Println(err)
		}
	}
	return font, nil
}

func checkGlyphID(font *sfnt, glyphID uint16) error {
	if font.Glyf.NumGlyphs() <= int(glyphID) {
		return fmt.Errorf("glyph ID %d out of range, font has %d glyphs", glyphID, font.Glyf.NumGlyphs())
	}
	return nil
}

func writeFile(filename string, force bool, b []byte) error {
	var err error
	var w io.WriteCloser
	if filename == "-" {
		w = os.Stdout
	} else {
		if _, err := os.Stat(filename); err == nil {
			if !force && !prompt.YesNo(fmt.Sprintf("%s already exists, overwrite?", filename), false) {
				return fmt.Errorf("file already exists")
			}
		}
		if w, err = os.Create(filename); err != nil {
			return err
		}
	}

	if _, err := w.Write(b); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
