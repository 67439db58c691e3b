package truetype

import (
	"fmt"

	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	xtransform "golang.org/x/text/transform"
)

// PlatformID identifies the platform of a name record.
type PlatformID uint16

// see PlatformID
const (
	PlatformUnicode   PlatformID = 0
	PlatformMacintosh PlatformID = 1
	PlatformWindows   PlatformID = 3
)

// EncodingID identifies the platform-specific encoding of a name record.
type EncodingID uint16

// see EncodingID
const (
	EncodingMacintoshRoman EncodingID = 0
)

// NameID identifies the kind of string of a name record.
type NameID uint16

// see NameID
const (
	NameCopyrightNotice NameID = 0
	NameFontFamily      NameID = 1
	NameFontSubfamily   NameID = 2
	NameUniqueID        NameID = 3
	NameFull            NameID = 4
	NameVersion         NameID = 5
	NamePostScript      NameID = 6
)

// NameRecord is a single string of the name table.
type NameRecord struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     NameID
	Value    []byte
}

func (record NameRecord) String() string {
	var decoder *encoding.Decoder
	if record.Platform == PlatformUnicode || record.Platform == PlatformWindows {
		decoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	} else if record.Platform == PlatformMacintosh && record.Encoding == EncodingMacintoshRoman {
		decoder = charmap.Macintosh.NewDecoder()
	} else {
		return string(record.Value)
	}
	s, _, err := xtransform.String(decoder, string(record.Value))
	if err != nil {
		return string(record.Value)
	}
	return s
}

// NameTable is the naming table.
type NameTable struct {
	NameRecord []NameRecord
	LangTag    []string
}

// Get returns all records of the given kind.
func (name *NameTable) Get(nameID NameID) []NameRecord {
	records := []NameRecord{}
	for _, record := range name.NameRecord {
		if record.Name == nameID {
			records = append(records, record)
		}
	}
	return records
}

// Find returns the first decoded string of the given kind, preferring Windows records.
func (name *NameTable) Find(nameID NameID) string {
	records := name.Get(nameID)
	for _, record := range records {
		if record.Platform == PlatformWindows {
			return record.String()
		}
	}
	if 0 < len(records) {
		return records[0].String()
	}
	return ""
}

// ParseName parses the name table, version 0 or 1.
func ParseName(b []byte) (*NameTable, error) {
	if len(b) < 6 {
		return nil, fmt.Errorf("name: %w: bad table", ErrInvalidFontData)
	}

	name := &NameTable{}
	r := parse.NewBinaryReaderBytes(b)
	version := r.ReadUint16()
	if version != 0 && version != 1 {
		return nil, fmt.Errorf("name: %w: bad version", ErrInvalidFontData)
	}
	count := int(r.ReadUint16())
	storageOffset := int(r.ReadUint16())
	if len(b) < 6+12*count || len(b) < storageOffset {
		return nil, fmt.Errorf("name: %w: bad table", ErrInvalidFontData)
	}
	storage := b[storageOffset:]

	name.NameRecord = make([]NameRecord, count)
	for i := range name.NameRecord {
		name.NameRecord[i].Platform = PlatformID(r.ReadUint16())
		name.NameRecord[i].Encoding = EncodingID(r.ReadUint16())
		name.NameRecord[i].Language = r.ReadUint16()
		name.NameRecord[i].Name = NameID(r.ReadUint16())
		length := int(r.ReadUint16())
		offset := int(r.ReadUint16())
		if len(storage) < offset+length {
			return nil, fmt.Errorf("name: %w: bad record %d", ErrInvalidFontData, i)
		}
		name.NameRecord[i].Value = storage[offset : offset+length : offset+length]
	}
	if version == 1 {
		if r.Len() < 2 {
			return nil, fmt.Errorf("name: %w: bad table", ErrInvalidFontData)
		}
		langTagCount := int(r.ReadUint16())
		if r.Len() < 4*int64(langTagCount) {
			return nil, fmt.Errorf("name: %w: bad table", ErrInvalidFontData)
		}
		decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		name.LangTag = make([]string, langTagCount)
		for i := range name.LangTag {
			length := int(r.ReadUint16())
			offset := int(r.ReadUint16())
			if len(storage) < offset+length {
				return nil, fmt.Errorf("name: %w: bad language tag %d", ErrInvalidFontData, i)
			}
			s, _, err := xtransform.String(decoder, string(storage[offset:offset+length]))
			if err != nil {
				return nil, fmt.Errorf("name: %w: bad language tag %d: %v", ErrInvalidFontData, i, err)
			}
			name.LangTag[i] = s
		}
	}
	return name, nil
}
