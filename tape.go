package truetype

import "fmt"

// Tape is a sequential big-endian byte source. The cursor only moves forward. It is implemented by *parse.BinaryReader.
type Tape interface {
	Len() int64
	ReadUint8() uint8
	ReadInt8() int8
	ReadUint16() uint16
	ReadInt16() int16
	ReadBytes(int64) []byte
}

func shortRead(n int64, t Tape) error {
	return fmt.Errorf("glyf: %w: need %d bytes, %d left", ErrShortRead, n, t.Len())
}

func readUint8(t Tape) (uint8, error) {
	if t.Len() < 1 {
		return 0, shortRead(1, t)
	}
	return t.ReadUint8(), nil
}

func readInt8(t Tape) (int8, error) {
	if t.Len() < 1 {
		return 0, shortRead(1, t)
	}
	return t.ReadInt8(), nil
}

func readUint16(t Tape) (uint16, error) {
	if t.Len() < 2 {
		return 0, shortRead(2, t)
	}
	return t.ReadUint16(), nil
}

func readInt16(t Tape) (int16, error) {
	if t.Len() < 2 {
		return 0, shortRead(2, t)
	}
	return t.ReadInt16(), nil
}

func readF2Dot14(t Tape) (F2Dot14, error) {
	v, err := readInt16(t)
	return F2Dot14(v), err
}

// readUint16s reads n consecutive uint16 values, the whole run is checked before reading.
func readUint16s(t Tape, n int) ([]uint16, error) {
	if t.Len() < 2*int64(n) {
		return nil, shortRead(2*int64(n), t)
	}
	vs := make([]uint16, n)
	for i := range vs {
		vs[i] = t.ReadUint16()
	}
	return vs, nil
}

// readBytes copies n bytes off the tape so that the result never aliases the source.
func readBytes(t Tape, n int) ([]byte, error) {
	if t.Len() < int64(n) {
		return nil, shortRead(int64(n), t)
	}
	b := make([]byte, n)
	copy(b, t.ReadBytes(int64(n)))
	return b, nil
}
