// Package wire frames UTF-16 strings and conversion failures as bytes so
// they can cross a process or language boundary.
//
// Frame layout, little-endian:
//
//	magic "JS" (2) | type (1) | total length (4) | flags (1) | body | crc32 (4)
//
// The length covers the whole frame including the CRC. The CRC (IEEE) covers
// everything after the magic up to the CRC itself.
//
// A units frame body is a varint unit count followed by the units as
// UTF-16LE, zstd-compressed when FlagZstd is set. An error frame body is a
// code byte, a uint16 message length and the UTF-8 message.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
)

const (
	magic0 = 'J'
	magic1 = 'S'

	TypeUnits byte = 0x01
	TypeError byte = 0x02

	FlagZstd byte = 0x01

	HeaderSize = 8
	CRCSize    = 4

	// MaxUnits bounds the unit count a decoder accepts.
	MaxUnits = 1 << 28
)

var (
	ErrNotFrame       = errors.New("not a frame")
	ErrWrongType      = errors.New("unexpected frame type")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrChecksum       = errors.New("crc mismatch")
	ErrTruncated      = errors.New("truncated frame")
)

type Options struct {
	// Compress zstd-compresses unit payloads.
	Compress bool
	// UnsafeUnits reads and writes unit payloads by aliasing the unit slice
	// as bytes on little-endian hosts, skipping the per-unit copy.
	UnsafeUnits bool
}

func writePreamble(buf *bytes.Buffer, typ byte) {
	buf.WriteByte(magic0)
	buf.WriteByte(magic1)
	buf.WriteByte(typ)
}

// seal fills in the length field and appends the CRC.
func seal(out []byte) []byte {
	total := uint32(len(out) + CRCSize)
	binary.LittleEndian.PutUint32(out[3:], total)
	crc := crc32.ChecksumIEEE(out[2:])
	return binary.LittleEndian.AppendUint32(out, crc)
}

// PeekType returns the type byte of a frame without validating the rest.
func PeekType(data []byte) (byte, error) {
	if len(data) < 3 || data[0] != magic0 || data[1] != magic1 {
		return 0, ErrNotFrame
	}
	return data[2], nil
}

// open validates framing, length and CRC and returns the flags and body.
func open(data []byte, typ byte) (byte, []byte, error) {
	t, err := PeekType(data)
	if err != nil {
		return 0, nil, err
	}
	if len(data) < HeaderSize+CRCSize {
		return 0, nil, ErrTruncated
	}
	if t != typ {
		return 0, nil, ErrWrongType
	}
	if int(binary.LittleEndian.Uint32(data[3:])) != len(data) {
		return 0, nil, ErrLengthMismatch
	}
	end := len(data) - CRCSize
	want := binary.LittleEndian.Uint32(data[end:])
	if crc32.ChecksumIEEE(data[2:end]) != want {
		return 0, nil, ErrChecksum
	}
	return data[7], data[HeaderSize:end], nil
}
