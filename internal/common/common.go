package common

import (
	"encoding/binary"
	"unsafe"
)

// HostLittleEndian reports whether the host stores uint16 low byte first.
var HostLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// WriteVarUintTo appends varint-encoded x to dst using a small stack scratch.
func WriteVarUintTo(dst []byte, x uint64) []byte {
	var scratch [10]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	return append(dst, scratch[:i]...)
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// It returns 0, 0 when b ends before the varint does or the value overflows.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == 9 && c > 1 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}

// UnitsAsBytes aliases u as its in-memory bytes without copying. The byte
// order is the host's; callers check HostLittleEndian before putting the
// result on the wire.
func UnitsAsBytes(u []uint16) []byte {
	if len(u) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&u[0])), len(u)*2)
}

// BytesAsUnits aliases b as code units without copying. It fails when b has
// an odd length or is not 2-byte aligned.
func BytesAsUnits(b []byte) ([]uint16, bool) {
	if len(b) == 0 {
		return nil, true
	}
	if len(b)%2 != 0 || uintptr(unsafe.Pointer(&b[0]))%unsafe.Alignof(uint16(0)) != 0 {
		return nil, false
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&b[0])), len(b)/2), true
}

// AppendUnitsLE appends u to dst as little-endian code units.
func AppendUnitsLE(dst []byte, u []uint16) []byte {
	for _, c := range u {
		dst = binary.LittleEndian.AppendUint16(dst, c)
	}
	return dst
}

// UnitsFromLE copies little-endian code units out of b into dst, which must
// hold len(b)/2 units. A trailing odd byte is ignored.
func UnitsFromLE(dst []uint16, b []byte) {
	for i := 0; i+1 < len(b); i += 2 {
		dst[i/2] = binary.LittleEndian.Uint16(b[i:])
	}
}
