package jstring

import (
	"github.com/rawbytedev/jstring/pkg/codec"
)

var display = codec.New(codec.Options{Policy: codec.Lenient})

// FromString converts s to a NUL-terminated UTF-16 buffer. Invalid UTF-8 is
// read leniently; use codec.DecodeString to reject it.
func FromString(s string) codec.Units {
	u, _ := display.DecodeUTF8([]byte(s))
	return u
}

// ToString converts s to a Go string. Lone surrogates are kept as their own
// 3-byte sequences; use codec.EncodeUTF16 to reject them.
func ToString(s []uint16) string {
	return codec.Units(s).String()
}
