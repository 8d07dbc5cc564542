// Package codec converts between UTF-8 byte buffers and UTF-16 code unit
// buffers.
//
// Every function reads its input up to the first zero element or the end of
// the slice, whichever comes first. Allocating functions (DecodeUTF8,
// EncodeUTF16) return a fresh NUL-terminated buffer owned by the caller.
// Bounded functions (DecodeUTF8Into, EncodeUTF16Into) never allocate and
// never write at or past len(dst).
package codec

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/jstring/pkg/mem"
)

var (
	ErrInvalidUTF8 = errors.New("invalid utf-8 sequence")
	ErrSurrogate   = errors.New("unpaired surrogate")
	ErrRange       = errors.New("code point out of range")
	ErrShortBuffer = errors.New("buffer too small")
)

// SyntaxError reports malformed input and where it starts. Offset counts
// bytes for UTF-8 input and code units for UTF-16 input.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("codec: %v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Policy selects how the allocating functions treat malformed input.
type Policy int

const (
	// Strict rejects malformed input with a *SyntaxError.
	Strict Policy = iota
	// Lenient never fails: a UTF-8 sequence Strict would reject is read as
	// the Latin-1 character of its leading byte, and a lone UTF-16 surrogate
	// is written as its own 3-byte sequence.
	Lenient
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "strict" or "lenient" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	}
	return Strict, fmt.Errorf("unknown policy %q", s)
}

// Options configures a Codec.
type Options struct {
	Policy Policy
}

// Codec carries the options used by the allocating conversions. The bounded
// conversions are always strict and exist as plain functions.
type Codec struct {
	Opts Options
}

// New returns a Codec using opts.
func New(opts Options) *Codec {
	return &Codec{Opts: opts}
}

var std = New(Options{})

// Units is an owned, NUL-terminated UTF-16 buffer.
type Units []uint16

// Len returns the number of code units before the terminator.
func (u Units) Len() int { return unitLen(u) }

// String converts the buffer to a Go string, reading lone surrogates leniently.
func (u Units) String() string {
	b, _ := lenient.EncodeUTF16(u)
	return b.String()
}

// Bytes is an owned, NUL-terminated UTF-8 buffer.
type Bytes []byte

// Len returns the number of bytes before the terminator.
func (b Bytes) Len() int { return byteLen(b) }

func (b Bytes) String() string { return string(b[:b.Len()]) }

var lenient = New(Options{Policy: Lenient})

func unitLen(s []uint16) int {
	if i := mem.Find(s, 0, len(s)); i >= 0 {
		return i
	}
	return len(s)
}

func byteLen(s []byte) int {
	if i := mem.Find(s, 0, len(s)); i >= 0 {
		return i
	}
	return len(s)
}
