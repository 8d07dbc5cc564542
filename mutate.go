package jstring

import (
	"github.com/rawbytedev/jstring/pkg/codec"
	"github.com/rawbytedev/jstring/pkg/mem"
)

// Copy copies src and its terminator into dst and returns Len(src).
// dst must hold Len(src)+1 units; Copy panics otherwise.
func Copy(dst, src []uint16) int {
	n := Len(src)
	_ = dst[n]
	mem.Copy(dst, src, n)
	dst[n] = 0
	return n
}

// LCopy copies at most size-1 units of src into dst, always terminating the
// result when size > 0. It returns Len(src), so a result >= size means the
// copy was truncated. size is clamped to len(dst).
func LCopy(dst, src []uint16, size int) int {
	n := Len(src)
	if size > len(dst) {
		size = len(dst)
	}
	if size > 0 {
		m := min(n, size-1)
		mem.Copy(dst, src, m)
		dst[m] = 0
	}
	return n
}

// Cat appends src to the string in dst and returns the new length.
// It panics when dst cannot hold the result and its terminator.
func Cat(dst, src []uint16) int {
	d := Len(dst)
	return d + Copy(dst[d:], src)
}

// LCat appends src to the string in dst, using at most size units of dst
// including the terminator. It returns the length of the string it tried to
// build: min(size, Len(dst)) + Len(src). A result >= size means truncation.
// size is clamped to len(dst).
func LCat(dst, src []uint16, size int) int {
	if size > len(dst) {
		size = len(dst)
	}
	d := NLen(dst, size)
	if d == size {
		return size + Len(src)
	}
	return d + LCopy(dst[d:], src, size-d)
}

// Dup returns a newly allocated copy of s.
func Dup(s []uint16) codec.Units {
	return dup(s, Len(s))
}

// NDup returns a newly allocated copy of at most n units of s.
func NDup(s []uint16, n int) codec.Units {
	return dup(s, NLen(s, n))
}

func dup(s []uint16, n int) codec.Units {
	out := make(codec.Units, n+1)
	mem.Copy(out, s, n)
	return out
}

// Reverse reverses s in place. Well-formed surrogate pairs keep their
// high/low order so supplementary characters survive.
func Reverse(s []uint16) {
	n := Len(s)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	for i := 0; i+1 < n; i++ {
		if codec.IsLowSurrogate(s[i]) && codec.IsHighSurrogate(s[i+1]) {
			s[i], s[i+1] = s[i+1], s[i]
			i++
		}
	}
}
