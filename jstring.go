// Package jstring is a C string library for UTF-16 text. Strings are
// []uint16 code unit slices that end at the first zero unit, or at the end of
// the slice when there is none. Lengths and indexes count code units, so a
// supplementary character counts as two.
//
// Functions that return a position in C return an index here, with -1 for
// "not found". The unbounded mutators (Copy, Cat) panic when dst is too
// small instead of overrunning it.
package jstring

import (
	"github.com/rawbytedev/jstring/pkg/mem"
)

// Len returns the number of code units before the terminator.
func Len(s []uint16) int {
	if i := mem.Find(s, 0, len(s)); i >= 0 {
		return i
	}
	return len(s)
}

// NLen is Len looking at no more than maxlen units.
func NLen(s []uint16, maxlen int) int {
	maxlen = min(maxlen, len(s))
	if maxlen <= 0 {
		return 0
	}
	if i := mem.Find(s, 0, maxlen); i >= 0 {
		return i
	}
	return maxlen
}

// Index returns the index of the first c in s, or -1. Searching for 0 always
// finds the end of the string, Len(s), whether or not s holds a terminator.
func Index(s []uint16, c uint16) int {
	n := Len(s)
	if c == 0 {
		return n
	}
	return mem.Find(s, c, n)
}

// IndexOrEnd is Index returning Len(s) instead of -1.
func IndexOrEnd(s []uint16, c uint16) int {
	if i := Index(s, c); i >= 0 {
		return i
	}
	return Len(s)
}

// LastIndex returns the index of the last c in s, or -1.
func LastIndex(s []uint16, c uint16) int {
	if c == 0 {
		return Index(s, 0)
	}
	for i := Len(s) - 1; i >= 0; i-- {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// IndexString returns the index of the first occurrence of sub in s, or -1.
// An empty sub matches at 0.
func IndexString(s, sub []uint16) int {
	m := Len(sub)
	if m == 0 {
		return 0
	}
	n := Len(s)
	for i := 0; i+m <= n; i++ {
		if s[i] == sub[0] && mem.Compare(s[i:], sub, m) == 0 {
			return i
		}
	}
	return -1
}

// IndexAny returns the index of the first unit of s that is in set, or -1.
func IndexAny(s, set []uint16) int {
	n, m := Len(s), Len(set)
	for i := 0; i < n; i++ {
		if mem.Find(set, s[i], m) >= 0 {
			return i
		}
	}
	return -1
}

// Span returns the length of the prefix of s made only of units in accept.
func Span(s, accept []uint16) int {
	n, m := Len(s), Len(accept)
	i := 0
	for i < n && mem.Find(accept, s[i], m) >= 0 {
		i++
	}
	return i
}

// CSpan returns the length of the prefix of s made only of units not in
// reject.
func CSpan(s, reject []uint16) int {
	n, m := Len(s), Len(reject)
	i := 0
	for i < n && mem.Find(reject, s[i], m) < 0 {
		i++
	}
	return i
}
