// Package mem holds the raw buffer primitives (copy, move, compare, fill,
// find) the string library is built on. They are generic over byte and
// UTF-16 code unit buffers so the same routines serve both widths.
//
// Like their C counterparts they do no validation: n larger than a slice
// panics through the normal bounds check.
package mem

import "unsafe"

// Unit is a fixed-width storage unit: a byte or a UTF-16 code unit.
type Unit interface {
	~uint8 | ~uint16
}

// Copy copies n elements from src to dst and returns n.
// dst and src must not overlap; use Move when they might.
func Copy[T Unit](dst, src []T, n int) int {
	if n == 0 {
		return 0
	}
	_ = dst[n-1]
	_ = src[n-1]
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

// Move copies n elements from src to dst, handling overlapping regions.
// When dst starts inside src the copy runs backward, otherwise forward.
func Move[T Unit](dst, src []T, n int) int {
	if n == 0 {
		return 0
	}
	_ = dst[n-1]
	_ = src[n-1]
	d := uintptr(unsafe.Pointer(&dst[0]))
	s := uintptr(unsafe.Pointer(&src[0]))
	if d == s {
		return n
	}
	if d < s || d >= s+uintptr(n)*unsafe.Sizeof(dst[0]) {
		for i := 0; i < n; i++ {
			dst[i] = src[i]
		}
		return n
	}
	for i := n - 1; i >= 0; i-- {
		dst[i] = src[i]
	}
	return n
}

// Compare compares the first n elements of a and b. It returns the signed
// difference of the first pair that differs, or 0 if all n are equal.
func Compare[T Unit](a, b []T, n int) int {
	if n == 0 {
		return 0
	}
	_ = a[n-1]
	_ = b[n-1]
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return 0
}

// Fill sets the first n elements of dst to v.
func Fill[T Unit](dst []T, v T, n int) {
	if n == 0 {
		return
	}
	_ = dst[n-1]
	for i := 0; i < n; i++ {
		dst[i] = v
	}
}

// Find returns the index of the first of the first n elements of buf equal
// to v, or -1.
func Find[T Unit](buf []T, v T, n int) int {
	if n == 0 {
		return -1
	}
	_ = buf[n-1]
	for i := 0; i < n; i++ {
		if buf[i] == v {
			return i
		}
	}
	return -1
}
