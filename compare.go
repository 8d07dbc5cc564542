package jstring

func at(s []uint16, i int) uint16 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// Compare compares a and b unit by unit and returns the difference of the
// first pair that differs, or 0 when the strings are equal.
func Compare(a, b []uint16) int {
	for i := 0; ; i++ {
		ca, cb := at(a, i), at(b, i)
		if ca != cb {
			return int(ca) - int(cb)
		}
		if ca == 0 {
			return 0
		}
	}
}

// CompareN is Compare looking at no more than n units.
func CompareN(a, b []uint16, n int) int {
	for i := 0; i < n; i++ {
		ca, cb := at(a, i), at(b, i)
		if ca != cb {
			return int(ca) - int(cb)
		}
		if ca == 0 {
			return 0
		}
	}
	return 0
}

// Collate orders a and b by code unit value. It is not locale aware and
// always agrees with Compare.
func Collate(a, b []uint16) int {
	return Compare(a, b)
}

// Transform writes the collation key of src to dst and returns its length.
// Collate is ordinal, so the key is src itself: it is copied with its
// terminator when Len(src) < n, and dst is left untouched otherwise.
// n is clamped to len(dst).
func Transform(dst, src []uint16, n int) int {
	l := Len(src)
	if n > len(dst) {
		n = len(dst)
	}
	if l < n {
		Copy(dst, src)
	}
	return l
}
