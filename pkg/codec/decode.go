package codec

// decodeRune reads one strict UTF-8 sequence starting at src[i].
// Overlong forms, surrogates, values above MaxRune and truncated sequences
// are rejected.
func decodeRune(src []byte, i int) (rune, int, error) {
	b := src[i]
	var (
		r     rune
		size  int
		floor rune
	)
	switch {
	case b < 0x80:
		return rune(b), 1, nil
	case b&0xe0 == 0xc0:
		r, size, floor = rune(b&0x1f), 2, 0x80
	case b&0xf0 == 0xe0:
		r, size, floor = rune(b&0x0f), 3, 0x800
	case b&0xf8 == 0xf0:
		r, size, floor = rune(b&0x07), 4, surrSelf
	default:
		// stray continuation byte or 0xf8..0xff
		return 0, 0, ErrInvalidUTF8
	}
	if i+size > len(src) {
		return 0, 0, ErrInvalidUTF8
	}
	for _, c := range src[i+1 : i+size] {
		if c&0xc0 != 0x80 {
			return 0, 0, ErrInvalidUTF8
		}
		r = r<<6 | rune(c&0x3f)
	}
	switch {
	case r < floor:
		return 0, 0, ErrInvalidUTF8
	case r > MaxRune:
		return 0, 0, ErrRange
	case IsSurrogate(r):
		return 0, 0, ErrSurrogate
	}
	return r, size, nil
}

// next decodes the sequence at src[i] under the codec's policy.
func (c *Codec) next(src []byte, i int) (rune, int, error) {
	r, size, err := decodeRune(src, i)
	if err != nil {
		if c.Opts.Policy == Lenient {
			return rune(src[i]), 1, nil
		}
		return 0, 0, &SyntaxError{Offset: i, Err: err}
	}
	return r, size, nil
}

func unitsFor(r rune) int {
	if r >= surrSelf {
		return 2
	}
	return 1
}

// DecodeUTF8 decodes src into a freshly allocated NUL-terminated UTF-16
// buffer sized to exactly the decoded units plus the terminator.
func (c *Codec) DecodeUTF8(src []byte) (Units, error) {
	src = src[:byteLen(src)]
	n := 0
	for i := 0; i < len(src); {
		r, size, err := c.next(src, i)
		if err != nil {
			return nil, err
		}
		n += unitsFor(r)
		i += size
	}
	out := make(Units, n+1)
	j := 0
	for i := 0; i < len(src); {
		r, size, _ := c.next(src, i)
		if r >= surrSelf {
			out[j], out[j+1] = SplitRune(r)
			j += 2
		} else {
			out[j] = uint16(r)
			j++
		}
		i += size
	}
	return out, nil
}

// DecodeUTF8 decodes src with the strict policy.
func DecodeUTF8(src []byte) (Units, error) {
	return std.DecodeUTF8(src)
}

// DecodeString is DecodeUTF8 for a Go string.
func DecodeString(s string) (Units, error) {
	return std.DecodeUTF8([]byte(s))
}

// DecodeUTF8Into decodes src into dst without allocating. It stops before
// a code point that would leave no room for the terminator, so at most
// len(dst)-1 units are written, and dst[n] is always set to zero when dst is
// not empty. done reports whether all of src was consumed; it is false when
// dst is empty.
//
// Malformed input stops decoding with a *SyntaxError; the units decoded
// before it are kept and terminated.
func DecodeUTF8Into(dst []uint16, src []byte) (n int, done bool, err error) {
	src = src[:byteLen(src)]
	if len(dst) == 0 {
		return 0, false, nil
	}
	i := 0
	for i < len(src) && n+1 < len(dst) {
		r, size, derr := decodeRune(src, i)
		if derr != nil {
			dst[n] = 0
			return n, false, &SyntaxError{Offset: i, Err: derr}
		}
		if r < surrSelf {
			dst[n] = uint16(r)
			n++
		} else {
			if n+2 >= len(dst) {
				break
			}
			dst[n], dst[n+1] = SplitRune(r)
			n += 2
		}
		i += size
	}
	dst[n] = 0
	return n, i == len(src), nil
}

// DecodeRune decodes the single UTF-8 sequence at the start of src.
// Unlike the buffer functions it does not stop at a zero byte: a leading
// 0x00 decodes as U+0000.
func DecodeRune(src []byte) (r rune, size int, err error) {
	if len(src) == 0 {
		return 0, 0, &SyntaxError{Offset: 0, Err: ErrInvalidUTF8}
	}
	r, size, err = decodeRune(src, 0)
	if err != nil {
		return 0, 0, &SyntaxError{Offset: 0, Err: err}
	}
	return r, size, nil
}

// DecodeUnit decodes the UTF-8 sequence at the start of src into dst: one
// unit for a BMP character, a surrogate pair for a supplementary one. It
// returns the units written and the bytes consumed.
func DecodeUnit(dst []uint16, src []byte) (units, size int, err error) {
	r, size, err := DecodeRune(src)
	if err != nil {
		return 0, 0, err
	}
	if len(dst) < unitsFor(r) {
		return 0, 0, ErrShortBuffer
	}
	if r >= surrSelf {
		dst[0], dst[1] = SplitRune(r)
		return 2, size, nil
	}
	dst[0] = uint16(r)
	return 1, size, nil
}

// UTF16Len returns the number of UTF-16 units src decodes to, not counting a
// terminator, or -1 if src is malformed.
func UTF16Len(src []byte) int {
	src = src[:byteLen(src)]
	n := 0
	for i := 0; i < len(src); {
		r, size, err := decodeRune(src, i)
		if err != nil {
			return -1
		}
		n += unitsFor(r)
		i += size
	}
	return n
}

// Valid reports whether src is well-formed UTF-8 up to its terminator.
func Valid(src []byte) bool {
	return UTF16Len(src) >= 0
}
