package codec

// decodeUnits reads one code point from src[i], combining a surrogate pair.
func decodeUnits(src []uint16, i int) (rune, int, error) {
	u := src[i]
	switch {
	case IsHighSurrogate(u):
		if i+1 < len(src) && IsLowSurrogate(src[i+1]) {
			return CombineSurrogates(u, src[i+1]), 2, nil
		}
		return 0, 0, ErrSurrogate
	case IsLowSurrogate(u):
		return 0, 0, ErrSurrogate
	}
	return rune(u), 1, nil
}

func (c *Codec) nextUnits(src []uint16, i int) (rune, int, error) {
	r, size, err := decodeUnits(src, i)
	if err != nil {
		if c.Opts.Policy == Lenient {
			return rune(src[i]), 1, nil
		}
		return 0, 0, &SyntaxError{Offset: i, Err: err}
	}
	return r, size, nil
}

// RuneLen returns the number of bytes needed to encode r in UTF-8.
// Lone surrogates count as 3 bytes.
func RuneLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < surrSelf:
		return 3
	default:
		return 4
	}
}

// putRune writes r without validating it; dst must hold RuneLen(r) bytes.
func putRune(dst []byte, r rune) int {
	switch {
	case r < 0x80:
		dst[0] = byte(r)
		return 1
	case r < 0x800:
		_ = dst[1]
		dst[0] = 0xc0 | byte(r>>6)
		dst[1] = 0x80 | byte(r)&0x3f
		return 2
	case r < surrSelf:
		_ = dst[2]
		dst[0] = 0xe0 | byte(r>>12)
		dst[1] = 0x80 | byte(r>>6)&0x3f
		dst[2] = 0x80 | byte(r)&0x3f
		return 3
	default:
		_ = dst[3]
		dst[0] = 0xf0 | byte(r>>18)
		dst[1] = 0x80 | byte(r>>12)&0x3f
		dst[2] = 0x80 | byte(r>>6)&0x3f
		dst[3] = 0x80 | byte(r)&0x3f
		return 4
	}
}

// EncodeUTF16 encodes src into a freshly allocated NUL-terminated UTF-8
// buffer sized to exactly the encoded bytes plus the terminator.
func (c *Codec) EncodeUTF16(src []uint16) (Bytes, error) {
	src = src[:unitLen(src)]
	n := 0
	for i := 0; i < len(src); {
		r, size, err := c.nextUnits(src, i)
		if err != nil {
			return nil, err
		}
		n += RuneLen(r)
		i += size
	}
	out := make(Bytes, n+1)
	j := 0
	for i := 0; i < len(src); {
		r, size, _ := c.nextUnits(src, i)
		j += putRune(out[j:], r)
		i += size
	}
	return out, nil
}

// EncodeUTF16 encodes src with the strict policy.
func EncodeUTF16(src []uint16) (Bytes, error) {
	return std.EncodeUTF16(src)
}

// EncodeUTF16Into encodes src into dst without allocating. A code point is
// only written when it leaves room for the terminator, and dst[n] is always
// set to zero when dst is not empty. done reports whether all of src was
// consumed; it is false when dst is empty.
//
// An unpaired high surrogate or a lone low surrogate stops encoding with a
// *SyntaxError; the bytes encoded before it are kept and terminated.
func EncodeUTF16Into(dst []byte, src []uint16) (n int, done bool, err error) {
	src = src[:unitLen(src)]
	if len(dst) == 0 {
		return 0, false, nil
	}
	i := 0
	for i < len(src) {
		r, size, derr := decodeUnits(src, i)
		if derr != nil {
			dst[n] = 0
			return n, false, &SyntaxError{Offset: i, Err: derr}
		}
		w := RuneLen(r)
		if n+w >= len(dst) {
			break
		}
		n += putRune(dst[n:], r)
		i += size
	}
	dst[n] = 0
	return n, i == len(src), nil
}

// EncodeRune writes the UTF-8 encoding of r to dst and returns the number of
// bytes written. No terminator is added.
func EncodeRune(dst []byte, r rune) (int, error) {
	switch {
	case IsSurrogate(r):
		return 0, ErrSurrogate
	case r < 0 || r > MaxRune:
		return 0, ErrRange
	}
	if len(dst) < RuneLen(r) {
		return 0, ErrShortBuffer
	}
	return putRune(dst, r), nil
}

// AppendRune appends the UTF-8 encoding of r to dst. Invalid code points are
// rejected with the same errors as EncodeRune.
func AppendRune(dst []byte, r rune) ([]byte, error) {
	var scratch [4]byte
	n, err := EncodeRune(scratch[:], r)
	if err != nil {
		return dst, err
	}
	return append(dst, scratch[:n]...), nil
}

// UTF8Len returns the number of UTF-8 bytes src encodes to, not counting a
// terminator, or -1 if src holds an unpaired surrogate.
func UTF8Len(src []uint16) int {
	src = src[:unitLen(src)]
	n := 0
	for i := 0; i < len(src); {
		r, size, err := decodeUnits(src, i)
		if err != nil {
			return -1
		}
		n += RuneLen(r)
		i += size
	}
	return n
}

// ValidUnits reports whether every surrogate in src is correctly paired.
func ValidUnits(src []uint16) bool {
	return UTF8Len(src) >= 0
}
