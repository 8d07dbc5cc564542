package codec

const (
	// 0xd800-0xdc00 carries the high 10 bits of a pair, 0xdc00-0xe000 the low
	// 10 bits; the code point is those 20 bits plus 0x10000.
	surr1    = 0xd800
	surr2    = 0xdc00
	surr3    = 0xe000
	surrSelf = 0x10000

	MaxRune = 0x10ffff
)

// IsHighSurrogate reports whether u is the first unit of a surrogate pair.
func IsHighSurrogate(u uint16) bool { return surr1 <= u && u < surr2 }

// IsLowSurrogate reports whether u is the second unit of a surrogate pair.
func IsLowSurrogate(u uint16) bool { return surr2 <= u && u < surr3 }

// IsSurrogate reports whether r falls in the surrogate range and so cannot be
// encoded on its own.
func IsSurrogate(r rune) bool { return surr1 <= r && r < surr3 }

// CombineSurrogates returns the code point encoded by a high/low pair.
// The result is only meaningful when hi and lo are in their ranges.
func CombineSurrogates(hi, lo uint16) rune {
	return surrSelf + (rune(hi)-surr1)<<10 + (rune(lo) - surr2)
}

// SplitRune splits a supplementary code point into its surrogate pair.
func SplitRune(r rune) (hi, lo uint16) {
	r -= surrSelf
	return uint16(surr1 | (r>>10)&0x3ff), uint16(surr2 | r&0x3ff)
}

// ValidRune reports whether r is a code point that can be encoded.
func ValidRune(r rune) bool {
	return 0 <= r && r <= MaxRune && !IsSurrogate(r)
}
