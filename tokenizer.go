package jstring

// Tokenizer splits a string into tokens separated by delimiter units, one
// token per call, like strtok. The cursor lives in the Tokenizer, so each
// tokenization owns its own state; the zero value is ready to use.
type Tokenizer struct {
	s   []uint16
	pos int
}

// Token returns the next token. A non-nil s starts a new tokenization of s,
// dropping any in progress; a nil s continues the current one. delim may
// differ between calls.
//
// Like strtok, Token overwrites the delimiter that ends a token with a zero
// unit. The token is a subslice of s. Token returns nil when no tokens are
// left.
func (t *Tokenizer) Token(s, delim []uint16) []uint16 {
	if s != nil {
		t.s, t.pos = s[:Len(s)], 0
	}
	if t.s == nil {
		return nil
	}
	start := t.pos + Span(t.s[t.pos:], delim)
	if start >= len(t.s) {
		t.s, t.pos = nil, 0
		return nil
	}
	end := start + CSpan(t.s[start:], delim)
	tok := t.s[start:end:end]
	if end < len(t.s) {
		t.s[end] = 0
		t.pos = end + 1
	} else {
		t.pos = end
	}
	return tok
}

// Next continues the current tokenization.
func (t *Tokenizer) Next(delim []uint16) []uint16 {
	return t.Token(nil, delim)
}

// Tokenize returns every token of s. s is modified as by Token.
func Tokenize(s, delim []uint16) [][]uint16 {
	var (
		t    Tokenizer
		toks [][]uint16
	)
	for tok := t.Token(s, delim); tok != nil; tok = t.Next(delim) {
		toks = append(toks, tok)
	}
	return toks
}
