package wire

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/jstring/pkg/codec"
)

// ErrorCode identifies a conversion failure on the wire.
type ErrorCode byte

const (
	CodeIO ErrorCode = iota
	CodeInvalidUTF8
	CodeSurrogate
	CodeRange
	CodeShortBuffer
)

// CodeOf maps err to the code of the first codec sentinel it wraps.
// Anything else is CodeIO.
func CodeOf(err error) ErrorCode {
	switch {
	case errors.Is(err, codec.ErrInvalidUTF8):
		return CodeInvalidUTF8
	case errors.Is(err, codec.ErrSurrogate):
		return CodeSurrogate
	case errors.Is(err, codec.ErrRange):
		return CodeRange
	case errors.Is(err, codec.ErrShortBuffer):
		return CodeShortBuffer
	default:
		return CodeIO
	}
}

// ClassName is the JVM exception class a host bridge raises for c.
func (c ErrorCode) ClassName() string {
	switch c {
	case CodeInvalidUTF8, CodeSurrogate:
		return "java/io/UTFDataFormatException"
	case CodeRange:
		return "java/io/CharConversionException"
	case CodeShortBuffer:
		return "java/io/EOFException"
	default:
		return "java/io/IOException"
	}
}

// Err returns the codec sentinel for c, or nil for CodeIO.
func (c ErrorCode) Err() error {
	switch c {
	case CodeInvalidUTF8:
		return codec.ErrInvalidUTF8
	case CodeSurrogate:
		return codec.ErrSurrogate
	case CodeRange:
		return codec.ErrRange
	case CodeShortBuffer:
		return codec.ErrShortBuffer
	default:
		return nil
	}
}

func (c ErrorCode) String() string {
	switch c {
	case CodeIO:
		return "io"
	case CodeInvalidUTF8:
		return "invalid-utf8"
	case CodeSurrogate:
		return "surrogate"
	case CodeRange:
		return "range"
	case CodeShortBuffer:
		return "short-buffer"
	default:
		return fmt.Sprintf("code(%d)", byte(c))
	}
}

// RemoteError is a failure decoded from an error frame.
type RemoteError struct {
	Code    ErrorCode
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s: %s", e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Code.Err()
}
