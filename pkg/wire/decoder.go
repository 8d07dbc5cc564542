package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/jstring/internal/common"
	"github.com/rawbytedev/jstring/pkg/codec"
	"github.com/rawbytedev/jstring/pkg/mem"
)

// Decoder reads frames built by an Encoder. It is not safe for concurrent use.
type Decoder struct {
	Opts Options
	zdec *zstd.Decoder
}

// NewDecoder returns a Decoder using opts.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{Opts: opts}
}

// Close releases the zstd decoder, if one was created.
func (d *Decoder) Close() {
	if d.zdec != nil {
		d.zdec.Close()
		d.zdec = nil
	}
}

// maxStreamWindow bounds the window of a compressed payload that is larger
// than the payload itself.
const maxStreamWindow = 8 << 20

// decompress inflates z, which must hold exactly size bytes once inflated.
// It never produces more than size+1 bytes, so a frame that lies about its
// unit count is rejected without inflating the rest.
func (d *Decoder) decompress(z []byte, size int) ([]byte, error) {
	var h zstd.Header
	if h.Decode(z) == nil {
		if h.HasFCS && h.FrameContentSize != uint64(size) {
			return nil, ErrLengthMismatch
		}
		if h.WindowSize > max(uint64(size), maxStreamWindow) {
			return nil, ErrLengthMismatch
		}
	}
	if d.zdec == nil {
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(MaxUnits)*2))
		if err != nil {
			return nil, err
		}
		d.zdec = dec
	}
	if err := d.zdec.Reset(bytes.NewReader(z)); err != nil {
		return nil, err
	}
	out := bytes.NewBuffer(make([]byte, 0, min(size, 64<<10)))
	n, err := out.ReadFrom(io.LimitReader(d.zdec, int64(size)+1))
	if err != nil {
		return nil, err
	}
	if n != int64(size) {
		return nil, ErrLengthMismatch
	}
	return out.Bytes(), nil
}

// payload returns the unit count, the raw UTF-16LE bytes and the flags of a
// units frame. raw aliases data unless FlagZstd is set.
func (d *Decoder) payload(data []byte) (int, []byte, byte, error) {
	flags, body, err := open(data, TypeUnits)
	if err != nil {
		return 0, nil, 0, err
	}
	count, k := common.ReadVarUint(body)
	if k == 0 {
		return 0, nil, 0, ErrTruncated
	}
	if count > MaxUnits {
		return 0, nil, 0, fmt.Errorf("%w: %d units", ErrLengthMismatch, count)
	}
	raw := body[k:]
	if flags&FlagZstd != 0 {
		raw, err = d.decompress(raw, int(count)*2)
		if err != nil {
			return 0, nil, 0, fmt.Errorf("decompress units: %w", err)
		}
	}
	if len(raw) != int(count)*2 {
		return 0, nil, 0, ErrLengthMismatch
	}
	return int(count), raw, flags, nil
}

// DecodeUnits returns the string carried by a units frame as a freshly
// allocated NUL-terminated buffer.
func (d *Decoder) DecodeUnits(data []byte) (codec.Units, error) {
	count, raw, _, err := d.payload(data)
	if err != nil {
		return nil, err
	}
	out := make(codec.Units, count+1)
	if v, ok := d.alias(raw); ok {
		mem.Copy(out, v, count)
	} else {
		common.UnitsFromLE(out, raw)
	}
	return out, nil
}

// View returns the units of a frame without a terminator. When
// Opts.UnsafeUnits is set on a little-endian host and the payload is
// uncompressed and aligned, the result aliases data. Otherwise it is a copy.
func (d *Decoder) View(data []byte) ([]uint16, error) {
	count, raw, flags, err := d.payload(data)
	if err != nil {
		return nil, err
	}
	if flags&FlagZstd == 0 {
		if v, ok := d.alias(raw); ok {
			return v, nil
		}
	}
	out := make([]uint16, count)
	common.UnitsFromLE(out, raw)
	return out, nil
}

func (d *Decoder) alias(raw []byte) ([]uint16, bool) {
	if !d.Opts.UnsafeUnits || !common.HostLittleEndian {
		return nil, false
	}
	return common.BytesAsUnits(raw)
}

// DecodeString returns the string carried by a units frame as UTF-8.
func (d *Decoder) DecodeString(data []byte) (string, error) {
	u, err := d.DecodeUnits(data)
	if err != nil {
		return "", err
	}
	b, err := codec.EncodeUTF16(u)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// DecodeError returns the error carried by an error frame.
func (d *Decoder) DecodeError(data []byte) (*RemoteError, error) {
	_, body, err := open(data, TypeError)
	if err != nil {
		return nil, err
	}
	if len(body) < 3 {
		return nil, ErrTruncated
	}
	code := ErrorCode(body[0])
	n := int(binary.LittleEndian.Uint16(body[1:]))
	if len(body) != 3+n {
		return nil, ErrLengthMismatch
	}
	return &RemoteError{Code: code, Message: string(body[3:])}, nil
}
