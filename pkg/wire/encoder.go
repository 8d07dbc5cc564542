package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/jstring/internal/common"
	"github.com/rawbytedev/jstring/pkg/codec"
)

// Encoder builds frames. It reuses its buffer and zstd state between calls
// and is not safe for concurrent use.
type Encoder struct {
	Opts Options
	buf  *bytes.Buffer
	zenc *zstd.Encoder
}

// NewEncoder returns an Encoder using opts.
func NewEncoder(opts Options) *Encoder {
	return &Encoder{Opts: opts}
}

// Close releases the zstd encoder, if one was created.
func (e *Encoder) Close() error {
	if e.zenc == nil {
		return nil
	}
	err := e.zenc.Close()
	e.zenc = nil
	return err
}

func (e *Encoder) reset() {
	if e.buf == nil {
		e.buf = &bytes.Buffer{}
	}
	e.buf.Reset()
}

// detach copies the buffered frame out, leaving room for the CRC.
func (e *Encoder) detach() []byte {
	out := make([]byte, e.buf.Len(), e.buf.Len()+CRCSize)
	copy(out, e.buf.Bytes())
	return out
}

func (e *Encoder) compress(raw []byte) ([]byte, error) {
	if e.zenc == nil {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return nil, err
		}
		e.zenc = enc
	}
	return e.zenc.EncodeAll(raw, nil), nil
}

// EncodeUnits frames the string in u, up to its terminator.
// The returned slice is freshly allocated.
func (e *Encoder) EncodeUnits(u []uint16) ([]byte, error) {
	u = u[:codec.Units(u).Len()]

	var raw []byte
	if e.Opts.UnsafeUnits && common.HostLittleEndian {
		raw = common.UnitsAsBytes(u)
	} else {
		raw = common.AppendUnitsLE(make([]byte, 0, len(u)*2), u)
	}

	var flags byte
	if e.Opts.Compress {
		z, err := e.compress(raw)
		if err != nil {
			return nil, err
		}
		raw = z
		flags |= FlagZstd
	}

	e.reset()
	writePreamble(e.buf, TypeUnits)
	binary.Write(e.buf, binary.LittleEndian, uint32(0)) // length placeholder
	e.buf.WriteByte(flags)
	e.buf.Write(common.WriteVarUintTo(nil, uint64(len(u))))
	e.buf.Write(raw)

	return seal(e.detach()), nil
}

// EncodeString decodes s as UTF-8 and frames the result.
func (e *Encoder) EncodeString(s string) ([]byte, error) {
	u, err := codec.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return e.EncodeUnits(u)
}

// EncodeError frames err as an error code and message. Messages longer than
// 64KiB-1 bytes are cut.
func (e *Encoder) EncodeError(err error) ([]byte, error) {
	msg := []byte(err.Error())
	if len(msg) > 0xffff {
		msg = msg[:0xffff]
	}

	e.reset()
	writePreamble(e.buf, TypeError)
	binary.Write(e.buf, binary.LittleEndian, uint32(0))
	e.buf.WriteByte(0)
	e.buf.WriteByte(byte(CodeOf(err)))
	binary.Write(e.buf, binary.LittleEndian, uint16(len(msg)))
	e.buf.Write(msg)

	return seal(e.detach()), nil
}
