package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"testing/quick"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/jstring/internal/common"
	"github.com/rawbytedev/jstring/pkg/codec"
)

var roundTripOpts = []Options{
	{},
	{Compress: true},
	{UnsafeUnits: true},
	{Compress: true, UnsafeUnits: true},
}

func TestUnitsRoundTrip(t *testing.T) {
	inputs := []string{"", "hello", "héllo 世界", "\U0001F600 grin", strings.Repeat("abcé", 500)}
	for _, opts := range roundTripOpts {
		enc := NewEncoder(opts)
		dec := NewDecoder(opts)
		for _, in := range inputs {
			t.Run(fmt.Sprintf("%+v/%d", opts, len(in)), func(t *testing.T) {
				u, err := codec.DecodeString(in)
				require.NoError(t, err)

				data, err := enc.EncodeUnits(u)
				require.NoError(t, err)
				typ, err := PeekType(data)
				require.NoError(t, err)
				require.Equal(t, TypeUnits, typ)

				got, err := dec.DecodeUnits(data)
				require.NoError(t, err)
				require.Equal(t, u, got)

				s, err := dec.DecodeString(data)
				require.NoError(t, err)
				require.Equal(t, in, s)
			})
		}
	}
}

func TestRoundTripQuick(t *testing.T) {
	enc := NewEncoder(Options{})
	dec := NewDecoder(Options{})
	condition := func(s string) bool {
		data, err := enc.EncodeString(s)
		if err != nil {
			return false
		}
		got, err := dec.DecodeString(data)
		return err == nil && got == strings.SplitN(s, "\x00", 2)[0]
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestEncodeStopsAtTerminator(t *testing.T) {
	data, err := NewEncoder(Options{}).EncodeUnits([]uint16{'a', 'b', 0, 'c'})
	require.NoError(t, err)
	got, err := NewDecoder(Options{}).DecodeUnits(data)
	require.NoError(t, err)
	require.Equal(t, codec.Units{'a', 'b', 0}, got)
}

func TestFrameLayout(t *testing.T) {
	data, err := NewEncoder(Options{}).EncodeUnits([]uint16{'h', 'i', 0})
	require.NoError(t, err)
	want := []byte{'J', 'S', TypeUnits, 0, 0, 0, 0, 0, 2, 'h', 0, 'i', 0}
	binary.LittleEndian.PutUint32(want[3:], uint32(len(want)+CRCSize))
	require.Equal(t, want, data[:len(data)-CRCSize])
	require.Len(t, data, len(want)+CRCSize)
}

func TestView(t *testing.T) {
	u, err := codec.DecodeString("view me")
	require.NoError(t, err)
	for _, opts := range roundTripOpts {
		data, err := NewEncoder(opts).EncodeUnits(u)
		require.NoError(t, err)
		v, err := NewDecoder(opts).View(data)
		require.NoError(t, err)
		assert.Equal(t, []uint16(u[:u.Len()]), v)
	}
}

func TestCorruptFrames(t *testing.T) {
	enc := NewEncoder(Options{})
	dec := NewDecoder(Options{})
	good, err := enc.EncodeString("payload")
	require.NoError(t, err)

	mutate := func(f func([]byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotFrame},
		{"bad magic", mutate(func(b []byte) []byte { b[0] = 'X'; return b }), ErrNotFrame},
		{"short", good[:HeaderSize], ErrTruncated},
		{"wrong type", mutate(func(b []byte) []byte { b[2] = TypeError; return b }), ErrWrongType},
		{"cut", good[:len(good)-1], ErrLengthMismatch},
		{"flipped", mutate(func(b []byte) []byte { b[HeaderSize+2] ^= 0xff; return b }), ErrChecksum},
		{"crc", mutate(func(b []byte) []byte { b[len(b)-1] ^= 1; return b }), ErrChecksum},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dec.DecodeUnits(tc.data)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// resealed builds a units frame by hand so the body can disagree with
// itself while framing and CRC stay valid.
func resealed(flags byte, body []byte) []byte {
	out := []byte{'J', 'S', TypeUnits, 0, 0, 0, 0, flags}
	out = append(out, body...)
	return seal(out)
}

func TestBodyMismatch(t *testing.T) {
	dec := NewDecoder(Options{})

	_, err := dec.DecodeUnits(resealed(0, []byte{3, 'a', 0}))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = dec.DecodeUnits(resealed(0, []byte{0x80}))
	require.ErrorIs(t, err, ErrTruncated)

	_, err = dec.DecodeUnits(resealed(0, []byte{0x80, 0x80, 0x80, 0x80, 0x02}))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = dec.DecodeUnits(resealed(FlagZstd, []byte{1, 'n', 'o', 't', 'z'}))
	require.Error(t, err)

	_, err = dec.DecodeUnits(resealed(0, common.WriteVarUintTo(nil, MaxUnits+1)))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

// unitsBody returns a units frame body claiming count units with payload p.
func unitsBody(count uint64, p []byte) []byte {
	return append(common.WriteVarUintTo(nil, count), p...)
}

func TestCompressedCountMismatch(t *testing.T) {
	zw, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	z := zw.EncodeAll([]byte("abcdef"), nil)
	require.NoError(t, zw.Close())

	dec := NewDecoder(Options{})
	defer dec.Close()

	got, err := dec.DecodeUnits(resealed(FlagZstd, unitsBody(3, z)))
	require.NoError(t, err)
	require.Equal(t, codec.Units{0x6261, 0x6463, 0x6665, 0}, got)

	for _, count := range []uint64{0, 2, 4} {
		_, err = dec.DecodeUnits(resealed(FlagZstd, unitsBody(count, z)))
		require.ErrorIs(t, err, ErrLengthMismatch, "count %d", count)
	}
}

func TestCompressedPayloadIsBounded(t *testing.T) {
	zeros := make([]byte, 64<<20)

	var stream bytes.Buffer
	sw, err := zstd.NewWriter(&stream)
	require.NoError(t, err)
	_, err = sw.Write(zeros)
	require.NoError(t, err)
	require.NoError(t, sw.Close())

	aw, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	single := aw.EncodeAll(zeros, nil)
	require.NoError(t, aw.Close())

	payloads := []struct {
		name string
		z    []byte
	}{
		{"stream", stream.Bytes()},
		{"single", single},
	}
	for _, p := range payloads {
		t.Run(p.name, func(t *testing.T) {
			frame := resealed(FlagZstd, unitsBody(1, p.z))
			dec := NewDecoder(Options{})
			defer dec.Close()

			var before, after runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&before)
			_, err := dec.DecodeUnits(frame)
			runtime.ReadMemStats(&after)

			require.ErrorIs(t, err, ErrLengthMismatch)
			require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(32<<20))
		})
	}
}

func TestErrorFrames(t *testing.T) {
	enc := NewEncoder(Options{})
	dec := NewDecoder(Options{})

	_, decodeErr := codec.DecodeUTF8([]byte{'a', 0xc0, 0x80})
	require.Error(t, decodeErr)

	cases := []struct {
		err   error
		code  ErrorCode
		class string
	}{
		{decodeErr, CodeInvalidUTF8, "java/io/UTFDataFormatException"},
		{&codec.SyntaxError{Offset: 2, Err: codec.ErrSurrogate}, CodeSurrogate, "java/io/UTFDataFormatException"},
		{fmt.Errorf("rune: %w", codec.ErrRange), CodeRange, "java/io/CharConversionException"},
		{codec.ErrShortBuffer, CodeShortBuffer, "java/io/EOFException"},
		{errors.New("disk on fire"), CodeIO, "java/io/IOException"},
	}
	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			data, err := enc.EncodeError(tc.err)
			require.NoError(t, err)
			typ, err := PeekType(data)
			require.NoError(t, err)
			require.Equal(t, TypeError, typ)

			_, err = dec.DecodeUnits(data)
			require.ErrorIs(t, err, ErrWrongType)

			remote, err := dec.DecodeError(data)
			require.NoError(t, err)
			assert.Equal(t, tc.code, remote.Code)
			assert.Equal(t, tc.err.Error(), remote.Message)
			assert.Equal(t, tc.class, remote.Code.ClassName())
			if want := tc.code.Err(); want != nil {
				assert.ErrorIs(t, remote, want)
			} else {
				assert.Nil(t, errors.Unwrap(remote))
			}
		})
	}
}

func TestLongErrorMessageIsCut(t *testing.T) {
	data, err := NewEncoder(Options{}).EncodeError(errors.New(strings.Repeat("x", 70000)))
	require.NoError(t, err)
	remote, err := NewDecoder(Options{}).DecodeError(data)
	require.NoError(t, err)
	require.Len(t, remote.Message, 0xffff)
}

func FuzzDecodeUnits(f *testing.F) {
	good, _ := NewEncoder(Options{Compress: true}).EncodeString("seed")
	f.Add(good)
	f.Add([]byte("JS"))
	f.Fuzz(func(t *testing.T, data []byte) {
		dec := NewDecoder(Options{})
		u, err := dec.DecodeUnits(data)
		if err == nil {
			require.Equal(t, uint16(0), u[len(u)-1])
		}
	})
}

func BenchmarkEncodeUnits(b *testing.B) {
	u, _ := codec.DecodeString(strings.Repeat("héllo 世界 ", 64))
	for _, opts := range roundTripOpts {
		enc := NewEncoder(opts)
		b.Run(fmt.Sprintf("%+v", opts), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := enc.EncodeUnits(u); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodeUnits(b *testing.B) {
	u, _ := codec.DecodeString(strings.Repeat("héllo 世界 ", 64))
	for _, opts := range roundTripOpts {
		data, _ := NewEncoder(opts).EncodeUnits(u)
		dec := NewDecoder(opts)
		b.Run(fmt.Sprintf("%+v", opts), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := dec.DecodeUnits(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
