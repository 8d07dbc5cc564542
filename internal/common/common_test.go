package common

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestVarUintRoundTrip(t *testing.T) {
	condition := func(x uint64) bool {
		b := WriteVarUintTo(nil, x)
		got, n := ReadVarUint(b)
		return got == x && n == len(b)
	}
	require.NoError(t, quick.Check(condition, nil))
}

func TestReadVarUintTruncated(t *testing.T) {
	b := WriteVarUintTo(nil, 1<<40)
	v, n := ReadVarUint(b[:len(b)-1])
	require.Zero(t, v)
	require.Zero(t, n)

	v, n = ReadVarUint([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	require.Zero(t, v)
	require.Zero(t, n)
}

func TestReadVarUintOverflow(t *testing.T) {
	// the tenth byte carries only bit 63
	v, n := ReadVarUint([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x02})
	require.Zero(t, v)
	require.Zero(t, n)

	v, n = ReadVarUint([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	require.Equal(t, uint64(1)<<63, v)
	require.Equal(t, 10, n)

	top := WriteVarUintTo(nil, ^uint64(0))
	require.Len(t, top, 10)
	v, n = ReadVarUint(top)
	require.Equal(t, ^uint64(0), v)
	require.Equal(t, 10, n)
}

func TestUnitsAliasing(t *testing.T) {
	u := []uint16{0x0041, 0xd83d, 0xde00}
	b := UnitsAsBytes(u)
	require.Len(t, b, 6)

	back, ok := BytesAsUnits(b)
	require.True(t, ok)
	require.Equal(t, u, back)

	// aliasing shares memory
	back[0] = 'B'
	require.Equal(t, uint16('B'), u[0])

	if HostLittleEndian {
		require.Equal(t, AppendUnitsLE(nil, u), b)
	}

	_, ok = BytesAsUnits([]byte{1, 2, 3})
	require.False(t, ok)
	empty, ok := BytesAsUnits(nil)
	require.True(t, ok)
	require.Nil(t, empty)
	require.Nil(t, UnitsAsBytes(nil))
}

func TestUnitsLE(t *testing.T) {
	u := []uint16{0x1234, 0xabcd}
	b := AppendUnitsLE(nil, u)
	require.Equal(t, []byte{0x34, 0x12, 0xcd, 0xab}, b)

	out := make([]uint16, 2)
	UnitsFromLE(out, append(b, 0xee))
	require.Equal(t, u, out)
}
