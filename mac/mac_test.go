package mac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	addr, err := Parse("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0000FFEEDDCCBBAA), addr)
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"aa:bb:cc:dd:ee",
		"aa:bb:cc:dd:ee:ff:00",
		"aa:bb:cc:dd:ee:zz",
		"aabbccddeeff",
		"aa:bb:cc:dd:ee:f",
	}
	for _, c := range cases {
		_, err := Parse(c)
		assert.ErrorIsf(t, err, ErrMalformed, "input %q", c)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00:00:00:00:00", "aa:bb:cc:dd:ee:ff", "01:23:45:67:89:ab"} {
		addr, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, String(addr))
	}
}

func TestFromPacketHead(t *testing.T) {
	head := []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x11, 0x22}
	addr, err := FromPacketHead(head)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0000FFEEDDCCBBAA), addr)
}

func TestFromPacketHeadShort(t *testing.T) {
	_, err := FromPacketHead([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrShortPacket)
}

func TestNextIncrementsLowByteFirst(t *testing.T) {
	base, err := Parse("00:00:00:00:00:00")
	require.NoError(t, err)

	addr := base
	for i, want := range []string{
		"00:00:00:00:00:01",
		"00:00:00:00:00:02",
		"00:00:00:00:00:03",
	} {
		addr = Next(addr)
		assert.Equalf(t, want, String(addr), "increment #%d", i+1)
	}
}

func TestNextCarries(t *testing.T) {
	base, err := Parse("00:00:00:00:00:ff")
	require.NoError(t, err)
	assert.Equal(t, "00:00:00:00:01:00", String(Next(base)))
}
