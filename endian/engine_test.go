package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	little := GetLittleEndianEngine()
	big := GetBigEndianEngine()

	require.Equal(t, []byte{0x02, 0x01}, little.AppendUint16(nil, 0x0102))
	require.Equal(t, []byte{0x01, 0x02}, big.AppendUint16(nil, 0x0102))

	require.False(t, IsBigEndian(little))
	require.True(t, IsBigEndian(big))
}

func TestFlags_RoundTrip(t *testing.T) {
	require.Equal(t, uint8(0), Flags(GetLittleEndianEngine()))
	require.Equal(t, FlagBigEndian, Flags(GetBigEndianEngine()))

	require.Equal(t, EndianEngine(binary.LittleEndian), FromFlags(0))
	require.Equal(t, EndianEngine(binary.BigEndian), FromFlags(FlagBigEndian))
	require.Equal(t, EndianEngine(binary.BigEndian), FromFlags(0xff))
}
