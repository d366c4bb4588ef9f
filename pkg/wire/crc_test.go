package wire

import (
	"testing"

	"github.com/sigurn/crc8"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	testCases := []struct {
		in     string
		expect byte
	}{
		{"", 0},
		{"throttle(100);", 0x1e},
		{"throttle(0);", 0x5b},
		{"throttle(5);", 0x6e},
		{"stop();", 0x5a},
		{"123456789", 0xa1},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.expect, Checksum([]byte(tc.in)))
		})
	}
}

func TestChecksumMatchesMaxim(t *testing.T) {
	table := crc8.MakeTable(crc8.CRC8_MAXIM)
	buf := make([]byte, 256)
	for n := range buf {
		buf[n] = byte(n)
		require.Equalf(t, crc8.Checksum(buf[:n+1], table), Checksum(buf[:n+1]), "len %d", n+1)
	}
}
