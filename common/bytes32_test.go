package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPadBytes32(t *testing.T) {
	for _, s := range []string{"", "HAY", "HAY Token", strings.Repeat("x", Bytes32Len)} {
		res := PadBytes32(s)
		require.Len(t, res, Bytes32Len, s)
		require.Equal(t, []byte(s), res[:len(s)], s)
		require.Equal(t, make([]byte, Bytes32Len-len(s)), res[len(s):], s)
	}

	require.Equal(t, bytes.TrimRight(PadBytes32("HAY Token"), "\x00"), []byte("HAY Token"))

	require.PanicsWithValue(t, ErrBytes32Overflow, func() {
		PadBytes32(strings.Repeat("x", Bytes32Len+1))
	})
}
