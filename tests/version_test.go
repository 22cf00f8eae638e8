package tests

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/hayswap/token-contract/common"
	"github.com/stretchr/testify/require"
)

// readVersionFile returns major, minor and patch numbers from VERSION file.
func readVersionFile(t *testing.T) [3]int {
	data, err := os.ReadFile("../VERSION")
	require.NoError(t, err)

	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(string(data)), "v"), ".")
	require.Len(t, parts, 3, "VERSION must be vMAJOR.MINOR.PATCH")

	var res [3]int
	for i := range parts {
		res[i], err = strconv.Atoi(parts[i])
		require.NoError(t, err)
		require.GreaterOrEqual(t, res[i], 0)
		require.Less(t, res[i], 1_000, "version component must fit into three digits")
	}
	return res
}

func encodeVersion(v [3]int) int {
	return v[0]*1_000_000 + v[1]*1_000 + v[2]
}

func TestVersion(t *testing.T) {
	v := readVersionFile(t)

	require.Equal(t, encodeVersion(v), common.Version,
		"version from common package is different from the one in VERSION file")

	// Updates are accepted from the previous minor release of the same major
	// line only, so data migration never skips a release.
	prev := [3]int{common.PrevVersion / 1_000_000, common.PrevVersion / 1_000 % 1_000, common.PrevVersion % 1_000}
	require.Less(t, common.PrevVersion, common.Version)
	require.Equal(t, v[0], prev[0], "previous version must share the major number")
	require.Equal(t, v[1]-1, prev[1], "previous version must be the preceding minor release")
}
