package tests

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// accountItems returns all items of the `accounts` iterator.
func accountItems(t testing.TB, c *neotest.ContractInvoker) []stackitem.Item {
	s, err := c.TestInvoke(t, "accounts")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok, "accounts must return an iterator")

	var res []stackitem.Item
	for iter.Next() {
		res = append(res, iter.Value())
	}
	return res
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// testInvokeSingle calls contract method without persisting the state and
// returns the only item of the resulting stack.
func testInvokeSingle(t testing.TB, c *neotest.ContractInvoker, method string, args ...any) stackitem.Item {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len(), "method %s", method)
	return s.Pop().Item()
}

// checkBytes checks that method returns byte string equal to expected. Both
// ByteString and Buffer results are accepted.
func checkBytes(t testing.TB, c *neotest.ContractInvoker, expected []byte, method string, args ...any) {
	b, err := testInvokeSingle(t, c, method, args...).TryBytes()
	require.NoError(t, err)
	require.Equal(t, expected, b, "method %s", method)
}

// checkInt checks that method returns integer equal to expected.
func checkInt(t testing.TB, c *neotest.ContractInvoker, expected *big.Int, method string, args ...any) {
	n, err := testInvokeSingle(t, c, method, args...).TryInteger()
	require.NoError(t, err)
	require.Equal(t, expected.String(), n.String(), "method %s", method)
}

// amountOf returns n * 10^decimals.
func amountOf(n int64, decimals int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(decimals), nil))
}
