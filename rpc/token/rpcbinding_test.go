package token

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err      error
	res      *result.Invoke
	expanded *result.Invoke
	pages    [][]stackitem.Item

	terminated bool
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	return t.expanded, t.err
}

func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	if len(t.pages) == 0 {
		return nil, nil
	}
	page := t.pages[0]
	t.pages = t.pages[1:]
	return page, nil
}

func (t *testInv) TerminateSession(uuid.UUID) error {
	t.terminated = true
	return nil
}

type testAct struct {
	testInv

	script []byte
	method string
}

func (a *testAct) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	a.method = method
	return transaction.New(nil, 0), nil
}

func (a *testAct) MakeRun(script []byte) (*transaction.Transaction, error) {
	a.script = script
	return transaction.New(script, 0), nil
}

func (a *testAct) MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error) {
	a.method = method
	return transaction.New(nil, 0), nil
}

func (a *testAct) MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error) {
	a.script = script
	return transaction.New(script, 0), nil
}

func (a *testAct) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	a.method = method
	return util.Uint256{1}, 10, nil
}

func (a *testAct) SendRun(script []byte) (util.Uint256, uint32, error) {
	a.script = script
	return util.Uint256{2}, 20, nil
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{
		State: "HALT",
		Stack: items,
	}
}

func holderItem(h util.Uint160, balance int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(h.BytesBE()),
		stackitem.NewByteArray(bigint.ToBytes(big.NewInt(balance))),
	})
}

func TestReaderErrors(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.Name()
	require.Error(t, err)
	_, err = r.TotalSupply()
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{State: "FAULT", FaultException: "invalid account"}
	_, err = r.BalanceOf(util.Uint160{})
	require.Error(t, err)

	ti.res = halt(stackitem.Make([]stackitem.Item{}))
	_, err = r.Decimals()
	require.Error(t, err)
}

func TestReader(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	name := append([]byte("HAY Token"), make([]byte, 23)...)
	ti.res = halt(stackitem.NewByteArray(name))
	res, err := r.Name()
	require.NoError(t, err)
	require.Equal(t, name, res)
	require.Equal(t, "HAY Token", TrimBytes32(res))

	supply, _ := new(big.Int).SetString("100000000000000000000000", 10)
	ti.res = halt(stackitem.NewBigInteger(supply))
	v, err := r.TotalSupply()
	require.NoError(t, err)
	require.Equal(t, 0, supply.Cmp(v))

	ti.res = halt(stackitem.Make(18))
	v, err = r.Decimals()
	require.NoError(t, err)
	require.Equal(t, int64(18), v.Int64())
}

func TestHolders(t *testing.T) {
	a, b := util.Uint160{1}, util.Uint160{2}

	t.Run("expanded by server", func(t *testing.T) {
		ti := &testInv{
			res: halt(stackitem.NewInterop(result.Iterator{
				Values: []stackitem.Item{holderItem(a, 10), holderItem(b, 5)},
			})),
		}
		hs, err := NewReader(ti, util.Uint160{}).Holders(10)
		require.NoError(t, err)
		require.Equal(t, []Holder{{a, big.NewInt(10)}, {b, big.NewInt(5)}}, hs)
		require.False(t, ti.terminated)
	})
	t.Run("session", func(t *testing.T) {
		id := uuid.New()
		ti := &testInv{
			res: &result.Invoke{
				State:   "HALT",
				Stack:   []stackitem.Item{stackitem.NewInterop(result.Iterator{ID: &id})},
				Session: uuid.New(),
			},
			pages: [][]stackitem.Item{{holderItem(a, 7)}},
		}
		hs, err := NewReader(ti, util.Uint160{}).Holders(10)
		require.NoError(t, err)
		require.Equal(t, []Holder{{a, big.NewInt(7)}}, hs)
		require.True(t, ti.terminated)
	})
	t.Run("no session", func(t *testing.T) {
		id := uuid.New()
		ti := &testInv{
			res:      halt(stackitem.NewInterop(result.Iterator{ID: &id})),
			expanded: halt(stackitem.Make([]stackitem.Item{holderItem(b, 3)})),
		}
		hs, err := NewReader(ti, util.Uint160{}).Holders(10)
		require.NoError(t, err)
		require.Equal(t, []Holder{{b, big.NewInt(3)}}, hs)
	})
	t.Run("truncated by server", func(t *testing.T) {
		c := util.Uint160{3}
		ti := &testInv{
			res: halt(stackitem.NewInterop(result.Iterator{
				Values:    []stackitem.Item{holderItem(a, 10)},
				Truncated: true,
			})),
			expanded: halt(stackitem.Make([]stackitem.Item{
				holderItem(a, 10), holderItem(b, 5), holderItem(c, 1),
			})),
		}
		hs, err := NewReader(ti, util.Uint160{}).Holders(10)
		require.NoError(t, err)
		require.Equal(t, []Holder{{a, big.NewInt(10)}, {b, big.NewInt(5)}, {c, big.NewInt(1)}}, hs)
	})
	t.Run("expanded limit reached", func(t *testing.T) {
		id := uuid.New()
		ti := &testInv{
			res:      halt(stackitem.NewInterop(result.Iterator{ID: &id})),
			expanded: halt(stackitem.Make([]stackitem.Item{holderItem(a, 1), holderItem(b, 2)})),
		}
		_, err := NewReader(ti, util.Uint160{}).Holders(2)
		require.ErrorIs(t, err, ErrTooManyHolders)

		ti.res = halt(stackitem.NewInterop(result.Iterator{
			Values:    []stackitem.Item{holderItem(a, 1)},
			Truncated: true,
		}))
		_, err = NewReader(ti, util.Uint160{}).Holders(2)
		require.ErrorIs(t, err, ErrTooManyHolders)
	})
	t.Run("bad item", func(t *testing.T) {
		ti := &testInv{
			res: halt(stackitem.NewInterop(result.Iterator{
				Values: []stackitem.Item{stackitem.Make(1)},
			})),
		}
		_, err := NewReader(ti, util.Uint160{}).Holders(10)
		require.Error(t, err)
	})
}

func TestContractCalls(t *testing.T) {
	hash := util.Uint160{9, 8, 7}
	from, to := util.Uint160{1}, util.Uint160{2}
	ta := new(testAct)
	c := New(ta, hash)

	h, vub, err := c.Transfer(from, to, big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, util.Uint256{2}, h)
	require.Equal(t, uint32(20), vub)

	expected, err := smartcontract.CreateCallWithAssertScript(hash, "transfer", from, to, big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, expected, ta.script)

	tx, err := c.ApproveUnsigned(from, to, big.NewInt(1))
	require.NoError(t, err)
	expected, err = smartcontract.CreateCallWithAssertScript(hash, "approve", from, to, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, expected, tx.Script)

	_, err = c.TransferFromTransaction(to, from, to, big.NewInt(1))
	require.NoError(t, err)
	expected, err = smartcontract.CreateCallWithAssertScript(hash, "transferFrom", to, from, to, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, expected, ta.script)

	_, _, err = c.Update(nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "update", ta.method)
}

func TestEvents(t *testing.T) {
	owner, spender := util.Uint160{1, 2}, util.Uint160{3, 4}

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "Transfer",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Null{},
						stackitem.NewByteArray(owner.BytesBE()),
						stackitem.Make(100),
					}),
				},
				{
					Name: "Approval",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray(owner.BytesBE()),
						stackitem.NewByteArray(spender.BytesBE()),
						stackitem.Make(7),
					}),
				},
			},
		}},
	}

	tes, err := TransferEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, tes, 1)
	require.Equal(t, util.Uint160{}, tes[0].From)
	require.Equal(t, owner, tes[0].To)
	require.Equal(t, int64(100), tes[0].Amount.Int64())

	aes, err := ApprovalEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, aes, 1)
	require.Equal(t, owner, aes[0].Owner)
	require.Equal(t, spender, aes[0].Spender)

	_, err = TransferEventsFromApplicationLog(nil)
	require.Error(t, err)

	bad := stackitem.NewArray([]stackitem.Item{stackitem.Null{}})
	require.Error(t, new(TransferEvent).FromStackItem(bad))
	require.Error(t, new(ApprovalEvent).FromStackItem(nil))
}
