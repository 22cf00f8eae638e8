package token

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// DefaultIteratorBatch is the number of holders fetched per iterator
// traversal request.
const DefaultIteratorBatch = 100

// Holder is a single (account, balance) pair returned by `accounts`.
type Holder struct {
	Account util.Uint160
	Balance *big.Int
}

// FromStackItem decodes Holder from the key-value structure produced by the
// contract storage iterator.
func (h *Holder) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not a struct")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	h.Account, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	h.Balance, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Balance: %w", err)
	}
	return nil
}

// TrimBytes32 converts fixed-width contract string back to a regular one
// dropping trailing zero bytes.
func TrimBytes32(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}

// ErrTooManyHolders is returned by Holders when the iterator expanded in the
// VM reaches the requested limit, so the list may be incomplete.
var ErrTooManyHolders = errors.New("too many holders for expanded iterator")

// Holders returns all token holders. Session iterators are used when the RPC
// server supports them, otherwise the iterator is expanded in the VM. In the
// latter case ErrTooManyHolders is returned if there are maxItems holders or
// more.
func (c *ContractReader) Holders(maxItems int) ([]Holder, error) {
	sess, iter, err := c.Accounts()
	if errors.Is(err, unwrap.ErrNoSessionID) {
		return c.expandedHolders(maxItems)
	}
	if err != nil {
		return nil, err
	}

	// Iterator was expanded by the server.
	if iter.ID == nil {
		if iter.Truncated {
			return c.expandedHolders(maxItems)
		}
		return itemsToHolders(iter.Values)
	}

	defer func() {
		_ = c.invoker.TerminateSession(sess)
	}()

	var res []Holder
	for {
		items, err := c.invoker.TraverseIterator(sess, &iter, DefaultIteratorBatch)
		if err != nil {
			return nil, fmt.Errorf("traverse accounts: %w", err)
		}

		hs, err := itemsToHolders(items)
		if err != nil {
			return nil, err
		}
		res = append(res, hs...)

		if len(items) < DefaultIteratorBatch {
			return res, nil
		}
	}
}

func (c *ContractReader) expandedHolders(maxItems int) ([]Holder, error) {
	items, err := c.AccountsExpanded(maxItems)
	if err != nil {
		return nil, err
	}
	if len(items) >= maxItems {
		return nil, fmt.Errorf("%w: limit %d", ErrTooManyHolders, maxItems)
	}
	return itemsToHolders(items)
}

func itemsToHolders(items []stackitem.Item) ([]Holder, error) {
	res := make([]Holder, len(items))
	for i := range items {
		if err := res[i].FromStackItem(items[i]); err != nil {
			return nil, fmt.Errorf("holder #%d: %w", i, err)
		}
	}
	return res, nil
}
