package token

import (
	"github.com/hayswap/token-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	nameKey     = 'n'
	symbolKey   = 's'
	decimalsKey = 'd'
	supplyKey   = 't'

	balancePrefix   = 'b'
	allowancePrefix = 'a'

	maxDecimals = 255
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)

		common.CheckVersion(version)

		return
	}

	// [name, symbol, decimals, totalSupply, owner]
	args := data.([]any)
	if len(args) != 5 {
		panic("invalid deploy data")
	}

	var (
		name     = args[0].(string)
		symbol   = args[1].(string)
		decimals = args[2].(int)
		supply   = args[3].(int)
		owner    = args[4].(interop.Hash160)
	)

	if decimals < 0 || decimals > maxDecimals {
		panic("invalid decimals")
	}

	if supply < 0 {
		panic("negative total supply")
	}

	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}

	ctx := storage.GetContext()

	storage.Put(ctx, nameKey, common.PadBytes32(name))
	storage.Put(ctx, symbolKey, common.PadBytes32(symbol))
	storage.Put(ctx, decimalsKey, decimals)
	storage.Put(ctx, supplyKey, supply)

	putBalance(ctx, owner, supply)

	var minter interop.Hash160
	runtime.Notify("Transfer", minter, owner, supply)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic(common.ErrUpdateAccessDenied)
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Name returns token name right-padded with zero bytes to 32 bytes.
func Name() []byte {
	return storage.Get(storage.GetReadOnlyContext(), nameKey).([]byte)
}

// Symbol returns token ticker symbol right-padded with zero bytes to 32
// bytes.
func Symbol() []byte {
	return storage.Get(storage.GetReadOnlyContext(), symbolKey).([]byte)
}

// Decimals returns precision of token balances.
func Decimals() int {
	return storage.Get(storage.GetReadOnlyContext(), decimalsKey).(int)
}

// TotalSupply returns total amount of tokens. It never changes after
// deployment.
func TotalSupply() int {
	return storage.Get(storage.GetReadOnlyContext(), supplyKey).(int)
}

// BalanceOf returns token balance of the specified account.
func BalanceOf(account interop.Hash160) int {
	if len(account) != interop.Hash160Len {
		panic("invalid account")
	}

	return getBalance(storage.GetReadOnlyContext(), account)
}

// Allowance returns amount of tokens spender is still allowed to withdraw
// from owner.
func Allowance(owner, spender interop.Hash160) int {
	if len(owner) != interop.Hash160Len || len(spender) != interop.Hash160Len {
		panic("invalid account")
	}

	return getAllowance(storage.GetReadOnlyContext(), owner, spender)
}

// Accounts returns iterator over all accounts with non-zero balance. Each
// item is a structure of account script hash and its balance.
func Accounts() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(), []byte{balancePrefix}, storage.RemovePrefix)
}

// Transfer moves amount of tokens from one account to another. Transaction
// must be witnessed by the sender or the sender must be the calling contract.
//
// Transfer returns false without any state change if witness check fails or
// sender doesn't have enough tokens. It produces Transfer notification on
// success.
func Transfer(from, to interop.Hash160, amount int) bool {
	if amount < 0 {
		panic("negative amount")
	}

	if len(to) != interop.Hash160Len {
		panic("invalid receiver")
	}

	if !common.IsUsableAddress(from) {
		runtime.Log("bad sender")
		return false
	}

	return move(storage.GetContext(), from, to, amount)
}

// Approve sets amount of tokens spender is allowed to withdraw from owner
// with TransferFrom. Previous allowance is replaced. Transaction must be
// witnessed by the owner.
//
// It produces Approval notification on success.
func Approve(owner, spender interop.Hash160, amount int) bool {
	if amount < 0 {
		panic("negative amount")
	}

	if len(spender) != interop.Hash160Len {
		panic("invalid spender")
	}

	if !common.IsUsableAddress(owner) {
		runtime.Log("bad owner")
		return false
	}

	putAllowance(storage.GetContext(), owner, spender, amount)
	runtime.Notify("Approval", owner, spender, amount)

	return true
}

// TransferFrom moves amount of tokens from one account to another on behalf
// of spender within the allowance set by the sender. Transaction must be
// witnessed by the spender.
//
// TransferFrom returns false without any state change if witness check fails,
// allowance is exceeded or sender doesn't have enough tokens. It produces
// Transfer notification on success.
func TransferFrom(spender, from, to interop.Hash160, amount int) bool {
	if amount < 0 {
		panic("negative amount")
	}

	if len(from) != interop.Hash160Len {
		panic("invalid sender")
	}

	if len(to) != interop.Hash160Len {
		panic("invalid receiver")
	}

	if !common.IsUsableAddress(spender) {
		runtime.Log("bad spender")
		return false
	}

	ctx := storage.GetContext()

	allowed := getAllowance(ctx, from, spender)
	if allowed < amount {
		runtime.Log("allowance exceeded")
		return false
	}

	if !move(ctx, from, to, amount) {
		return false
	}

	putAllowance(ctx, from, spender, allowed-amount)

	return true
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func move(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	fromBalance := getBalance(ctx, from)
	if fromBalance < amount {
		runtime.Log("not enough assets")
		return false
	}

	putBalance(ctx, from, fromBalance-amount)
	// read after write, so self-transfers keep the balance
	putBalance(ctx, to, getBalance(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)

	return true
}

func getBalance(ctx storage.Context, holder interop.Hash160) int {
	return common.GetInt(ctx, append([]byte{balancePrefix}, holder...))
}

func putBalance(ctx storage.Context, holder interop.Hash160, amount int) {
	common.PutInt(ctx, append([]byte{balancePrefix}, holder...), amount)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{allowancePrefix}, owner...), spender...)
}

func getAllowance(ctx storage.Context, owner, spender interop.Hash160) int {
	return common.GetInt(ctx, allowanceKey(owner, spender))
}

func putAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	common.PutInt(ctx, allowanceKey(owner, spender), amount)
}
