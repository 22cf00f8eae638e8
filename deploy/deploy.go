package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/hayswap/token-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// MaxDecimals is the maximum precision accepted by the token contract.
const MaxDecimals = 255

// Blockchain groups services provided by particular Neo blockchain network
// that are required for token deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// TokenPrm groups deployment parameters of the token contract.
type TokenPrm struct {
	Common CommonDeployPrm

	// Token name, at most 32 bytes. Also used as contract manifest name, so
	// a single account can deploy several tokens.
	Name string
	// Token ticker symbol, at most 32 bytes.
	Symbol string
	// Balance precision.
	Decimals int64
	// Amount of tokens in minimal units credited to Owner on deployment.
	TotalSupply *big.Int
	// Initial holder of the whole supply.
	Owner util.Uint160
}

// Prm groups all parameters of the token deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy the token to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	Token TokenPrm
}

var (
	errInvalidDecimals = errors.New("invalid decimals")
	errInvalidSupply   = errors.New("negative total supply")
	errMissingOwner    = errors.New("missing owner")
	errMissingName     = errors.New("missing name")
)

// Deploy deploys token contract described by Prm.Token to the given
// blockchain and returns its address. When contract with the same name is
// already deployed by the local account, Deploy returns its address without
// sending any transaction.
//
// Deploy waits for the deployment transaction to be accepted or until the
// context is done.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	err := validateTokenPrm(prm.Token)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid token parameters: %w", err)
	}

	m := prm.Token.Common.Manifest
	m.Name = prm.Token.Name

	l := prm.Logger.With(zap.String("token", prm.Token.Name))
	addr := ExpectedAddress(prm.LocalAccount.ScriptHash(), prm.Token.Common.NEF, m.Name)

	l.Info("checking token contract presence on the chain...", zap.Stringer("address", addr))

	st, err := prm.Blockchain.GetContractStateByHash(addr)
	if err == nil {
		if st.NEF.Checksum != prm.Token.Common.NEF.Checksum {
			l.Warn("on-chain token contract differs from the local one",
				zap.Uint32("local", prm.Token.Common.NEF.Checksum), zap.Uint32("on-chain", st.NEF.Checksum))
		}
		l.Info("token contract is already deployed", zap.Stringer("address", addr))
		return addr, nil
	}
	if !isErrContractNotFound(err) {
		return util.Uint160{}, fmt.Errorf("get state of the token contract by address %s: %w", addr, err)
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from single local account: %w", err)
	}

	l.Info("sending token contract deployment transaction...")

	txHash, vub, err := management.New(act).Deploy(&prm.Token.Common.NEF, &m, DeployData(prm.Token))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send deployment transaction: %w", err)
	}

	l.Info("deployment transaction sent, waiting for acceptance...",
		zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	res, err := act.WaitAny(ctx, vub, txHash)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deployment transaction %s: %w", txHash.StringLE(), err)
	}
	if res.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deployment transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}

	l.Info("token contract successfully deployed", zap.Stringer("address", addr))

	return addr, nil
}

// ExpectedAddress returns address of the contract deployed by sender with the
// given NEF and manifest name.
func ExpectedAddress(sender util.Uint160, n nef.File, name string) util.Uint160 {
	return state.CreateContractHash(sender, n.Checksum, name)
}

// DeployData returns `_deploy` argument of the token contract.
func DeployData(p TokenPrm) []any {
	return []any{p.Name, p.Symbol, p.Decimals, p.TotalSupply, p.Owner}
}

func validateTokenPrm(p TokenPrm) error {
	switch {
	case p.Name == "":
		return errMissingName
	case len(p.Name) > common.Bytes32Len:
		return fmt.Errorf("name: %s", common.ErrBytes32Overflow)
	case len(p.Symbol) > common.Bytes32Len:
		return fmt.Errorf("symbol: %s", common.ErrBytes32Overflow)
	case p.Decimals < 0 || p.Decimals > MaxDecimals:
		return errInvalidDecimals
	case p.TotalSupply == nil || p.TotalSupply.Sign() < 0:
		return errInvalidSupply
	case p.Owner.Equals(util.Uint160{}):
		return errMissingOwner
	}
	return nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
