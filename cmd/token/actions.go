package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"

	"github.com/hayswap/token-contract/deploy"
	"github.com/hayswap/token-contract/rpc/token"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// maxExpandedHolders limits number of holders read from RPC servers without
// session support.
const maxExpandedHolders = 10000

// readerCommand is a common part of read-only commands.
type readerCommand struct {
	rpc      *rpcclient.Client
	token    *token.ContractReader
	decimals int
}

func newReaderCommand(c *cli.Context) (*readerCommand, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}

	h, err := tokenHash(cfg)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}

	rpc, err := dialRPC(context.Background(), cfg)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}

	r := token.NewReader(invoker.New(rpc, nil), h)

	decimals, err := r.Decimals()
	if err != nil {
		rpc.Close()
		return nil, cli.NewExitError(fmt.Errorf("get decimals: %w", err), 1)
	}

	return &readerCommand{rpc: rpc, token: r, decimals: int(decimals.Int64())}, nil
}

func (x *readerCommand) format(v *big.Int) string {
	return fixedn.ToString(v, x.decimals)
}

func infoAction(c *cli.Context) error {
	x, err := newReaderCommand(c)
	if err != nil {
		return err
	}
	defer x.rpc.Close()

	name, err := x.token.Name()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get name: %w", err), 1)
	}
	symbol, err := x.token.Symbol()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get symbol: %w", err), 1)
	}
	supply, err := x.token.TotalSupply()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get total supply: %w", err), 1)
	}
	v, err := x.token.Version()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get version: %w", err), 1)
	}

	fmt.Fprintf(c.App.Writer, "Name:         %s\n", token.TrimBytes32(name))
	fmt.Fprintf(c.App.Writer, "Symbol:       %s\n", token.TrimBytes32(symbol))
	fmt.Fprintf(c.App.Writer, "Decimals:     %d\n", x.decimals)
	fmt.Fprintf(c.App.Writer, "Total supply: %s\n", x.format(supply))
	fmt.Fprintf(c.App.Writer, "Version:      %s\n", v)

	return nil
}

func balanceAction(c *cli.Context) error {
	if !c.Args().Present() {
		return cli.NewExitError("missing account address", 1)
	}

	x, err := newReaderCommand(c)
	if err != nil {
		return err
	}
	defer x.rpc.Close()

	for _, arg := range c.Args() {
		h, err := parseHash160(arg)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		b, err := x.token.BalanceOf(h)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("get balance of %s: %w", arg, err), 1)
		}

		fmt.Fprintf(c.App.Writer, "%s: %s\n", address.Uint160ToString(h), x.format(b))
	}

	return nil
}

func holdersAction(c *cli.Context) error {
	x, err := newReaderCommand(c)
	if err != nil {
		return err
	}
	defer x.rpc.Close()

	holders, err := x.token.Holders(maxExpandedHolders)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("list holders: %w", err), 1)
	}

	for _, h := range holders {
		fmt.Fprintf(c.App.Writer, "%s: %s\n", address.Uint160ToString(h.Account), x.format(h.Balance))
	}

	return nil
}

func auditAction(c *cli.Context) error {
	x, err := newReaderCommand(c)
	if err != nil {
		return err
	}
	defer x.rpc.Close()

	return runAudit(c.App.Writer, x.token, x.decimals)
}

// supplyReader is a part of token.ContractReader needed for audit.
type supplyReader interface {
	Holders(maxItems int) ([]token.Holder, error)
	TotalSupply() (*big.Int, error)
}

// runAudit prints audit result into w. Supply mismatch is reported with exit
// code 2, any other failure with 1.
func runAudit(w io.Writer, r supplyReader, decimals int) error {
	holders, err := r.Holders(maxExpandedHolders)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("list holders: %w", err), 1)
	}

	supply, err := r.TotalSupply()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get total supply: %w", err), 1)
	}

	sum, err := checkSupply(holders, supply)
	if err != nil {
		return cli.NewExitError(err, 2)
	}

	fmt.Fprintf(w, "%d holders own %s tokens, total supply matches\n", len(holders), fixedn.ToString(sum, decimals))

	return nil
}

// checkSupply returns sum of holder balances or an error if it differs from
// the total supply.
func checkSupply(holders []token.Holder, supply *big.Int) (*big.Int, error) {
	sum := new(big.Int)
	for i := range holders {
		if holders[i].Balance.Sign() <= 0 {
			return nil, fmt.Errorf("holder %s has non-positive balance %s",
				address.Uint160ToString(holders[i].Account), holders[i].Balance)
		}
		sum.Add(sum, holders[i].Balance)
	}

	if sum.Cmp(supply) != 0 {
		return sum, fmt.Errorf("sum of holder balances %s differs from total supply %s", sum, supply)
	}

	return sum, nil
}

func transferAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	h, err := tokenHash(cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	to, err := parseHash160(c.String("to"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid receiver: %w", err), 1)
	}

	acc, err := openAccount(cfg, c.String(passwordFlag))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rpc, err := dialRPC(ctx, cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer rpc.Close()

	act, err := actor.NewSimple(rpc, acc)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("init actor: %w", err), 1)
	}

	t := token.New(act, h)

	decimals, err := t.Decimals()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get decimals: %w", err), 1)
	}

	amount, err := fixedn.FromString(c.String("amount"), int(decimals.Int64()))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid amount: %w", err), 1)
	}

	txHash, vub, err := t.Transfer(acc.ScriptHash(), to, amount)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("send transfer: %w", err), 1)
	}

	err = awaitHalt(ctx, act, txHash, vub)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("transfer: %w", err), 1)
	}

	fmt.Fprintf(c.App.Writer, "Transferred in %s\n", txHash.StringLE())

	return nil
}

// txWaiter is a part of actor.Actor awaiting transaction acceptance.
type txWaiter interface {
	WaitAny(ctx context.Context, vub uint32, hashes ...util.Uint256) (*state.AppExecResult, error)
}

// awaitHalt waits for the transaction to be accepted with HALT state or until
// the context is done.
func awaitHalt(ctx context.Context, w txWaiter, txHash util.Uint256, vub uint32) error {
	res, err := w.WaitAny(ctx, vub, txHash)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}
	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}
	return nil
}

func deployAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	log, err := newLogger(c)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("init logger: %w", err), 1)
	}
	defer func() { _ = log.Sync() }()

	nefBytes, err := os.ReadFile(c.String("nef"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("read NEF: %w", err), 1)
	}

	nefFile, err := nef.FileFromBytes(nefBytes)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("decode NEF: %w", err), 1)
	}

	manifestBytes, err := os.ReadFile(c.String("manifest"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("read manifest: %w", err), 1)
	}

	var m manifest.Manifest
	err = json.Unmarshal(manifestBytes, &m)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("decode manifest: %w", err), 1)
	}

	decimals := c.Int("decimals")

	supply, err := fixedn.FromString(c.String("supply"), decimals)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid supply: %w", err), 1)
	}

	acc, err := openAccount(cfg, c.String(passwordFlag))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	owner := acc.ScriptHash()
	if v := c.String("owner"); v != "" {
		owner, err = parseHash160(v)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid owner: %w", err), 1)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rpc, err := dialRPC(ctx, cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer rpc.Close()

	addr, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:       log,
		Blockchain:   rpc,
		LocalAccount: acc,
		Token: deploy.TokenPrm{
			Common: deploy.CommonDeployPrm{
				NEF:      nefFile,
				Manifest: m,
			},
			Name:        c.String("name"),
			Symbol:      c.String("symbol"),
			Decimals:    int64(decimals),
			TotalSupply: supply,
			Owner:       owner,
		},
	})
	if err != nil {
		return cli.NewExitError(fmt.Errorf("deploy token: %w", err), 1)
	}

	log.Info("token is ready", zap.String("address", address.Uint160ToString(addr)))
	fmt.Fprintf(c.App.Writer, "%s\n", addr.StringLE())

	return nil
}
