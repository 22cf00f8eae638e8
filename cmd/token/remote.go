package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hayswap/token-contract/internal/config"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// loadConfig reads configuration file referenced by global flag and applies
// flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()

	if p := c.GlobalString(configFlag); p != "" {
		var err error
		cfg, err = config.Load(p)
		if err != nil {
			return cfg, err
		}
	}

	if v := c.GlobalString(rpcFlag); v != "" {
		cfg.RPCEndpoint = v
	}
	if v := c.GlobalString(tokenFlag); v != "" {
		cfg.Token = v
	}
	if v := c.String(walletFlag); v != "" {
		cfg.Wallet = v
	}
	if v := c.String(accountFlag); v != "" {
		cfg.Account = v
	}

	return cfg, cfg.Validate()
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.GlobalBool(debugFlag) {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// dialRPC opens connection to the Neo RPC server. Connection and all requests
// are done within configured timeout.
func dialRPC(ctx context.Context, cfg config.Config) (*rpcclient.Client, error) {
	c, err := rpcclient.New(ctx, cfg.RPCEndpoint, rpcclient.Options{
		DialTimeout:    cfg.DialTimeout,
		RequestTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return c, nil
}

// parseHash160 accepts both Neo address and little-endian hex hash.
func parseHash160(s string) (util.Uint160, error) {
	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return h, fmt.Errorf("%q is neither address nor hash", s)
	}
	return h, nil
}

func tokenHash(cfg config.Config) (util.Uint160, error) {
	if cfg.Token == "" {
		return util.Uint160{}, errors.New("missing token address")
	}
	return parseHash160(cfg.Token)
}

// openAccount returns decrypted account from the configured wallet.
func openAccount(cfg config.Config, password string) (*wallet.Account, error) {
	if cfg.Wallet == "" {
		return nil, errors.New("missing wallet")
	}

	w, err := wallet.NewWalletFromFile(cfg.Wallet)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	var h util.Uint160
	if cfg.Account != "" {
		h, err = address.StringToUint160(cfg.Account)
		if err != nil {
			return nil, fmt.Errorf("invalid account address: %w", err)
		}
	} else {
		h = w.GetChangeAddress()
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s not found in wallet", address.Uint160ToString(h))
	}

	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account: %w", err)
	}

	return acc, nil
}
