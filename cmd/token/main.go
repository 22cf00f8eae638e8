package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

// version is set on build.
var version = "dev"

const (
	configFlag   = "config"
	rpcFlag      = "rpc"
	tokenFlag    = "token"
	walletFlag   = "wallet"
	accountFlag  = "account"
	passwordFlag = "password"
	debugFlag    = "debug"
)

func main() {
	app := cli.NewApp()
	app.Name = "token"
	app.Usage = "inspect and operate the token contract"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: configFlag + ", c", Usage: "path to YAML configuration file"},
		cli.StringFlag{Name: rpcFlag + ", r", Usage: "Neo RPC endpoint, overrides configuration"},
		cli.StringFlag{Name: tokenFlag + ", t", Usage: "token contract address or LE hash, overrides configuration"},
		cli.BoolFlag{Name: debugFlag, Usage: "enable debug logging"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "print token metadata",
			Action: infoAction,
		},
		{
			Name:      "balance",
			Usage:     "print balances of the given accounts",
			ArgsUsage: "<address> [<address>...]",
			Action:    balanceAction,
		},
		{
			Name:   "holders",
			Usage:  "list all token holders",
			Action: holdersAction,
		},
		{
			Name:   "audit",
			Usage:  "check that holder balances sum up to the total supply",
			Action: auditAction,
		},
		{
			Name:  "transfer",
			Usage: "transfer tokens from the wallet account",
			Flags: append(walletFlags(),
				cli.StringFlag{Name: "to", Usage: "receiver address"},
				cli.StringFlag{Name: "amount", Usage: "amount of tokens, fixed point (e.g. 1.5)"},
			),
			Action: transferAction,
		},
		{
			Name:  "deploy",
			Usage: "deploy the token contract",
			Flags: append(walletFlags(),
				cli.StringFlag{Name: "nef", Usage: "path to compiled contract"},
				cli.StringFlag{Name: "manifest", Usage: "path to contract manifest"},
				cli.StringFlag{Name: "name", Usage: "token name"},
				cli.StringFlag{Name: "symbol", Usage: "token symbol"},
				cli.IntFlag{Name: "decimals", Value: 18, Usage: "token precision"},
				cli.StringFlag{Name: "supply", Usage: "total supply, fixed point"},
				cli.StringFlag{Name: "owner", Usage: "initial holder address, wallet account by default"},
			),
			Action: deployAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func walletFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: walletFlag + ", w", Usage: "path to NEP-6 wallet, overrides configuration"},
		cli.StringFlag{Name: accountFlag + ", a", Usage: "wallet account address, overrides configuration"},
		cli.StringFlag{Name: passwordFlag, EnvVar: "TOKEN_WALLET_PASSWORD", Usage: "wallet account password"},
	}
}
