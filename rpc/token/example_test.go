package token_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hayswap/token-contract/rpc/token"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
)

// Print metadata and holders of the token deployed at the given address.
func ExampleContractReader_Holders() {
	const (
		rpcEndpoint  = "http://localhost:30333"
		tokenAddress = "NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP"
	)

	c, err := rpcclient.New(context.Background(), rpcEndpoint, rpcclient.Options{})
	if err != nil {
		log.Fatal(err)
	}

	err = c.Init()
	if err != nil {
		log.Fatal(err)
	}

	h, err := address.StringToUint160(tokenAddress)
	if err != nil {
		log.Fatal(err)
	}

	t := token.NewReader(invoker.New(c, nil), h)

	name, err := t.Name()
	if err != nil {
		log.Fatal(err)
	}
	decimals, err := t.Decimals()
	if err != nil {
		log.Fatal(err)
	}

	holders, err := t.Holders(1000)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token.TrimBytes32(name))
	for _, holder := range holders {
		fmt.Printf("%s: %s\n", address.Uint160ToString(holder.Account),
			fixedn.ToString(holder.Balance, int(decimals.Int64())))
	}
}
