/*
Package token implements fungible token contract with ERC20-like interface.

Token metadata is set once on deployment. Deploy data is an array of token
name, ticker symbol, decimals, total supply and the owner account receiving
the whole supply. Name and symbol are stored and returned as 32-byte strings
right-padded with zero bytes, see common.PadBytes32. Balances change only
through Transfer and TransferFrom, so the sum of all balances always equals
total supply.

The contract is not NEP-17 compatible because of fixed-width symbol.

# Contract notifications

Transfer notification. It is produced on every balance move and once on
deployment with null sender.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. It is produced when owner changes allowance of spender.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package token

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'n' -> []byte
   token name, 32 bytes
 - 's' -> []byte
   token symbol, 32 bytes
 - 'd' -> int
   decimals
 - 't' -> int
   total supply
 - 'b'<interop.Hash160> -> int
   non-zero balance of the account
 - 'a'<interop.Hash160><interop.Hash160> -> int
   non-zero allowance of the spender (second hash) for the owner (first hash)
*/
