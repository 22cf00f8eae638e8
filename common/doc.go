/*
Package common contains helpers shared by the token contract code: contract
versioning, update access and witness checks, integer storage and
fixed-width string encoding.

Functions of this package are compiled into NeoVM scripts as a part of the
contracts importing them, but they are also usable from regular Go code.
*/
package common
