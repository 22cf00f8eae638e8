package common

// Bytes32Len is the size of fixed-width string fields like token name and
// symbol.
const Bytes32Len = 32

// ErrBytes32Overflow is thrown by PadBytes32 for strings that do not fit into
// Bytes32Len bytes.
const ErrBytes32Overflow = "string is longer than 32 bytes"

// PadBytes32 right-pads s with zero bytes up to Bytes32Len. It panics with
// ErrBytes32Overflow if s is longer.
//
// The function compiles both for NeoVM and for the regular Go runtime, so
// contracts and off-chain code share the same encoding.
func PadBytes32(s string) []byte {
	if len(s) > Bytes32Len {
		panic(ErrBytes32Overflow)
	}

	for len(s) < Bytes32Len {
		s += "\x00"
	}

	return []byte(s)
}
