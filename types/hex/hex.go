/*
Package hex implements hex encoding with the "0x" prefix used in all the
JSON representations of the module's types.
*/
package hex

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bytes marshals/unmarshals as a JSON string with 0x prefix.
// The empty slice marshals as "0x".
type Bytes = hexutil.Bytes

// Encode returns "0x" prefixed hex encoding of b.
func Encode(b []byte) []byte {
	return []byte(hexutil.Encode(b))
}

// Decode decodes "0x" prefixed hex string.
func Decode(src []byte) ([]byte, error) {
	return hexutil.Decode(string(src))
}
