package types

import (
	"bytes"
	"fmt"

	"github.com/contract-patterns/vmp-go-base/types/hex"
)

const Bytes32Length = 32

type (
	// Bytes32 is a 32 byte commitment: puzzle hashes, coin ids, tree hashes.
	Bytes32 [Bytes32Length]byte

	// CoinID identifies a coin, see Coin.ID.
	CoinID = Bytes32
)

/*
BytesToBytes32 converts b to Bytes32, the length of b must be exactly 32 bytes.
*/
func BytesToBytes32(b []byte) (Bytes32, error) {
	var r Bytes32
	if len(b) != Bytes32Length {
		return r, fmt.Errorf("expected %d bytes, got %d bytes", Bytes32Length, len(b))
	}
	copy(r[:], b)
	return r, nil
}

func (b Bytes32) Bytes() []byte {
	return b[:]
}

func (b Bytes32) Compare(o Bytes32) int {
	return bytes.Compare(b[:], o[:])
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

func (b Bytes32) String() string {
	return fmt.Sprintf("%x", b[:])
}

func (b Bytes32) MarshalText() ([]byte, error) {
	return hex.Encode(b[:]), nil
}

func (b *Bytes32) UnmarshalText(src []byte) error {
	res, err := hex.Decode(src)
	if err != nil {
		return err
	}
	if *b, err = BytesToBytes32(res); err != nil {
		return fmt.Errorf("decoding %q: %w", src, err)
	}
	return nil
}
