package types

import (
	"crypto/sha256"
	"errors"

	"github.com/contract-patterns/vmp-go-base/util"
)

var ErrCoinIsNil = errors.New("coin is nil")

/*
Coin is an unspent value holding object. The coin's identity is derived from
its parent coin id, puzzle hash and amount.
*/
type Coin struct {
	_          struct{} `cbor:",toarray"`
	ParentID   CoinID   `json:"parentCoinInfo"`
	PuzzleHash Bytes32  `json:"puzzleHash"`
	Amount     uint64   `json:"amount"`
}

func NewCoin(parentID CoinID, puzzleHash Bytes32, amount uint64) *Coin {
	return &Coin{ParentID: parentID, PuzzleHash: puzzleHash, Amount: amount}
}

/*
ID returns sha256(parent_id || puzzle_hash || amount) where the amount is
encoded as minimal two's complement integer (the execution VM's integer
encoding).
*/
func (c *Coin) ID() CoinID {
	h := sha256.New()
	h.Write(c.ParentID[:])
	h.Write(c.PuzzleHash[:])
	h.Write(util.EncodeUint64(c.Amount))
	var id CoinID
	h.Sum(id[:0])
	return id
}

func (c *Coin) IsValid() error {
	if c == nil {
		return ErrCoinIsNil
	}
	return nil
}
