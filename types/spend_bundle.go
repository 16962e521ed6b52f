package types

import (
	"crypto"
	"errors"
	"fmt"

	vmphash "github.com/contract-patterns/vmp-go-base/hash"
	"github.com/contract-patterns/vmp-go-base/types/hex"
)

var (
	ErrCoinSpendIsNil   = errors.New("coin spend is nil")
	ErrSpendBundleIsNil = errors.New("spend bundle is nil")
)

type (
	/*
	   CoinSpend is a coin together with the serialized puzzle reveal and
	   solution the execution VM runs to spend it.
	*/
	CoinSpend struct {
		_            struct{}  `cbor:",toarray"`
		Coin         *Coin     `json:"coin"`
		PuzzleReveal hex.Bytes `json:"puzzleReveal"`
		Solution     hex.Bytes `json:"solution"`
	}

	// SpendBundle is a group of coin spends submitted together.
	SpendBundle struct {
		_                   struct{}     `cbor:",toarray"`
		Version             Version      `json:"version"`
		CoinSpends          []*CoinSpend `json:"coinSpends"`
		AggregatedSignature hex.Bytes    `json:"aggregatedSignature"`
	}
)

func (cs *CoinSpend) IsValid() error {
	if cs == nil {
		return ErrCoinSpendIsNil
	}
	if err := cs.Coin.IsValid(); err != nil {
		return err
	}
	if len(cs.PuzzleReveal) == 0 {
		return errors.New("puzzle reveal is empty")
	}
	if len(cs.Solution) == 0 {
		return errors.New("solution is empty")
	}
	return nil
}

func NewSpendBundle(spends ...*CoinSpend) *SpendBundle {
	return &SpendBundle{Version: 1, CoinSpends: spends}
}

func (b *SpendBundle) IsValid() error {
	if b == nil {
		return ErrSpendBundleIsNil
	}
	if len(b.CoinSpends) == 0 {
		return errors.New("spend bundle has no coin spends")
	}
	seen := make(map[CoinID]struct{}, len(b.CoinSpends))
	for i, cs := range b.CoinSpends {
		if err := cs.IsValid(); err != nil {
			return fmt.Errorf("invalid coin spend [%d]: %w", i, err)
		}
		id := cs.Coin.ID()
		if _, ok := seen[id]; ok {
			return fmt.Errorf("coin %s is spent more than once", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Hash returns the hash of the bundle's CBOR encoding.
func (b *SpendBundle) Hash(algorithm crypto.Hash) ([]byte, error) {
	if b == nil {
		return nil, ErrSpendBundleIsNil
	}
	return vmphash.Values(algorithm, b)
}

func (b *SpendBundle) GetVersion() Version {
	if b != nil && b.Version > 0 {
		return b.Version
	}
	return 1
}

func (b *SpendBundle) MarshalCBOR() ([]byte, error) {
	type alias SpendBundle
	if b.Version == 0 {
		b.Version = b.GetVersion()
	}
	return Cbor.MarshalTaggedValue(SpendBundleTag, (*alias)(b))
}

func (b *SpendBundle) UnmarshalCBOR(data []byte) error {
	type alias SpendBundle
	if err := Cbor.UnmarshalTaggedValue(SpendBundleTag, data, (*alias)(b)); err != nil {
		return err
	}
	return EnsureVersion(b, b.Version, 1)
}
