package fungibility

import (
	"fmt"
	"math/big"

	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

// Slot is the unsafe solution Solve writes for a fungible type.
type Slot struct {
	PrevID types.CoinID // id of the previous sibling
	Coin   types.Coin   // the coin being spent
	NextID types.CoinID // id of the next sibling
	Before *big.Int     // subtotal before the spend's contribution
	After  *big.Int     // subtotal after the spend's contribution
}

func (s *Slot) AsProgram() *program.Program {
	return program.List(
		program.FromBytes32(s.PrevID),
		program.List(
			program.FromBytes32(s.Coin.ParentID),
			program.FromBytes32(s.Coin.PuzzleHash),
			program.FromUint64(s.Coin.Amount),
		),
		program.FromBytes32(s.NextID),
		program.FromBigInt(s.Before),
		program.FromBigInt(s.After),
	)
}

// DecodeSlot is the inverse of Slot.AsProgram.
func DecodeSlot(p *program.Program) (*Slot, error) {
	items, err := p.ListItems()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSlot, err)
	}
	if len(items) != 5 {
		return nil, fmt.Errorf("%w: expected 5 items, got %d", ErrInvalidSlot, len(items))
	}
	coin, err := items[1].ListItems()
	if err != nil {
		return nil, fmt.Errorf("%w: coin: %w", ErrInvalidSlot, err)
	}
	if len(coin) != 3 {
		return nil, fmt.Errorf("%w: expected 3 coin fields, got %d", ErrInvalidSlot, len(coin))
	}

	s := &Slot{}
	if s.PrevID, err = items[0].AsBytes32(); err != nil {
		return nil, fmt.Errorf("%w: previous coin id: %w", ErrInvalidSlot, err)
	}
	if s.NextID, err = items[2].AsBytes32(); err != nil {
		return nil, fmt.Errorf("%w: next coin id: %w", ErrInvalidSlot, err)
	}
	if s.Coin.ParentID, err = coin[0].AsBytes32(); err != nil {
		return nil, fmt.Errorf("%w: coin parent: %w", ErrInvalidSlot, err)
	}
	if s.Coin.PuzzleHash, err = coin[1].AsBytes32(); err != nil {
		return nil, fmt.Errorf("%w: coin puzzle hash: %w", ErrInvalidSlot, err)
	}
	if s.Coin.Amount, err = coin[2].AsUint64(); err != nil {
		return nil, fmt.Errorf("%w: coin amount: %w", ErrInvalidSlot, err)
	}
	if s.Before, err = items[3].AsBigInt(); err != nil {
		return nil, fmt.Errorf("%w: subtotal before: %w", ErrInvalidSlot, err)
	}
	if s.After, err = items[4].AsBigInt(); err != nil {
		return nil, fmt.Errorf("%w: subtotal after: %w", ErrInvalidSlot, err)
	}
	return s, nil
}

/*
VerifyRing checks the slots written by Solve the way the validators check
them, each spend against its neighbours only:
  - the slot describes the spent coin and the neighbours' coin ids;
  - the next sibling names the spend as its previous sibling;
  - the subtotal after the spend is the subtotal before the next sibling,
    except at the closing point of the ring where the next sibling is the
    first spend of the ring and its subtotal before is zero.

Returns the total value created per launcher hash.
*/
func VerifyRing(spends []*vmp.VMPSpend, rule Rule) (map[types.Bytes32]*big.Int, error) {
	if err := validateSpends(spends); err != nil {
		return nil, err
	}
	totals := make(map[types.Bytes32]*big.Int)
	for i, spend := range spends {
		for _, t := range rule.uniqueTypes(spend) {
			slot, err := slotOf(spend, t)
			if err != nil {
				return nil, fmt.Errorf("spend [%d]: %w", i, err)
			}
			if slot.Coin.ID() != spend.Coin.ID() {
				return nil, fmt.Errorf("%w: spend [%d] slot describes coin %s", ErrBrokenRing, i, slot.Coin.ID())
			}
			prev, err := findSibling(spends, i, t, false)
			if err != nil {
				return nil, ringError(err, rule, t, i)
			}
			next, err := findSibling(spends, i, t, true)
			if err != nil {
				return nil, ringError(err, rule, t, i)
			}
			if slot.PrevID != spends[prev].Coin.ID() || slot.NextID != spends[next].Coin.ID() {
				return nil, fmt.Errorf("%w: spend [%d] neighbours are not [%d] and [%d]", ErrBrokenRing, i, prev, next)
			}

			nextSlot, err := siblingSlot(spends[next], rule, t)
			if err != nil {
				return nil, fmt.Errorf("spend [%d]: %w", next, err)
			}
			if nextSlot.PrevID != spend.Coin.ID() {
				return nil, fmt.Errorf("%w: spend [%d] is not the previous sibling of [%d]", ErrBrokenRing, i, next)
			}
			if next > i {
				if nextSlot.Before.Cmp(slot.After) != 0 {
					return nil, fmt.Errorf("%w: subtotal after spend [%d] is %s, before spend [%d] is %s", ErrBrokenRing, i, slot.After, next, nextSlot.Before)
				}
				continue
			}
			// closing point of the ring
			if nextSlot.Before.Sign() != 0 {
				return nil, fmt.Errorf("%w: ring starting at spend [%d] has subtotal %s before it", ErrBrokenRing, next, nextSlot.Before)
			}
			totals[t.LauncherHash] = slot.After
		}
	}
	return totals, nil
}

func slotOf(spend *vmp.VMPSpend, t vmp.AssetType) (*Slot, error) {
	idx := spend.IndexOf(t)
	if idx < 0 || idx >= len(spend.UnsafeSolutions) || spend.UnsafeSolutions[idx] == nil {
		return nil, fmt.Errorf("%w: no slot for type with launcher %s", ErrInvalidSlot, t.LauncherHash)
	}
	return DecodeSlot(spend.UnsafeSolutions[idx])
}

// siblingSlot returns the slot of the type of the sibling which is in the same ring as t.
func siblingSlot(sibling *vmp.VMPSpend, rule Rule, t vmp.AssetType) (*Slot, error) {
	for _, st := range rule.uniqueTypes(sibling) {
		if st.Matches(t, ringMatch) {
			return slotOf(sibling, st)
		}
	}
	return nil, fmt.Errorf("%w: sibling has no type with launcher %s", ErrBrokenRing, t.LauncherHash)
}
