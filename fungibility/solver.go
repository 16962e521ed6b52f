package fungibility

import (
	"fmt"
	"math/big"

	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

/*
Solve links the spends carrying types of the rule into rings (one ring per
launcher hash) and writes the ring slot of every such type:

	(prev_coin_id (parent puzzle_hash amount) next_coin_id subtotal_before subtotal_after)

and appends the type proof of the next sibling to the spend's type proofs.

The spends are processed in index order, the subtotal of a launcher starts
from zero and grows by the values of the CREATE_COIN conditions output by the
inner puzzle of each spend in the ring. The runner is called once per spend
and type.

The spends are validated before any of them is modified. A type carried by
a single spend of the batch forms a ring of one (the spend is its own
sibling). The spends are modified in place, on a ring or VM error the batch
is partially solved and must be discarded.
*/
func Solve(spends []*vmp.VMPSpend, rule Rule, runner program.Runner) error {
	if err := validateSpends(spends); err != nil {
		return err
	}
	subtotals := make(map[types.Bytes32]*big.Int)
	for i, spend := range spends {
		for _, t := range rule.uniqueTypes(spend) {
			prev, err := findSibling(spends, i, t, false)
			if err != nil {
				return ringError(err, rule, t, i)
			}
			next, err := findSibling(spends, i, t, true)
			if err != nil {
				return ringError(err, rule, t, i)
			}

			subtotal, ok := subtotals[t.LauncherHash]
			if !ok {
				subtotal = new(big.Int)
				subtotals[t.LauncherHash] = subtotal
			}
			before := new(big.Int).Set(subtotal)
			created, err := createdValue(spend, rule, runner)
			if err != nil {
				return fmt.Errorf("spend [%d]: %w", i, err)
			}
			subtotal.Add(subtotal, created)

			slot := &Slot{
				PrevID: spends[prev].Coin.ID(),
				Coin:   *spend.Coin,
				NextID: spends[next].Coin.ID(),
				Before: before,
				After:  new(big.Int).Set(subtotal),
			}
			if err := spend.SetUnsafeSolution(spend.IndexOf(t), slot.AsProgram()); err != nil {
				return fmt.Errorf("spend [%d]: %w", i, err)
			}
			spend.AddTypeProof(proofOf(spends[next].Puzzle, t))

			log.Debugf("%s ring %s: spend [%d] prev [%d] next [%d] subtotal %s -> %s",
				rule.Name, t.LauncherHash, i, prev, next, slot.Before, slot.After)
		}
	}
	return nil
}

func validateSpends(spends []*vmp.VMPSpend) error {
	for i, spend := range spends {
		if spend == nil {
			return fmt.Errorf("spend [%d]: %w", i, ErrSpendIsNil)
		}
		if err := spend.Validate(); err != nil {
			return fmt.Errorf("spend [%d]: %w", i, err)
		}
	}
	return nil
}

/*
findSibling returns the index of the nearest spend (cyclically, in the
given direction) carrying type matching t. At most len(spends) steps are
taken, the spend itself is found last.
*/
func findSibling(spends []*vmp.VMPSpend, idx int, t vmp.AssetType, forward bool) (int, error) {
	n := len(spends)
	step := n - 1
	if forward {
		step = 1
	}
	j := idx
	for range n {
		j = (j + step) % n
		if spends[j].IsType(t, ringMatch) {
			return j, nil
		}
	}
	return -1, &RingError{Launcher: t.LauncherHash, Index: idx, Forward: forward}
}

func ringError(err error, rule Rule, t vmp.AssetType, idx int) error {
	if re, ok := err.(*RingError); ok {
		re.Rule = rule.Name
		return re
	}
	return fmt.Errorf("%s ring of %s at spend [%d]: %w", rule.Name, t.LauncherHash, idx, err)
}

// createdValue runs the inner puzzle of the spend and sums the values of the CREATE_COIN conditions.
func createdValue(spend *vmp.VMPSpend, rule Rule, runner program.Runner) (*big.Int, error) {
	output, err := runner.Run(spend.Puzzle.InnerPuzzle, orNil(spend.InnerSolution))
	if err != nil {
		return nil, fmt.Errorf("running inner puzzle: %w", err)
	}
	conds, err := vmp.ParseConditions(output)
	if err != nil {
		return nil, fmt.Errorf("inner puzzle output: %w", err)
	}
	sum := new(big.Int)
	for i, c := range conds {
		if c.Opcode != vmp.CreateCoin {
			continue
		}
		v, err := rule.Value(c)
		if err != nil {
			return nil, fmt.Errorf("condition [%d]: %w", i, err)
		}
		sum.Add(sum, v)
	}
	return sum, nil
}

/*
proofOf returns the type proof of the types of puzzle matching t. The type
may be missing from the puzzle when the sibling adds it in the same spend,
then the whole type list is rolled up.
*/
func proofOf(puzzle *vmp.VMP, t vmp.AssetType) *vmp.TypeProof {
	var subset []vmp.AssetType
	for _, pt := range puzzle.Types {
		if pt.Matches(t, ringMatch) {
			subset = append(subset, pt)
		}
	}
	return puzzle.GetTypeProof(subset...)
}
