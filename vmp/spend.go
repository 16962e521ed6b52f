package vmp

import (
	"fmt"

	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
)

/*
VMPSpend is the spend of a coin locked with a VMP.

The slot arrays (UnsafeSolutions, SecureSolutions) and the validator arrays
of the solution are aligned with the derived type list returned by Types.
Nil slot array stands for an array of nils sized to the derived type count.
*/
type VMPSpend struct {
	Coin          *types.Coin
	Puzzle        *VMP
	InnerSolution *program.Program
	LineageProof  *LineageProof // nil when the coin is spent for the first time as a VMP
	TypeProofs    []*TypeProof

	TypeAdditions []TypeChange
	TypeRemovals  []TypeChange

	UnsafeSolutions []*program.Program // not covered by the security hash
	SecureSolutions []*program.Program // covered by the security hash
}

func NewSpend(coin *types.Coin, puzzle *VMP) *VMPSpend {
	return &VMPSpend{Coin: coin, Puzzle: puzzle}
}

/*
Types returns the type list of the spend: the added types are prepended to
the types of the puzzle (the last added type becomes the head of the list)
and then the removed types are dropped.
*/
func (s *VMPSpend) Types() []AssetType {
	all := s.typesBeforeRemoval()
	res := make([]AssetType, 0, len(all))
	for _, t := range all {
		if s.removalOf(t) == nil {
			res = append(res, t)
		}
	}
	return res
}

// IndexOf returns the position of the type (compared by all fields) in Types or -1.
func (s *VMPSpend) IndexOf(t AssetType) int {
	return indexOf(s.Types(), t, MatchStrict)
}

// IsType returns true when one of the Types matches t.
func (s *VMPSpend) IsType(t AssetType, ignore Field) bool {
	return indexOf(s.Types(), t, ignore) >= 0
}

/*
SetUnsafeSolution sets the unsafe solution of the type at position idx of
Types, nil slot array is first materialized as array of nils.
*/
func (s *VMPSpend) SetUnsafeSolution(idx int, solution *program.Program) error {
	slots, err := s.setSlot(s.UnsafeSolutions, idx, solution)
	if err != nil {
		return fmt.Errorf("unsafe solution: %w", err)
	}
	s.UnsafeSolutions = slots
	return nil
}

// SetSecureSolution is like SetUnsafeSolution but for the slots covered by the security hash.
func (s *VMPSpend) SetSecureSolution(idx int, solution *program.Program) error {
	slots, err := s.setSlot(s.SecureSolutions, idx, solution)
	if err != nil {
		return fmt.Errorf("secure solution: %w", err)
	}
	s.SecureSolutions = slots
	return nil
}

func (s *VMPSpend) AddTypeProof(tp *TypeProof) {
	s.TypeProofs = append(s.TypeProofs, tp)
}

/*
SecuredInformation returns the information committed to by the security
hash. Removals are aligned with the type list after additions.
*/
func (s *VMPSpend) SecuredInformation() *SecuredInformation {
	all := s.typesBeforeRemoval()
	removals := make([]*TypeChange, len(all))
	for i, t := range all {
		removals[i] = s.removalOf(t)
	}
	return &SecuredInformation{
		TypeAdditions:   s.TypeAdditions,
		TypeRemovals:    removals,
		SecureSolutions: slotsOrNils(s.SecureSolutions, len(all)-countRemoved(removals)),
	}
}

/*
SecurityHash returns the tree hash of the secured information. The inner
puzzle must announce it (see SecurityCondition) for the type changes to be
accepted.
*/
func (s *VMPSpend) SecurityHash() types.Bytes32 {
	return s.SecuredInformation().TreeHash()
}

/*
Validate checks the structure of the spend: no duplicate types, removals
refer to attached types, slot arrays are aligned with the type list.
*/
func (s *VMPSpend) Validate() error {
	if s.Coin == nil {
		return ErrMissingCoin
	}
	if s.Puzzle == nil || s.Puzzle.Template == nil || s.Puzzle.InnerPuzzle == nil {
		return ErrMissingPuzzle
	}

	all := s.typesBeforeRemoval()
	for i := range all {
		for j := range i {
			if all[i].Equal(all[j]) {
				return fmt.Errorf("%w: types [%d] and [%d] with launcher %s", ErrDuplicateType, j, i, all[i].LauncherHash)
			}
		}
	}
	for i, r := range s.TypeRemovals {
		if indexOf(all, r.Type, MatchStrict) < 0 {
			return fmt.Errorf("%w: removal [%d] with launcher %s", ErrUnknownRemoval, i, r.Type.LauncherHash)
		}
		for j := range i {
			if s.TypeRemovals[j].Type.Equal(r.Type) {
				return fmt.Errorf("%w: removals [%d] and [%d]", ErrDuplicateRemoval, j, i)
			}
		}
	}

	typeCount := len(all) - len(s.TypeRemovals)
	if s.UnsafeSolutions != nil && len(s.UnsafeSolutions) != typeCount {
		return fmt.Errorf("%w: %d unsafe solutions for %d types", ErrSlotCountMismatch, len(s.UnsafeSolutions), typeCount)
	}
	if s.SecureSolutions != nil && len(s.SecureSolutions) != typeCount {
		return fmt.Errorf("%w: %d secure solutions for %d types", ErrSlotCountMismatch, len(s.SecureSolutions), typeCount)
	}
	return nil
}

/*
Solution returns the solution of the constructed puzzle:

	(inner_solution lineage_proof type_proofs pre_validators validators unsafe_solutions secured_information)

The validator arrays and unsafe solutions are aligned with Types.
*/
func (s *VMPSpend) Solution() (*program.Program, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	assetTypes := s.Types()
	preValidators := make([]*program.Program, len(assetTypes))
	validators := make([]*program.Program, len(assetTypes))
	for i, t := range assetTypes {
		preValidators[i] = orNil(t.PreValidator)
		validators[i] = orNil(t.Validator)
	}
	proofs := make([]*program.Program, len(s.TypeProofs))
	for i, tp := range s.TypeProofs {
		proofs[i] = tp.AsProgram()
	}
	lineage := program.Nil
	if s.LineageProof != nil {
		lineage = s.LineageProof.AsProgram()
	}

	return program.List(
		orNil(s.InnerSolution),
		lineage,
		program.List(proofs...),
		program.List(preValidators...),
		program.List(validators...),
		program.List(slotsOrNils(s.UnsafeSolutions, len(assetTypes))...),
		s.SecuredInformation().AsProgram(),
	), nil
}

// ToCoinSpend returns the serialized puzzle reveal and solution of the spend.
func (s *VMPSpend) ToCoinSpend() (*types.CoinSpend, error) {
	solution, err := s.Solution()
	if err != nil {
		return nil, fmt.Errorf("coin %s: %w", s.coinID(), err)
	}
	log.Debugf("coin %s: %d types, %d type proofs, security hash %s",
		s.coinID(), len(s.Types()), len(s.TypeProofs), s.SecurityHash())
	return &types.CoinSpend{
		Coin:         s.Coin,
		PuzzleReveal: s.Puzzle.Construct().Serialize(),
		Solution:     solution.Serialize(),
	}, nil
}

/*
NextPuzzle returns the VMP of the coin created by the spend: the derived
type list with the given inner puzzle (when nil the inner puzzle of the
spend is kept).
*/
func (s *VMPSpend) NextPuzzle(innerPuzzle *program.Program) *VMP {
	next := s.Puzzle.WithTypes(s.Types())
	if innerPuzzle != nil {
		next.InnerPuzzle = innerPuzzle
	}
	return next
}

// NextCoin returns the coin created by the spend with NextPuzzle(innerPuzzle).
func (s *VMPSpend) NextCoin(innerPuzzle *program.Program, amount uint64) *types.Coin {
	return types.NewCoin(s.Coin.ID(), s.NextPuzzle(innerPuzzle).TreeHash(), amount)
}

// NextLineageProof returns the lineage proof the coins created by the spend present.
func (s *VMPSpend) NextLineageProof() *LineageProof {
	return NewLineageProof(s.Coin, s.Puzzle)
}

func (s *VMPSpend) typesBeforeRemoval() []AssetType {
	res := make([]AssetType, 0, len(s.TypeAdditions))
	for i := len(s.TypeAdditions) - 1; i >= 0; i-- {
		res = append(res, s.TypeAdditions[i].Type)
	}
	if s.Puzzle == nil {
		return res
	}
	return append(res, s.Puzzle.Types...)
}

func (s *VMPSpend) removalOf(t AssetType) *TypeChange {
	for i := range s.TypeRemovals {
		if s.TypeRemovals[i].Type.Equal(t) {
			return &s.TypeRemovals[i]
		}
	}
	return nil
}

func (s *VMPSpend) setSlot(slots []*program.Program, idx int, solution *program.Program) ([]*program.Program, error) {
	slots = slotsOrNils(slots, len(s.Types()))
	if idx < 0 || idx >= len(slots) {
		return nil, fmt.Errorf("%w: index %d, %d slots", ErrSlotOutOfRange, idx, len(slots))
	}
	slots[idx] = solution
	return slots, nil
}

func (s *VMPSpend) coinID() types.CoinID {
	if s.Coin == nil {
		return types.CoinID{}
	}
	return s.Coin.ID()
}

func slotsOrNils(slots []*program.Program, n int) []*program.Program {
	if slots == nil {
		return make([]*program.Program, n)
	}
	return slots
}

func countRemoved(removals []*TypeChange) int {
	n := 0
	for _, r := range removals {
		if r != nil {
			n++
		}
	}
	return n
}
