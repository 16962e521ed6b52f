package vmp

import (
	"github.com/contract-patterns/vmp-go-base/hash"
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
)

type (
	/*
	   LineageProof proves that a coin descends from a parent with the given
	   type list, inner puzzle and amount.
	*/
	LineageProof struct {
		_               struct{}      `cbor:",toarray"`
		ParentID        types.CoinID  `json:"parentId"`        // parent id of the parent coin
		TypesHash       types.Bytes32 `json:"typesHash"`       // types hash of the parent's VMP
		InnerPuzzleHash types.Bytes32 `json:"innerPuzzleHash"` // inner puzzle hash of the parent's VMP
		Amount          uint64        `json:"amount"`          // amount of the parent coin
	}

	/*
	   TypeProof proves that the type list of a VMP contains some types without
	   revealing the whole list: the types up to (and including) the last
	   proven type are listed explicitly, the types after it are rolled into a
	   single digest.
	*/
	TypeProof struct {
		ModHash         types.Bytes32
		InnerPuzzleHash types.Bytes32
		Types           []AssetType
		Rolled          *types.Bytes32 // nil when there are no rolled types
	}
)

/*
NewLineageProof returns the lineage proof a child of the coin presents when
it is spent. The vmp must be the puzzle of the coin.
*/
func NewLineageProof(coin *types.Coin, vmp *VMP) *LineageProof {
	return &LineageProof{
		ParentID:        coin.ParentID,
		TypesHash:       vmp.TypesHash(),
		InnerPuzzleHash: vmp.InnerPuzzle.TreeHash(),
		Amount:          coin.Amount,
	}
}

func (lp *LineageProof) AsProgram() *program.Program {
	return program.List(
		program.FromBytes32(lp.ParentID),
		program.FromBytes32(lp.TypesHash),
		program.FromBytes32(lp.InnerPuzzleHash),
		program.FromUint64(lp.Amount),
	)
}

/*
AsProgram returns (mod_hash inner_puzzle_hash partial_types) where
partial_types is the list of explicit types terminated by the rolled digest
(or nil).
*/
func (tp *TypeProof) AsProgram() *program.Program {
	tail := program.Nil
	if tp.Rolled != nil {
		tail = program.FromBytes32(*tp.Rolled)
	}
	for i := len(tp.Types) - 1; i >= 0; i-- {
		tail = program.Cons(tp.Types[i].AsProgram(), tail)
	}
	return program.List(
		program.FromBytes32(tp.ModHash),
		program.FromBytes32(tp.InnerPuzzleHash),
		tail,
	)
}

// TypesHash reconstructs the types hash of the VMP the proof was created for.
func (tp *TypeProof) TypesHash() types.Bytes32 {
	acc := hash.NilTreeHash
	if tp.Rolled != nil {
		acc = *tp.Rolled
	}
	for i := len(tp.Types) - 1; i >= 0; i-- {
		acc = hash.TreeHashPair(tp.Types[i].TreeHash(), acc)
	}
	return acc
}

// PuzzleHash reconstructs the puzzle hash of the VMP the proof was created for.
func (tp *TypeProof) PuzzleHash() types.Bytes32 {
	return program.CurriedTreeHash(tp.ModHash,
		hash.TreeHashAtom(tp.ModHash[:]),
		tp.TypesHash(),
		tp.InnerPuzzleHash,
	)
}

// Contains returns true when the explicit part of the proof has a type matching t.
func (tp *TypeProof) Contains(t AssetType, ignore Field) bool {
	for _, pt := range tp.Types {
		if pt.Matches(t, ignore) {
			return true
		}
	}
	return false
}

// rollTypes folds the types into the accumulator H(0x02 || type_hash || acc) starting from nil.
func rollTypes(list []AssetType) types.Bytes32 {
	acc := hash.NilTreeHash
	for i := len(list) - 1; i >= 0; i-- {
		acc = hash.TreeHashPair(list[i].TreeHash(), acc)
	}
	return acc
}
