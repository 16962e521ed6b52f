/*
Package vmp implements the Validating Meta Puzzle: a puzzle wrapping an inner
puzzle with an ordered list of asset types, each type contributing its own
validators to the spend of the coin.

The meta puzzle is curried with its own hash, the type list (commitment form
of the types, see AssetType.AsProgram) and the inner puzzle:

	VMP_MOD.curry(VMP_MOD_HASH, (type_1 ... type_n), inner_puzzle)
*/
package vmp

import (
	"github.com/contract-patterns/vmp-go-base/hash"
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/util"
)

type (
	// Template is the uncurried meta puzzle and its tree hash.
	Template struct {
		Mod     *program.Program
		ModHash types.Bytes32
	}

	// VMP is the puzzle of a coin: inner puzzle plus the attached types.
	VMP struct {
		Template    *Template
		InnerPuzzle *program.Program
		Types       []AssetType
	}
)

func NewTemplate(mod *program.Program) *Template {
	return &Template{Mod: mod, ModHash: mod.TreeHash()}
}

// New returns VMP of the inner puzzle with the types attached in the given order.
func (tmpl *Template) New(innerPuzzle *program.Program, assetTypes ...AssetType) *VMP {
	return &VMP{Template: tmpl, InnerPuzzle: innerPuzzle, Types: assetTypes}
}

// Construct returns the executable puzzle.
func (v *VMP) Construct() *program.Program {
	return v.Template.Mod.Curry(
		program.FromBytes32(v.Template.ModHash),
		v.typeList(),
		orNil(v.InnerPuzzle),
	)
}

/*
TreeHash returns the puzzle hash of the VMP, ie the tree hash of the
constructed puzzle, computed without constructing it.
*/
func (v *VMP) TreeHash() types.Bytes32 {
	return program.CurriedTreeHash(v.Template.ModHash,
		hash.TreeHashAtom(v.Template.ModHash[:]),
		v.TypesHash(),
		v.InnerPuzzle.TreeHash(),
	)
}

// TypesHash returns the tree hash of the type list alone.
func (v *VMP) TypesHash() types.Bytes32 {
	return rollTypes(v.Types)
}

/*
GetTypeProof returns proof of the presence of the subset of types. Let k be
the index of the last type of the list which is in the subset: types 0..k are
listed explicitly and the types after k are rolled up. When no type of the
subset is in the list the whole list is rolled up. When the subset contains
the last type there is nothing to roll and the proof carries the full list.
*/
func (v *VMP) GetTypeProof(subset ...AssetType) *TypeProof {
	k := -1
	for i, t := range v.Types {
		for _, s := range subset {
			if t.Equal(s) {
				k = i
				break
			}
		}
	}

	tp := &TypeProof{
		ModHash:         v.Template.ModHash,
		InnerPuzzleHash: v.InnerPuzzle.TreeHash(),
		Types:           append([]AssetType(nil), v.Types[:k+1]...),
	}
	if suffix := v.Types[k+1:]; len(suffix) > 0 {
		rolled := rollTypes(suffix)
		tp.Rolled = &rolled
	}
	return tp
}

// IndexOf returns the position of the type (compared by all fields) in the type list or -1.
func (v *VMP) IndexOf(t AssetType) int {
	return indexOf(v.Types, t, MatchStrict)
}

// WithTypes returns VMP with the same inner puzzle and the given types.
func (v *VMP) WithTypes(assetTypes []AssetType) *VMP {
	return &VMP{Template: v.Template, InnerPuzzle: v.InnerPuzzle, Types: assetTypes}
}

func (v *VMP) typeList() *program.Program {
	return program.List(util.TransformSlice(v.Types, AssetType.AsProgram)...)
}

func indexOf(list []AssetType, t AssetType, ignore Field) int {
	for i, lt := range list {
		if lt.Matches(t, ignore) {
			return i
		}
	}
	return -1
}
