package vmp

import (
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
)

// Field is a set of AssetType fields which are not compared by AssetType.Matches.
type Field uint8

const (
	IgnoreEnvironment Field = 1 << iota
	IgnoreRemover

	// MatchStrict compares all the fields of the types.
	MatchStrict Field = 0
)

/*
AssetType is the identity of one type layer attached to a coin.

The order of the fields in the program representation is part of the wire
format, see AsProgram.
*/
type AssetType struct {
	LauncherHash types.Bytes32    // identifies the launcher authorized to create the type
	Environment  *program.Program // immutable parameters of the type
	PreValidator *program.Program // coarse grained checks of the spend
	Validator    *program.Program // fine grained checks of the spend
	RemoverHash  types.Bytes32    // commitment to the program authorized to strip the type
}

/*
AsProgram returns the commitment form of the type

	(launcher_hash environment pre_validator_hash validator_hash remover_hash)

which is used in the type list curried into the meta puzzle.
*/
func (t AssetType) AsProgram() *program.Program {
	return program.List(
		program.FromBytes32(t.LauncherHash),
		orNil(t.Environment),
		program.FromBytes32(t.PreValidator.TreeHash()),
		program.FromBytes32(t.Validator.TreeHash()),
		program.FromBytes32(t.RemoverHash),
	)
}

/*
AsInlineProgram returns the type with the validator programs embedded. It is
used only in launcher solutions, when the type is instantiated for execution.
*/
func (t AssetType) AsInlineProgram() *program.Program {
	return program.Cons(program.FromBytes32(t.LauncherHash), t.InlineTail())
}

// InlineTail returns AsInlineProgram without the launcher hash.
func (t AssetType) InlineTail() *program.Program {
	return program.List(
		orNil(t.Environment),
		orNil(t.PreValidator),
		orNil(t.Validator),
		program.FromBytes32(t.RemoverHash),
	)
}

// TreeHash returns the tree hash of the commitment form of the type.
func (t AssetType) TreeHash() types.Bytes32 {
	return t.AsProgram().TreeHash()
}

func (t AssetType) PreValidatorHash() types.Bytes32 {
	return t.PreValidator.TreeHash()
}

func (t AssetType) ValidatorHash() types.Bytes32 {
	return t.Validator.TreeHash()
}

// Equal compares all five fields of the types.
func (t AssetType) Equal(o AssetType) bool {
	return t.Matches(o, MatchStrict)
}

/*
Matches compares the types skipping the fields in "ignore". Fungibility
rings tie siblings together using IgnoreEnvironment|IgnoreRemover.
*/
func (t AssetType) Matches(o AssetType, ignore Field) bool {
	if t.LauncherHash != o.LauncherHash {
		return false
	}
	if ignore&IgnoreEnvironment == 0 && !orNil(t.Environment).Equal(o.Environment) {
		return false
	}
	if ignore&IgnoreRemover == 0 && t.RemoverHash != o.RemoverHash {
		return false
	}
	return orNil(t.PreValidator).Equal(o.PreValidator) && orNil(t.Validator).Equal(o.Validator)
}

func orNil(p *program.Program) *program.Program {
	if p == nil {
		return program.Nil
	}
	return p
}
