package vmp

import (
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/util"
)

type (
	/*
	   TypeChange adds the Type to or removes it from a coin. Puzzle is the
	   launcher (when adding) or the remover (when removing) of the type.
	*/
	TypeChange struct {
		Type     AssetType
		Puzzle   *program.Program
		Solution *program.Program
	}

	/*
	   SecuredInformation is the part of the solution the inner puzzle commits
	   to by announcing its tree hash. TypeRemovals is aligned with the type
	   list after additions, nil items mark types which are not removed.
	*/
	SecuredInformation struct {
		TypeAdditions   []TypeChange
		TypeRemovals    []*TypeChange
		SecureSolutions []*program.Program
	}
)

// AsProgram returns the wire form of the change: (puzzle . solution).
func (tc TypeChange) AsProgram() *program.Program {
	return program.Cons(orNil(tc.Puzzle), orNil(tc.Solution))
}

func (si *SecuredInformation) AsProgram() *program.Program {
	removals := util.TransformSlice(si.TypeRemovals, func(tc *TypeChange) *program.Program {
		if tc == nil {
			return program.Nil
		}
		return tc.AsProgram()
	})
	return program.List(
		program.List(util.TransformSlice(si.TypeAdditions, TypeChange.AsProgram)...),
		program.List(removals...),
		program.List(si.SecureSolutions...),
	)
}

func (si *SecuredInformation) TreeHash() types.Bytes32 {
	return si.AsProgram().TreeHash()
}
