package assets

import (
	"fmt"

	"github.com/contract-patterns/vmp-go-base/fungibility"
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

/*
Fungible is the CAT or NFT variant. The launcher and the remover of the
types are chosen by the issuer, the caller provides them (with solutions)
when the type is added or removed.
*/
type Fungible struct {
	kind         Kind
	reg          *puzzles.Registry
	preValidator *program.Program
	validator    *program.Program
	rule         fungibility.Rule
}

func newFungible(kind Kind, reg *puzzles.Registry, preValidator, validator *program.Program) *Fungible {
	f := &Fungible{kind: kind, reg: reg, preValidator: preValidator, validator: validator}
	if kind == KindCAT {
		f.rule = fungibility.CATRule(reg)
	} else {
		f.rule = fungibility.NFTRule(reg)
	}
	return f
}

func (f *Fungible) Kind() Kind { return f.kind }

func (f *Fungible) New(params NewParams) (vmp.AssetType, error) {
	return vmp.AssetType{
		LauncherHash: params.LauncherHash,
		Environment:  orNil(params.Environment),
		PreValidator: f.preValidator,
		Validator:    f.validator,
		RemoverHash:  params.RemoverHash,
	}, nil
}

func (f *Fungible) Launch(t vmp.AssetType, args LaunchArgs) (vmp.TypeChange, error) {
	if err := f.checkKind(t); err != nil {
		return vmp.TypeChange{}, err
	}
	if args.Launcher == nil {
		return vmp.TypeChange{}, fmt.Errorf("%w: launcher", ErrMissingArgument)
	}
	if args.Launcher.TreeHash() != t.LauncherHash {
		return vmp.TypeChange{}, ErrLauncherMismatch
	}
	return vmp.TypeChange{Type: t, Puzzle: args.Launcher, Solution: orNil(args.LauncherSolution)}, nil
}

func (f *Fungible) Remove(t vmp.AssetType, args RemoveArgs) (vmp.TypeChange, error) {
	if err := f.checkKind(t); err != nil {
		return vmp.TypeChange{}, err
	}
	return removeWith(t, args)
}

// Solve writes the fungibility ring slots of the variant's types.
func (f *Fungible) Solve(spends []*vmp.VMPSpend, runner program.Runner) error {
	return fungibility.Solve(spends, f.rule, runner)
}

func (f *Fungible) checkKind(t vmp.AssetType) error {
	if !f.rule.Applies(t) {
		return fmt.Errorf("%w: %s type expected", ErrKindMismatch, f.kind)
	}
	return nil
}

func removeWith(t vmp.AssetType, args RemoveArgs) (vmp.TypeChange, error) {
	if args.Remover == nil {
		return vmp.TypeChange{}, fmt.Errorf("%w: remover", ErrMissingArgument)
	}
	if args.Remover.TreeHash() != t.RemoverHash {
		return vmp.TypeChange{}, ErrRemoverMismatch
	}
	return vmp.TypeChange{Type: t, Puzzle: args.Remover, Solution: orNil(args.RemoverSolution)}, nil
}
