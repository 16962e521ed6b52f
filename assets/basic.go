package assets

import (
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

/*
Basic is the boilerplate type: fixed launcher, validators and remover, no
environment. Anyone can add or remove it, the launcher and the remover just
output the conditions of their solution.
*/
type Basic struct {
	reg *puzzles.Registry
}

func (b *Basic) Kind() Kind { return KindBasic }

// New returns the basic type, the params are ignored.
func (b *Basic) New(NewParams) (vmp.AssetType, error) {
	return vmp.AssetType{
		LauncherHash: b.reg.BasicLauncherHash(),
		Environment:  program.Nil,
		PreValidator: b.reg.BasicPreValidator(),
		Validator:    b.reg.BasicValidator(),
		RemoverHash:  b.reg.BasicRemoverHash(),
	}, nil
}

// Launch returns the change with launcher solution (inline_type_tail . conditions).
func (b *Basic) Launch(t vmp.AssetType, args LaunchArgs) (vmp.TypeChange, error) {
	if t.LauncherHash != b.reg.BasicLauncherHash() {
		return vmp.TypeChange{}, ErrLauncherMismatch
	}
	log.Debugf("basic launcher: adding type with validator %s", t.ValidatorHash())
	return vmp.TypeChange{
		Type:     t,
		Puzzle:   b.reg.BasicLauncher(),
		Solution: program.Cons(t.InlineTail(), orNil(args.Conditions)),
	}, nil
}

// Remove returns the change with the conditions as the remover solution.
func (b *Basic) Remove(t vmp.AssetType, args RemoveArgs) (vmp.TypeChange, error) {
	if t.RemoverHash != b.reg.BasicRemoverHash() {
		return vmp.TypeChange{}, ErrRemoverMismatch
	}
	return vmp.TypeChange{
		Type:     t,
		Puzzle:   b.reg.BasicRemover(),
		Solution: orNil(args.Conditions),
	}, nil
}
