/*
Package assets implements the asset type variants: the basic boilerplate
type, CATs, NFTs and singletons. A variant creates types of its kind and the
type changes which launch (add) and remove them.
*/
package assets

import (
	"errors"
	"fmt"

	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

var (
	ErrUnknownKind      = errors.New("unknown asset kind")
	ErrMissingArgument  = errors.New("missing argument")
	ErrLauncherMismatch = errors.New("launcher doesn't match the type")
	ErrRemoverMismatch  = errors.New("remover doesn't match the type")
	ErrKindMismatch     = errors.New("type is not of the variant's kind")
)

type (
	// NewParams are the parameters of a new type, the fields used depend on the kind.
	NewParams struct {
		LauncherHash types.Bytes32    // CAT, NFT
		OriginCoinID types.CoinID     // Singleton: the coin launching the singleton
		RemoverHash  types.Bytes32    // CAT, NFT, Singleton
		Environment  *program.Program // CAT, NFT, Singleton
	}

	// LaunchArgs are the arguments of adding the type to a coin.
	LaunchArgs struct {
		Conditions       *program.Program // Basic, Singleton: conditions output by the launcher
		OriginCoinID     types.CoinID     // Singleton
		Launcher         *program.Program // CAT, NFT
		LauncherSolution *program.Program // CAT, NFT
	}

	// RemoveArgs are the arguments of removing the type from a coin.
	RemoveArgs struct {
		Conditions      *program.Program // Basic: conditions output by the remover
		Remover         *program.Program // CAT, NFT, Singleton
		RemoverSolution *program.Program // CAT, NFT, Singleton
	}

	Variant interface {
		Kind() Kind
		New(params NewParams) (vmp.AssetType, error)
		Launch(t vmp.AssetType, args LaunchArgs) (vmp.TypeChange, error)
		Remove(t vmp.AssetType, args RemoveArgs) (vmp.TypeChange, error)
	}

	// Solver is implemented by the fungible variants.
	Solver interface {
		Solve(spends []*vmp.VMPSpend, runner program.Runner) error
	}
)

// New returns the variant of the kind.
func New(kind Kind, reg *puzzles.Registry) (Variant, error) {
	switch kind {
	case KindBasic:
		return &Basic{reg: reg}, nil
	case KindCAT:
		return newFungible(KindCAT, reg, reg.CATPreValidator(), reg.CATValidator()), nil
	case KindNFT:
		return newFungible(KindNFT, reg, reg.NFTPreValidator(), reg.NFTValidator()), nil
	case KindSingleton:
		return &Singleton{reg: reg}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// KindOf returns the kind of the type or error when the type isn't of any known kind.
func KindOf(t vmp.AssetType, reg *puzzles.Registry) (Kind, error) {
	pre, val := t.PreValidatorHash(), t.ValidatorHash()
	switch {
	case pre == reg.BasicPreValidator().TreeHash() && val == reg.BasicValidator().TreeHash():
		return KindBasic, nil
	case pre == reg.CATPreValidator().TreeHash() && val == reg.CATValidator().TreeHash():
		return KindCAT, nil
	case pre == reg.NFTPreValidator().TreeHash() && val == reg.NFTValidator().TreeHash():
		// singletons are NFTs launched by the singleton launcher
		return KindNFT, nil
	}
	return 0, fmt.Errorf("%w: type with launcher %s", ErrUnknownKind, t.LauncherHash)
}

func orNil(p *program.Program) *program.Program {
	if p == nil {
		return program.Nil
	}
	return p
}
