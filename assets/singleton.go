package assets

import (
	"fmt"

	"github.com/contract-patterns/vmp-go-base/fungibility"
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

/*
Singleton is an NFT whose launcher is the singleton launcher curried with
the id of the coin the singleton originates from, so there can be only one
type with the launcher hash.

Coins locked with the pay to singleton puzzle (see P2) can be claimed by the
coin carrying the singleton type.
*/
type Singleton struct {
	reg *puzzles.Registry
}

func (s *Singleton) Kind() Kind { return KindSingleton }

func (s *Singleton) New(params NewParams) (vmp.AssetType, error) {
	if params.OriginCoinID.IsZero() {
		return vmp.AssetType{}, fmt.Errorf("%w: origin coin id", ErrMissingArgument)
	}
	return vmp.AssetType{
		LauncherHash: s.reg.SingletonLauncher(params.OriginCoinID).TreeHash(),
		Environment:  orNil(params.Environment),
		PreValidator: s.reg.NFTPreValidator(),
		Validator:    s.reg.NFTValidator(),
		RemoverHash:  params.RemoverHash,
	}, nil
}

// Launch returns the change with launcher solution (inline_type_tail conditions).
func (s *Singleton) Launch(t vmp.AssetType, args LaunchArgs) (vmp.TypeChange, error) {
	launcher := s.reg.SingletonLauncher(args.OriginCoinID)
	if launcher.TreeHash() != t.LauncherHash {
		return vmp.TypeChange{}, fmt.Errorf("%w: singleton launcher of coin %s", ErrLauncherMismatch, args.OriginCoinID)
	}
	log.Debugf("singleton launcher %s: origin coin %s", t.LauncherHash, args.OriginCoinID)
	return vmp.TypeChange{
		Type:     t,
		Puzzle:   launcher,
		Solution: program.List(t.InlineTail(), orNil(args.Conditions)),
	}, nil
}

func (s *Singleton) Remove(t vmp.AssetType, args RemoveArgs) (vmp.TypeChange, error) {
	return removeWith(t, args)
}

// Solve writes the fungibility ring slots of the singleton types.
func (s *Singleton) Solve(spends []*vmp.VMPSpend, runner program.Runner) error {
	return fungibility.Solve(spends, fungibility.NFTRule(s.reg), runner)
}

// P2 returns the pay to singleton puzzle of the singleton with the launcher hash.
func (s *Singleton) P2(launcherHash types.Bytes32) *program.Program {
	return s.reg.P2Singleton().Curry(
		program.FromBytes32(s.reg.Meta().ModHash),
		program.FromBytes32(s.reg.NFTPreValidator().TreeHash()),
		program.FromBytes32(launcherHash),
	)
}

/*
SolveP2 returns solution of the pay to singleton coin claimed by the spend
of the singleton:

	((parent types_hash inner_puzzle_hash amount) p2_coin_id puzzle solution)

The puzzle with solution is run by the p2 coin, the spend of the singleton
must announce the claim, see P2ClaimAnnouncement.
*/
func (s *Singleton) SolveP2(spend *vmp.VMPSpend, p2Coin *types.Coin, puzzle, solution *program.Program) *program.Program {
	return program.List(
		program.List(
			program.FromBytes32(spend.Coin.ParentID),
			program.FromBytes32(spend.Puzzle.TypesHash()),
			program.FromBytes32(spend.Puzzle.InnerPuzzle.TreeHash()),
			program.FromUint64(spend.Coin.Amount),
		),
		program.FromBytes32(p2Coin.ID()),
		orNil(puzzle),
		orNil(solution),
	)
}

/*
P2ClaimAnnouncement returns the coin announcement the inner puzzle of the
singleton outputs to authorize the p2 coin to run the puzzle with the hash.
*/
func P2ClaimAnnouncement(p2CoinID types.CoinID, puzzleHash types.Bytes32) *program.Program {
	msg := program.Cons(program.FromBytes32(p2CoinID), program.FromBytes32(puzzleHash)).TreeHash()
	return program.List(
		program.FromInt(vmp.CreateCoinAnnouncement),
		program.NewAtom(vmp.NamespacedAnnouncementMessage(vmp.InnerPuzzlePrefix, msg[:])),
	)
}
