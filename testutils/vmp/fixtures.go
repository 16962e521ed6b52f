package vmp

import (
	"crypto/rand"
	"testing"

	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

/*
ACS is the "anyone can spend" puzzle: it outputs its solution as the list of
conditions.
*/
var ACS = program.FromInt(1)

// ACSHash is the puzzle hash of ACS.
var ACSHash = ACS.TreeHash()

var testTemplates = puzzles.Templates{
	MetaPuzzle:              placeholder("validating_meta_puzzle"),
	BasicLauncher:           placeholder("boilerplate launcher"),
	BasicPreValidator:       placeholder("boilerplate pre_validator"),
	BasicValidator:          placeholder("boilerplate validator"),
	BasicRemover:            placeholder("boilerplate remover"),
	FungibilityPreValidator: placeholder("strict_fungibility pre_validator"),
	CATValidator:            placeholder("strict_fungibility cat_validator"),
	NFTValidator:            placeholder("strict_fungibility nft_validator"),
	SingletonLauncher:       placeholder("strict_fungibility singleton_launcher"),
	P2Singleton:             placeholder("strict_fungibility p2_singleton"),
}

/*
Templates returns placeholder puzzle templates: the programs are not
executable but they are distinct, so all the hashes derived from them are
"valid looking".
*/
func Templates() puzzles.Templates {
	return testTemplates
}

// Registry returns registry of the placeholder Templates.
func Registry(t *testing.T) *puzzles.Registry {
	t.Helper()
	reg, err := puzzles.New(testTemplates)
	if err != nil {
		t.Fatal("failed to create puzzle registry:", err)
	}
	return reg
}

func placeholder(name string) *program.Program {
	// (q . "name"), ie a program which returns its name
	return program.Cons(program.FromInt(1), program.NewAtom([]byte(name)))
}

func RandomBytes32(t *testing.T) types.Bytes32 {
	var b types.Bytes32
	if _, err := rand.Read(b[:]); err != nil {
		t.Fatal("failed to generate random bytes:", err)
	}
	return b
}

// NewCoin returns coin with random parent.
func NewCoin(t *testing.T, puzzleHash types.Bytes32, amount uint64) *types.Coin {
	return types.NewCoin(RandomBytes32(t), puzzleHash, amount)
}

// NewSpend returns spend of a new coin locked with VMP of ACS and the types.
func NewSpend(t *testing.T, reg *puzzles.Registry, amount uint64, assetTypes ...vmp.AssetType) *vmp.VMPSpend {
	puzzle := reg.Meta().New(ACS, assetTypes...)
	return vmp.NewSpend(NewCoin(t, puzzle.TreeHash(), amount), puzzle)
}

// CreateCoin returns the (51 puzzle_hash amount) condition.
func CreateCoin(puzzleHash types.Bytes32, amount uint64) *program.Program {
	return program.List(program.FromInt(vmp.CreateCoin), program.FromBytes32(puzzleHash), program.FromUint64(amount))
}

/*
SetConditions makes the ACS inner puzzle of the spend output the conditions
and records the output in the runner.
*/
func SetConditions(runner *program.RecordedRunner, spend *vmp.VMPSpend, conditions ...*program.Program) {
	spend.InnerSolution = program.List(conditions...)
	runner.Record(spend.Puzzle.InnerPuzzle, spend.InnerSolution, spend.InnerSolution)
}
