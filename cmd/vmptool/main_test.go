package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/contract-patterns/vmp-go-base/assets"
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	testvmp "github.com/contract-patterns/vmp-go-base/testutils/vmp"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

// writePuzzleDir writes the placeholder templates into a temporary directory.
func writePuzzleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	tmpl := testvmp.Templates()
	for name, p := range map[string]*program.Program{
		puzzles.MetaPuzzleFile:              tmpl.MetaPuzzle,
		puzzles.BasicLauncherFile:           tmpl.BasicLauncher,
		puzzles.BasicPreValidatorFile:       tmpl.BasicPreValidator,
		puzzles.BasicValidatorFile:          tmpl.BasicValidator,
		puzzles.BasicRemoverFile:            tmpl.BasicRemover,
		puzzles.FungibilityPreValidatorFile: tmpl.FungibilityPreValidator,
		puzzles.CATValidatorFile:            tmpl.CATValidator,
		puzzles.NFTValidatorFile:            tmpl.NFTValidator,
		puzzles.SingletonLauncherFile:       tmpl.SingletonLauncher,
		puzzles.P2SingletonFile:             tmpl.P2Singleton,
	} {
		fn := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(fn), 0o755))
		require.NoError(t, os.WriteFile(fn, []byte(hex.EncodeToString(p.Serialize())), 0o600))
	}
	return dir
}

func writeJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	fn := filepath.Join(t.TempDir(), "desc.json")
	require.NoError(t, os.WriteFile(fn, b, 0o600))
	return fn
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(envPuzzleDir, "")
	t.Setenv(envLogLevel, "")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := newApp(stdout, stderr).Run(append([]string{"vmptool", "--log-level", "off"}, args...))
	return stdout.String(), err
}

func testVMPDesc(t *testing.T) vmpDesc {
	return vmpDesc{
		InnerPuzzle: testvmp.ACS,
		Types: []typeDesc{
			{Kind: assets.KindBasic},
			{Kind: assets.KindCAT, LauncherHash: testvmp.RandomBytes32(t), RemoverHash: testvmp.RandomBytes32(t)},
			{Kind: assets.KindNFT, LauncherHash: testvmp.RandomBytes32(t), RemoverHash: testvmp.RandomBytes32(t), Environment: program.FromInt(3)},
			{Kind: assets.KindCAT, LauncherHash: testvmp.RandomBytes32(t), RemoverHash: testvmp.RandomBytes32(t)},
		},
	}
}

func Test_PuzzleHash(t *testing.T) {
	dir := writePuzzleDir(t)
	desc := testVMPDesc(t)
	fn := writeJSON(t, desc)

	out, err := runApp(t, "--puzzle-dir", dir, "puzzle-hash", "--vmp", fn)
	require.NoError(t, err)

	var res struct {
		PuzzleHash      types.Bytes32 `json:"puzzleHash"`
		TypesHash       types.Bytes32 `json:"typesHash"`
		InnerPuzzleHash types.Bytes32 `json:"innerPuzzleHash"`
		Types           int           `json:"types"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	reg := testvmp.Registry(t)
	puzzle, err := desc.build(reg)
	require.NoError(t, err)
	require.Equal(t, puzzle.TreeHash(), res.PuzzleHash)
	require.Equal(t, puzzle.TypesHash(), res.TypesHash)
	require.Equal(t, testvmp.ACSHash, res.InnerPuzzleHash)
	require.Equal(t, 4, res.Types)
	require.Equal(t, puzzle.Construct().TreeHash(), res.PuzzleHash)
}

func Test_TypeProof(t *testing.T) {
	dir := writePuzzleDir(t)
	desc := testVMPDesc(t)
	fn := writeJSON(t, desc)
	reg := testvmp.Registry(t)
	puzzle, err := desc.build(reg)
	require.NoError(t, err)

	type result struct {
		TypeProof     hexutil.Bytes  `json:"typeProof"`
		PuzzleHash    types.Bytes32  `json:"puzzleHash"`
		ExplicitTypes int            `json:"explicitTypes"`
		Rolled        *types.Bytes32 `json:"rolled"`
	}

	t.Run("first CAT", func(t *testing.T) {
		out, err := runApp(t, "--puzzle-dir", dir, "type-proof", "--vmp", fn, "--prove", "cat:0")
		require.NoError(t, err)
		var res result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		require.Equal(t, puzzle.TreeHash(), res.PuzzleHash)
		require.Equal(t, 2, res.ExplicitTypes)
		require.NotNil(t, res.Rolled)

		exp := puzzle.GetTypeProof(puzzle.Types[1]).AsProgram().Serialize()
		require.EqualValues(t, exp, res.TypeProof)
	})

	t.Run("all CATs", func(t *testing.T) {
		out, err := runApp(t, "--puzzle-dir", dir, "type-proof", "--vmp", fn, "--prove", "cat")
		require.NoError(t, err)
		var res result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		require.Equal(t, puzzle.TreeHash(), res.PuzzleHash)
		require.Equal(t, 4, res.ExplicitTypes)
		require.Nil(t, res.Rolled)
	})

	t.Run("nothing to prove", func(t *testing.T) {
		out, err := runApp(t, "--puzzle-dir", dir, "type-proof", "--vmp", fn)
		require.NoError(t, err)
		var res result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		require.Equal(t, puzzle.TreeHash(), res.PuzzleHash)
		require.Zero(t, res.ExplicitTypes)
	})

	t.Run("invalid selector", func(t *testing.T) {
		for _, sel := range []string{"cat:2", "singleton", "token", "nft:-1", "nft:x"} {
			_, err := runApp(t, "--puzzle-dir", dir, "type-proof", "--vmp", fn, "--prove", sel)
			require.ErrorIs(t, err, errInvalidSelector, "selector %q", sel)
		}
	})
}

func Test_Solve(t *testing.T) {
	dir := writePuzzleDir(t)
	cat := typeDesc{Kind: assets.KindCAT, LauncherHash: testvmp.RandomBytes32(t), RemoverHash: testvmp.RandomBytes32(t)}
	launcher := program.List(program.FromInt(1), program.NewAtom([]byte("mint")))
	minted := typeDesc{Kind: assets.KindCAT, LauncherHash: launcher.TreeHash(), RemoverHash: testvmp.RandomBytes32(t)}
	batch := batchDesc{Spends: []spendDesc{
		{
			ParentID:   testvmp.RandomBytes32(t),
			Amount:     100,
			VMP:        vmpDesc{InnerPuzzle: testvmp.ACS, Types: []typeDesc{cat}},
			Conditions: []*program.Program{testvmp.CreateCoin(testvmp.ACSHash, 60), testvmp.CreateCoin(testvmp.ACSHash, 40)},
		},
		{
			ParentID: testvmp.RandomBytes32(t),
			Amount:   0,
			VMP:      vmpDesc{InnerPuzzle: testvmp.ACS, Types: []typeDesc{cat}},
		},
		{
			// mints a new CAT, the security condition is added by the tool
			ParentID:   testvmp.RandomBytes32(t),
			Amount:     5,
			VMP:        vmpDesc{InnerPuzzle: testvmp.ACS},
			Additions:  []changeDesc{{Type: minted, Puzzle: launcher}},
			Conditions: []*program.Program{testvmp.CreateCoin(testvmp.ACSHash, 5)},
		},
	}}
	fn := writeJSON(t, batch)

	t.Run("json", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "bundle.json")
		out, err := runApp(t, "--puzzle-dir", dir, "solve", "--batch", fn, "--format", "json", "--out", outFile)
		require.NoError(t, err)

		var info []struct {
			CoinID       types.CoinID  `json:"coinId"`
			SecurityHash types.Bytes32 `json:"securityHash"`
			Types        int           `json:"types"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		require.Len(t, info, 3)
		require.Equal(t, 1, info[2].Types)

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)
		var bundle types.SpendBundle
		require.NoError(t, json.Unmarshal(data, &bundle))
		require.NoError(t, bundle.IsValid())
		require.Len(t, bundle.CoinSpends, 3)
		for i, cs := range bundle.CoinSpends {
			require.Equal(t, info[i].CoinID, cs.Coin.ID())
		}
	})

	t.Run("cbor", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "bundle.cbor")
		_, err := runApp(t, "--puzzle-dir", dir, "solve", "--batch", fn, "--out", outFile)
		require.NoError(t, err)

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)
		var bundle types.SpendBundle
		require.NoError(t, types.Cbor.Unmarshal(data, &bundle))
		require.Len(t, bundle.CoinSpends, 3)

		// the minted CAT forms a ring of one
		spends, runner, err := buildBatch(&batch, testvmp.Registry(t))
		require.NoError(t, err)
		_, err = solveBatch(spends, runner, testvmp.Registry(t))
		require.NoError(t, err)
		require.Len(t, spends[2].TypeProofs, 1)
		require.Equal(t, spends[2].Coin.ID(), bundle.CoinSpends[2].Coin.ID())
		require.EqualValues(t, bundle.CoinSpends[2].Solution, mustSolution(t, spends[2]))
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := runApp(t, "--puzzle-dir", dir, "solve", "--batch", fn, "--format", "xml")
		require.EqualError(t, err, `unsupported spend bundle format "xml"`)
	})

	t.Run("reserved announcement", func(t *testing.T) {
		bad := batchDesc{Spends: []spendDesc{{
			ParentID: testvmp.RandomBytes32(t),
			Amount:   1,
			VMP:      vmpDesc{InnerPuzzle: testvmp.ACS},
			Conditions: []*program.Program{
				program.List(program.FromInt(vmp.CreateCoinAnnouncement), program.NewAtom([]byte(vmp.NamespacePrefix+"x"))),
			},
		}}}
		_, err := runApp(t, "--puzzle-dir", dir, "solve", "--batch", writeJSON(t, bad))
		require.ErrorIs(t, err, vmp.ErrReservedAnnouncement)
	})
}

func mustSolution(t *testing.T, s *vmp.VMPSpend) []byte {
	t.Helper()
	sol, err := s.Solution()
	require.NoError(t, err)
	return sol.Serialize()
}

func Test_Configuration(t *testing.T) {
	_, err := runApp(t, "puzzle-hash", "--vmp", "none.json")
	require.ErrorIs(t, err, errMissingPuzzleDir)

	stdout := &bytes.Buffer{}
	err = newApp(stdout, &bytes.Buffer{}).Run([]string{"vmptool", "--log-level", "loud", "version"})
	require.EqualError(t, err, `invalid log level "loud"`)

	t.Setenv(envLogLevel, "debug")
	t.Setenv(envPuzzleDir, writePuzzleDir(t))
	desc := testVMPDesc(t)
	stdout.Reset()
	err = newApp(stdout, &bytes.Buffer{}).Run([]string{"vmptool", "puzzle-hash", "--vmp", writeJSON(t, desc)})
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "puzzleHash")
}
