package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli"

	"github.com/contract-patterns/vmp-go-base/assets"
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

const (
	formatCBOR = "cbor"
	formatJSON = "json"
)

// singletons are NFTs for the fungibility rings so the NFT solver solves them too
var solvedKinds = []assets.Kind{assets.KindCAT, assets.KindNFT}

func runSolve(c *cli.Context) error {
	m := getMetadata(c)
	format := c.String("format")
	if format != formatCBOR && format != formatJSON {
		return fmt.Errorf("unsupported spend bundle format %q", format)
	}
	reg, err := m.registry()
	if err != nil {
		return err
	}

	var desc batchDesc
	if err := readJSON(c.String("batch"), &desc); err != nil {
		return err
	}
	spends, runner, err := buildBatch(&desc, reg)
	if err != nil {
		return err
	}
	bundle, err := solveBatch(spends, runner, reg)
	if err != nil {
		return err
	}

	type spendInfo struct {
		CoinID       types.CoinID  `json:"coinId"`
		SecurityHash types.Bytes32 `json:"securityHash"`
		Types        int           `json:"types"`
	}
	info := make([]spendInfo, len(spends))
	for i, s := range spends {
		info[i] = spendInfo{CoinID: s.Coin.ID(), SecurityHash: s.SecurityHash(), Types: len(s.Types())}
	}
	if err := printJSON(m.w, info); err != nil {
		return err
	}
	return writeBundle(m, bundle, c.String("out"), format)
}

// buildBatch builds the spends and records the output of their inner puzzles.
func buildBatch(desc *batchDesc, reg *puzzles.Registry) ([]*vmp.VMPSpend, *program.RecordedRunner, error) {
	if len(desc.Spends) == 0 {
		return nil, nil, fmt.Errorf("batch has no spends")
	}
	runner := program.NewRecordedRunner()
	spends := make([]*vmp.VMPSpend, len(desc.Spends))
	for i := range desc.Spends {
		d := &desc.Spends[i]
		spend, err := d.build(reg)
		if err != nil {
			return nil, nil, fmt.Errorf("spend [%d]: %w", i, err)
		}
		solution, output := d.innerSolution(spend)
		if err := vmp.CheckInnerConditions(output); err != nil {
			return nil, nil, fmt.Errorf("spend [%d]: %w", i, err)
		}
		spend.InnerSolution = solution
		runner.Record(spend.Puzzle.InnerPuzzle, solution, output)
		spends[i] = spend
	}
	return spends, runner, nil
}

func solveBatch(spends []*vmp.VMPSpend, runner program.Runner, reg *puzzles.Registry) (*types.SpendBundle, error) {
	for _, kind := range solvedKinds {
		v, err := assets.New(kind, reg)
		if err != nil {
			return nil, err
		}
		if err := v.(assets.Solver).Solve(spends, runner); err != nil {
			return nil, fmt.Errorf("solving %s rings: %w", kind, err)
		}
	}

	bundle := types.NewSpendBundle()
	for i, s := range spends {
		cs, err := s.ToCoinSpend()
		if err != nil {
			return nil, fmt.Errorf("spend [%d]: %w", i, err)
		}
		bundle.CoinSpends = append(bundle.CoinSpends, cs)
	}
	if err := bundle.IsValid(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func writeBundle(m *metadata, bundle *types.SpendBundle, fileName, format string) error {
	var data []byte
	var err error
	switch format {
	case formatJSON:
		data, err = json.MarshalIndent(bundle, "", "  ")
	default:
		data, err = types.Cbor.Marshal(bundle)
	}
	if err != nil {
		return fmt.Errorf("encoding spend bundle: %w", err)
	}

	if fileName == "" {
		if format == formatCBOR {
			data = []byte(hexutil.Encode(data))
		}
		_, err = fmt.Fprintf(m.w, "%s\n", data)
		return err
	}
	if err := os.WriteFile(fileName, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(m.e, "spend bundle with %d coin spends written to %s\n", len(bundle.CoinSpends), fileName)
	return nil
}
