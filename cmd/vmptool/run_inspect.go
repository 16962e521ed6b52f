package main

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli"

	"github.com/contract-patterns/vmp-go-base/types"
)

func runPuzzleHash(c *cli.Context) error {
	m := getMetadata(c)
	reg, err := m.registry()
	if err != nil {
		return err
	}

	var desc vmpDesc
	if err := readJSON(c.String("vmp"), &desc); err != nil {
		return err
	}
	puzzle, err := desc.build(reg)
	if err != nil {
		return err
	}

	out := struct {
		PuzzleHash      types.Bytes32 `json:"puzzleHash"`
		TypesHash       types.Bytes32 `json:"typesHash"`
		InnerPuzzleHash types.Bytes32 `json:"innerPuzzleHash"`
		Types           int           `json:"types"`
	}{
		PuzzleHash:      puzzle.TreeHash(),
		TypesHash:       puzzle.TypesHash(),
		InnerPuzzleHash: puzzle.InnerPuzzle.TreeHash(),
		Types:           len(puzzle.Types),
	}
	return printJSON(m.w, out)
}

func runTypeProof(c *cli.Context) error {
	m := getMetadata(c)
	reg, err := m.registry()
	if err != nil {
		return err
	}

	var desc vmpDesc
	if err := readJSON(c.String("vmp"), &desc); err != nil {
		return err
	}
	puzzle, err := desc.build(reg)
	if err != nil {
		return err
	}
	subset, err := selectTypes(&desc, puzzle, c.StringSlice("prove"))
	if err != nil {
		return err
	}

	tp := puzzle.GetTypeProof(subset...)
	out := struct {
		TypeProof     hexutil.Bytes  `json:"typeProof"`
		PuzzleHash    types.Bytes32  `json:"puzzleHash"`
		TypesHash     types.Bytes32  `json:"typesHash"`
		ExplicitTypes int            `json:"explicitTypes"`
		Rolled        *types.Bytes32 `json:"rolled"`
	}{
		TypeProof:     tp.AsProgram().Serialize(),
		PuzzleHash:    tp.PuzzleHash(),
		TypesHash:     tp.TypesHash(),
		ExplicitTypes: len(tp.Types),
		Rolled:        tp.Rolled,
	}
	return printJSON(m.w, out)
}
