package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/contract-patterns/vmp-go-base/assets"
	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

/*
The description files are JSON, hashes and serialized programs are "0x"
prefixed hex strings.
*/
type (
	typeDesc struct {
		Kind         assets.Kind      `json:"kind"`
		LauncherHash types.Bytes32    `json:"launcherHash"` // cat, nft
		OriginCoinID types.CoinID     `json:"originCoinId"` // singleton
		RemoverHash  types.Bytes32    `json:"removerHash"`
		Environment  *program.Program `json:"environment,omitempty"`
	}

	vmpDesc struct {
		InnerPuzzle *program.Program `json:"innerPuzzle"`
		Types       []typeDesc       `json:"types"`
	}

	changeDesc struct {
		Type       typeDesc         `json:"type"`
		Conditions *program.Program `json:"conditions,omitempty"` // output of basic and singleton launchers, basic remover
		Puzzle     *program.Program `json:"puzzle,omitempty"`     // launcher or remover chosen by the issuer
		Solution   *program.Program `json:"solution,omitempty"`
	}

	spendDesc struct {
		ParentID     types.CoinID       `json:"parentId"`
		Amount       uint64             `json:"amount"`
		VMP          vmpDesc            `json:"vmp"`
		LineageProof *vmp.LineageProof  `json:"lineageProof,omitempty"`
		Additions    []changeDesc       `json:"additions,omitempty"`
		Removals     []changeDesc       `json:"removals,omitempty"`
		Conditions   []*program.Program `json:"conditions"`
		// when not set the inner puzzle is expected to output its solution
		InnerSolution *program.Program `json:"innerSolution,omitempty"`
	}

	batchDesc struct {
		Spends []spendDesc `json:"spends"`
	}
)

var errInvalidSelector = errors.New("invalid type selector")

func readJSON(fileName string, v any) error {
	if fileName == "" {
		return errors.New("file name is required")
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", fileName, err)
	}
	return nil
}

func (d *typeDesc) assetType(reg *puzzles.Registry) (vmp.AssetType, error) {
	v, err := assets.New(d.Kind, reg)
	if err != nil {
		return vmp.AssetType{}, err
	}
	return v.New(assets.NewParams{
		LauncherHash: d.LauncherHash,
		OriginCoinID: d.OriginCoinID,
		RemoverHash:  d.RemoverHash,
		Environment:  d.Environment,
	})
}

func (d *vmpDesc) build(reg *puzzles.Registry) (*vmp.VMP, error) {
	if d.InnerPuzzle == nil {
		return nil, errors.New("inner puzzle is missing")
	}
	list := make([]vmp.AssetType, len(d.Types))
	for i := range d.Types {
		t, err := d.Types[i].assetType(reg)
		if err != nil {
			return nil, fmt.Errorf("type [%d]: %w", i, err)
		}
		list[i] = t
	}
	return reg.Meta().New(d.InnerPuzzle, list...), nil
}

func (d *changeDesc) launch(reg *puzzles.Registry, originCoinID types.CoinID) (vmp.TypeChange, error) {
	t, err := d.Type.assetType(reg)
	if err != nil {
		return vmp.TypeChange{}, err
	}
	v, err := assets.New(d.Type.Kind, reg)
	if err != nil {
		return vmp.TypeChange{}, err
	}
	return v.Launch(t, assets.LaunchArgs{
		Conditions:       d.Conditions,
		OriginCoinID:     originCoinID,
		Launcher:         d.Puzzle,
		LauncherSolution: d.Solution,
	})
}

func (d *changeDesc) remove(reg *puzzles.Registry) (vmp.TypeChange, error) {
	t, err := d.Type.assetType(reg)
	if err != nil {
		return vmp.TypeChange{}, err
	}
	v, err := assets.New(d.Type.Kind, reg)
	if err != nil {
		return vmp.TypeChange{}, err
	}
	return v.Remove(t, assets.RemoveArgs{
		Conditions:      d.Conditions,
		Remover:         d.Puzzle,
		RemoverSolution: d.Solution,
	})
}

/*
build returns the spend with its type changes. The singleton types added by
the spend originate from the spent coin.
*/
func (d *spendDesc) build(reg *puzzles.Registry) (*vmp.VMPSpend, error) {
	puzzle, err := d.VMP.build(reg)
	if err != nil {
		return nil, err
	}
	spend := vmp.NewSpend(types.NewCoin(d.ParentID, puzzle.TreeHash(), d.Amount), puzzle)
	spend.LineageProof = d.LineageProof
	for i := range d.Additions {
		tc, err := d.Additions[i].launch(reg, spend.Coin.ID())
		if err != nil {
			return nil, fmt.Errorf("addition [%d]: %w", i, err)
		}
		spend.TypeAdditions = append(spend.TypeAdditions, tc)
	}
	for i := range d.Removals {
		tc, err := d.Removals[i].remove(reg)
		if err != nil {
			return nil, fmt.Errorf("removal [%d]: %w", i, err)
		}
		spend.TypeRemovals = append(spend.TypeRemovals, tc)
	}
	if err := spend.Validate(); err != nil {
		return nil, err
	}
	return spend, nil
}

/*
innerSolution returns the inner solution of the spend and the conditions its
inner puzzle outputs. When the description doesn't have an inner solution the
conditions are the solution and the security condition is added to them when
the spend changes types.
*/
func (d *spendDesc) innerSolution(spend *vmp.VMPSpend) (solution, output *program.Program) {
	conditions := d.Conditions
	if d.InnerSolution != nil {
		return d.InnerSolution, program.List(conditions...)
	}
	if len(spend.TypeAdditions) > 0 || len(spend.TypeRemovals) > 0 {
		conditions = append([]*program.Program{vmp.SecurityCondition(spend)}, conditions...)
	}
	output = program.List(conditions...)
	return output, output
}

/*
parseSelector parses "kind[:index]", index is the position among the types
of the kind. Index -1 selects all the types of the kind.
*/
func parseSelector(s string) (assets.Kind, int, error) {
	name, idx, found := strings.Cut(s, ":")
	kind, err := assets.ParseKind(name)
	if err != nil {
		return 0, 0, fmt.Errorf("%w %q: %w", errInvalidSelector, s, err)
	}
	if !found {
		return kind, -1, nil
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return 0, 0, fmt.Errorf("%w %q: index must be non-negative integer", errInvalidSelector, s)
	}
	return kind, n, nil
}

// selectTypes returns the types of the VMP matching the selectors.
func selectTypes(d *vmpDesc, puzzle *vmp.VMP, selectors []string) ([]vmp.AssetType, error) {
	var res []vmp.AssetType
	for _, s := range selectors {
		kind, idx, err := parseSelector(s)
		if err != nil {
			return nil, err
		}
		n := 0
		for i := range d.Types {
			if d.Types[i].Kind != kind {
				continue
			}
			if idx < 0 || idx == n {
				res = append(res, puzzle.Types[i])
			}
			n++
		}
		if idx >= n || n == 0 {
			return nil, fmt.Errorf("%w %q: VMP has %d %s types", errInvalidSelector, s, n, kind)
		}
	}
	return res, nil
}
