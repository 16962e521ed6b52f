/*
Package fungibility links the spends of a bundle which share a fungible asset
type into rings and computes the running subtotals the fungibility validators
use to check that the value of the type is conserved by the bundle.
*/
package fungibility

import (
	"fmt"
	"math/big"

	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/puzzles"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

// ringMatch is how the types of the siblings of a ring are compared.
const ringMatch = vmp.IgnoreEnvironment | vmp.IgnoreRemover

type (
	/*
	   Rule describes one fungible type family: the types with the given
	   validators take part in rings and Value extracts the contribution of a
	   CREATE_COIN condition to the subtotal.
	*/
	Rule struct {
		Name             string
		PreValidatorHash types.Bytes32
		ValidatorHash    types.Bytes32
		Value            func(cond vmp.Condition) (*big.Int, error)
	}
)

// CATRule sums the amounts of the created coins.
func CATRule(reg *puzzles.Registry) Rule {
	return Rule{
		Name:             "CAT",
		PreValidatorHash: reg.CATPreValidator().TreeHash(),
		ValidatorHash:    reg.CATValidator().TreeHash(),
		Value:            AmountValue,
	}
}

// NFTRule counts the created coins.
func NFTRule(reg *puzzles.Registry) Rule {
	return Rule{
		Name:             "NFT",
		PreValidatorHash: reg.NFTPreValidator().TreeHash(),
		ValidatorHash:    reg.NFTValidator().TreeHash(),
		Value:            PresenceValue,
	}
}

// AmountValue returns the amount argument of the (51 puzzle_hash amount) condition.
func AmountValue(cond vmp.Condition) (*big.Int, error) {
	if len(cond.Args) < 2 {
		return nil, fmt.Errorf("condition %d has %d arguments, amount missing", cond.Opcode, len(cond.Args))
	}
	v, err := cond.Args[1].AsBigInt()
	if err != nil {
		return nil, fmt.Errorf("condition %d amount: %w", cond.Opcode, err)
	}
	return v, nil
}

// PresenceValue counts every condition as 1.
func PresenceValue(vmp.Condition) (*big.Int, error) {
	return big.NewInt(1), nil
}

// Applies returns true when the type belongs to the family of the rule.
func (r Rule) Applies(t vmp.AssetType) bool {
	return t.PreValidatorHash() == r.PreValidatorHash && t.ValidatorHash() == r.ValidatorHash
}

/*
uniqueTypes returns the types of the spend the rule applies to, de-duplicated
by launcher hash (the first type of a launcher is kept).
*/
func (r Rule) uniqueTypes(spend *vmp.VMPSpend) []vmp.AssetType {
	var res []vmp.AssetType
	seen := make(map[types.Bytes32]struct{})
	for _, t := range spend.Types() {
		if !r.Applies(t) {
			continue
		}
		if _, ok := seen[t.LauncherHash]; ok {
			continue
		}
		seen[t.LauncherHash] = struct{}{}
		res = append(res, t)
	}
	return res
}

func orNil(p *program.Program) *program.Program {
	if p == nil {
		return program.Nil
	}
	return p
}
