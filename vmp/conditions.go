package vmp

import (
	"bytes"
	"fmt"

	"github.com/contract-patterns/vmp-go-base/program"
)

// Condition opcodes used by the meta puzzle and the fungibility validators.
const (
	Remark                   = 1
	CreateCoin               = 51
	CreateCoinAnnouncement   = 60
	CreatePuzzleAnnouncement = 62
)

const (
	// NamespacePrefix scopes the announcements made on behalf of the layers of the VMP.
	NamespacePrefix = "namespaces"

	// InnerPuzzlePrefix follows NamespacePrefix in the announcements of the inner puzzle.
	InnerPuzzlePrefix byte = 0x01
)

// Condition is one item of the condition list output by a puzzle.
type Condition struct {
	Opcode int64
	Args   []*program.Program
}

func (c Condition) AsProgram() *program.Program {
	return program.Cons(program.FromInt(c.Opcode), program.List(c.Args...))
}

/*
ParseConditions splits the output of a puzzle into conditions. Arguments
beyond a proper list tail are ignored the way the VM ignores them.
*/
func ParseConditions(output *program.Program) ([]Condition, error) {
	items, err := output.ListItems()
	if err != nil {
		return nil, fmt.Errorf("conditions: %w", err)
	}
	res := make([]Condition, 0, len(items))
	for i, item := range items {
		op, err := item.First()
		if err != nil {
			return nil, fmt.Errorf("condition [%d]: %w", i, err)
		}
		opcode, err := op.AsInt64()
		if err != nil {
			return nil, fmt.Errorf("condition [%d] opcode: %w", i, err)
		}
		rest, _ := item.Rest()
		var args []*program.Program
		for cur := rest; cur.IsPair(); {
			first, _ := cur.First()
			args = append(args, first)
			cur, _ = cur.Rest()
		}
		res = append(res, Condition{Opcode: opcode, Args: args})
	}
	return res, nil
}

// SecurityCondition returns the (1 security_hash) condition the inner puzzle must output.
func SecurityCondition(s *VMPSpend) *program.Program {
	h := s.SecurityHash()
	return program.List(program.FromInt(Remark), program.FromBytes32(h))
}

// NamespacedAnnouncementMessage returns NamespacePrefix || prefix || msg.
func NamespacedAnnouncementMessage(prefix byte, msg []byte) []byte {
	res := make([]byte, 0, len(NamespacePrefix)+1+len(msg))
	res = append(res, NamespacePrefix...)
	res = append(res, prefix)
	return append(res, msg...)
}

/*
CheckInnerConditions returns ErrReservedAnnouncement when the inner puzzle
output has a coin or puzzle announcement in the reserved namespace which is
not scoped with InnerPuzzlePrefix. The VM enforces the same rule, this is a
check before submission.
*/
func CheckInnerConditions(output *program.Program) error {
	conds, err := ParseConditions(output)
	if err != nil {
		return err
	}
	for i, c := range conds {
		if c.Opcode != CreateCoinAnnouncement && c.Opcode != CreatePuzzleAnnouncement {
			continue
		}
		if len(c.Args) == 0 || c.Args[0].IsPair() {
			continue
		}
		msg := c.Args[0].Atom()
		if !bytes.HasPrefix(msg, []byte(NamespacePrefix)) {
			continue
		}
		if len(msg) <= len(NamespacePrefix) || msg[len(NamespacePrefix)] != InnerPuzzlePrefix {
			return fmt.Errorf("%w: condition [%d] opcode %d", ErrReservedAnnouncement, i, c.Opcode)
		}
	}
	return nil
}
