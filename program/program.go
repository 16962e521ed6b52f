/*
Package program implements the tree structured value shared by puzzles,
solutions and conditions: every value is either an atom (byte string, the
empty atom is "nil") or a pair of two values. Lists are chains of pairs
terminated by nil.

Program values are immutable. A nil *Program is treated as the nil atom.
*/
package program

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/util"
)

var (
	ErrNotPair       = errors.New("expected pair, got atom")
	ErrNotAtom       = errors.New("expected atom, got pair")
	ErrImproperList  = errors.New("list is not nil terminated")
	ErrInvalidPath   = errors.New("invalid path")
	ErrIntOutOfRange = errors.New("integer out of range")
)

// Nil is the empty atom.
var Nil = &Program{}

type (
	Program struct {
		atom  []byte
		first *Program
		rest  *Program
	}

	// Encoder is implemented by records which have a program representation.
	Encoder interface {
		AsProgram() *Program
	}
)

// NewAtom returns atom holding a copy of b.
func NewAtom(b []byte) *Program {
	return &Program{atom: bytes.Clone(b)}
}

// Cons returns pair (first . rest).
func Cons(first, rest *Program) *Program {
	if first == nil {
		first = Nil
	}
	if rest == nil {
		rest = Nil
	}
	return &Program{first: first, rest: rest}
}

// List returns nil terminated list of the items.
func List(items ...*Program) *Program {
	res := Nil
	for i := len(items) - 1; i >= 0; i-- {
		res = Cons(items[i], res)
	}
	return res
}

func FromInt(v int64) *Program {
	return &Program{atom: util.EncodeInt64(v)}
}

func FromUint64(v uint64) *Program {
	return &Program{atom: util.EncodeUint64(v)}
}

func FromBigInt(v *big.Int) *Program {
	return &Program{atom: util.EncodeInt(v)}
}

func FromBytes32(b types.Bytes32) *Program {
	return NewAtom(b[:])
}

func (p *Program) IsAtom() bool {
	return p == nil || p.first == nil
}

func (p *Program) IsPair() bool {
	return !p.IsAtom()
}

func (p *Program) IsNil() bool {
	return p.IsAtom() && len(p.Atom()) == 0
}

/*
Atom returns the atom's bytes or nil when p is a pair. The returned
slice must not be modified.
*/
func (p *Program) Atom() []byte {
	if p == nil || p.first != nil {
		return nil
	}
	return p.atom
}

func (p *Program) First() (*Program, error) {
	if p.IsAtom() {
		return nil, ErrNotPair
	}
	return p.first, nil
}

func (p *Program) Rest() (*Program, error) {
	if p.IsAtom() {
		return nil, ErrNotPair
	}
	return p.rest, nil
}

/*
At navigates into the tree following the path where "f" selects the first and
"r" the rest of a pair, ie "rrf" is the third element of a list.
*/
func (p *Program) At(path string) (*Program, error) {
	cur := p
	for i, c := range path {
		var err error
		switch c {
		case 'f':
			cur, err = cur.First()
		case 'r':
			cur, err = cur.Rest()
		default:
			return nil, fmt.Errorf("%w %q: unexpected character %q", ErrInvalidPath, path, c)
		}
		if err != nil {
			return nil, fmt.Errorf("path %q position %d: %w", path, i, err)
		}
	}
	return cur, nil
}

// ListItems returns the elements of a nil terminated list.
func (p *Program) ListItems() ([]*Program, error) {
	var items []*Program
	cur := p
	for cur.IsPair() {
		items = append(items, cur.first)
		cur = cur.rest
	}
	if !cur.IsNil() {
		return nil, ErrImproperList
	}
	return items, nil
}

// AsBigInt interprets the atom as two's complement signed integer.
func (p *Program) AsBigInt() (*big.Int, error) {
	if p.IsPair() {
		return nil, ErrNotAtom
	}
	return util.DecodeInt(p.Atom()), nil
}

func (p *Program) AsInt64() (int64, error) {
	v, err := p.AsBigInt()
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, fmt.Errorf("%w: %s does not fit into int64", ErrIntOutOfRange, v)
	}
	return v.Int64(), nil
}

func (p *Program) AsUint64() (uint64, error) {
	v, err := p.AsBigInt()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit into uint64", ErrIntOutOfRange, v)
	}
	return v.Uint64(), nil
}

func (p *Program) AsBytes32() (types.Bytes32, error) {
	if p.IsPair() {
		return types.Bytes32{}, ErrNotAtom
	}
	return types.BytesToBytes32(p.Atom())
}

// Equal returns true when p and o are structurally equal.
func (p *Program) Equal(o *Program) bool {
	if p.IsAtom() || o.IsAtom() {
		return p.IsAtom() && o.IsAtom() && bytes.Equal(p.Atom(), o.Atom())
	}
	return p.first.Equal(o.first) && p.rest.Equal(o.rest)
}

/*
String returns human readable form of the program: atoms are printed as
0x prefixed hex (nil as "()"), lists in parentheses and improper tails
after a dot.
*/
func (p *Program) String() string {
	var sb strings.Builder
	p.format(&sb)
	return sb.String()
}

func (p *Program) format(sb *strings.Builder) {
	if p.IsAtom() {
		if p.IsNil() {
			sb.WriteString("()")
			return
		}
		sb.WriteString("0x")
		sb.WriteString(hex.EncodeToString(p.Atom()))
		return
	}
	sb.WriteByte('(')
	cur := p
	for {
		cur.first.format(sb)
		cur = cur.rest
		if cur.IsPair() {
			sb.WriteByte(' ')
			continue
		}
		if !cur.IsNil() {
			sb.WriteString(" . ")
			cur.format(sb)
		}
		break
	}
	sb.WriteByte(')')
}

/*
To converts v to program:
  - nil, *Program and Encoder implementations;
  - []byte, string and types.Bytes32 become atoms;
  - integers (including *big.Int) use the VM's integer encoding, true is 1 and false is nil;
  - []*Program and []any become lists.
*/
func To(v any) (*Program, error) {
	switch x := v.(type) {
	case nil:
		return Nil, nil
	case *Program:
		if x == nil {
			return Nil, nil
		}
		return x, nil
	case Encoder:
		return x.AsProgram(), nil
	case []byte:
		return NewAtom(x), nil
	case string:
		return NewAtom([]byte(x)), nil
	case types.Bytes32:
		return FromBytes32(x), nil
	case bool:
		if x {
			return FromInt(1), nil
		}
		return Nil, nil
	case int:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint8:
		return FromUint64(uint64(x)), nil
	case uint16:
		return FromUint64(uint64(x)), nil
	case uint32:
		return FromUint64(uint64(x)), nil
	case uint64:
		return FromUint64(x), nil
	case *big.Int:
		if x == nil {
			return Nil, nil
		}
		return FromBigInt(x), nil
	case []*Program:
		return List(x...), nil
	case []any:
		items := make([]*Program, len(x))
		for i, item := range x {
			p, err := To(item)
			if err != nil {
				return nil, fmt.Errorf("list item [%d]: %w", i, err)
			}
			items[i] = p
		}
		return List(items...), nil
	default:
		return nil, fmt.Errorf("can't convert %T to program", v)
	}
}

// MustTo is like To but panics on error, meant for static data.
func MustTo(v any) *Program {
	p, err := To(v)
	if err != nil {
		panic(err)
	}
	return p
}

// ListLen returns number of elements of a (possibly improper) list.
func (p *Program) ListLen() int {
	n := 0
	for cur := p; cur.IsPair(); cur = cur.rest {
		n++
	}
	return n
}

// int conversion helper for size computations, panics when v doesn't fit
func intOf(v uint64) int {
	if v > math.MaxInt {
		panic(fmt.Errorf("%w: %d", ErrIntOutOfRange, v))
	}
	return int(v)
}
