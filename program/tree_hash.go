package program

import (
	"errors"

	"github.com/contract-patterns/vmp-go-base/hash"
	"github.com/contract-patterns/vmp-go-base/types"
)

// operators used by the curry construct
var (
	opQuote = []byte{0x01}
	opApply = []byte{0x02}
	opCons  = []byte{0x04}

	quoteTreeHash = hash.TreeHashAtom(opQuote)
	applyTreeHash = hash.TreeHashAtom(opApply)
	consTreeHash  = hash.TreeHashAtom(opCons)

	// tree hash of the environment reference "1" which terminates curried arguments
	envTreeHash = quoteTreeHash
)

var ErrNotCurried = errors.New("program is not a curried program")

/*
TreeHash returns sha256(0x01 || atom) for atoms and sha256(0x02 || left || right)
for pairs. The tree hash of a puzzle is the puzzle hash of the coins locked
with it.
*/
func (p *Program) TreeHash() types.Bytes32 {
	return types.Bytes32(p.treeHash())
}

func (p *Program) treeHash() [32]byte {
	if p.IsAtom() {
		return hash.TreeHashAtom(p.Atom())
	}
	// walk the rest chain iteratively so that long lists don't recurse deep
	var firsts [][32]byte
	cur := p
	for cur.IsPair() {
		firsts = append(firsts, cur.first.treeHash())
		cur = cur.rest
	}
	h := hash.TreeHashAtom(cur.Atom())
	for i := len(firsts) - 1; i >= 0; i-- {
		h = hash.TreeHashPair(firsts[i], h)
	}
	return h
}

/*
Curry partially applies the arguments to the mod:

	(a (q . mod) (c (q . arg1) (c (q . arg2) ... 1)))

When the curried program is run the arguments are prepended to the solution.
*/
func Curry(mod *Program, args ...*Program) *Program {
	fixed := NewAtom(opQuote)
	for i := len(args) - 1; i >= 0; i-- {
		fixed = List(NewAtom(opCons), Cons(NewAtom(opQuote), args[i]), fixed)
	}
	return List(NewAtom(opApply), Cons(NewAtom(opQuote), mod), fixed)
}

// Curry is a shortcut for Curry(p, args...).
func (p *Program) Curry(args ...*Program) *Program {
	return Curry(p, args...)
}

// Uncurry reverses Curry, returns ErrNotCurried if p doesn't have the shape of a curried program.
func Uncurry(p *Program) (mod *Program, args []*Program, err error) {
	items, err := p.ListItems()
	if err != nil || len(items) != 3 || !items[0].Equal(NewAtom(opApply)) {
		return nil, nil, ErrNotCurried
	}
	quoted := items[1]
	if quoted.IsAtom() || !quoted.first.Equal(NewAtom(opQuote)) {
		return nil, nil, ErrNotCurried
	}
	mod = quoted.rest

	cur := items[2]
	for !cur.Equal(NewAtom(opQuote)) {
		parts, err := cur.ListItems()
		if err != nil || len(parts) != 3 || !parts[0].Equal(NewAtom(opCons)) {
			return nil, nil, ErrNotCurried
		}
		if parts[1].IsAtom() || !parts[1].first.Equal(NewAtom(opQuote)) {
			return nil, nil, ErrNotCurried
		}
		args = append(args, parts[1].rest)
		cur = parts[2]
	}
	return mod, args, nil
}

/*
CurriedTreeHash returns the tree hash of Curry(mod, args...) computed from the
hash of the mod and the tree hashes of the arguments only.
*/
func CurriedTreeHash(modHash types.Bytes32, argHashes ...types.Bytes32) types.Bytes32 {
	values := envTreeHash
	for i := len(argHashes) - 1; i >= 0; i-- {
		quotedArg := hash.TreeHashPair(quoteTreeHash, argHashes[i])
		values = hash.TreeHashPair(consTreeHash,
			hash.TreeHashPair(quotedArg, hash.TreeHashPair(values, hash.NilTreeHash)))
	}
	quotedMod := hash.TreeHashPair(quoteTreeHash, modHash)
	return types.Bytes32(hash.TreeHashPair(applyTreeHash,
		hash.TreeHashPair(quotedMod, hash.TreeHashPair(values, hash.NilTreeHash))))
}
