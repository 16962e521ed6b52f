package hash

import (
	"crypto/sha256"
)

// Domain separation prefixes of the tree hash. Changing either of these
// changes every puzzle hash and is a protocol version change.
const (
	AtomPrefix byte = 0x01
	PairPrefix byte = 0x02
)

// NilTreeHash is the tree hash of the empty atom (nil).
var NilTreeHash = TreeHashAtom(nil)

// TreeHashAtom returns sha256(0x01 || atom).
func TreeHashAtom(atom []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{AtomPrefix})
	h.Write(atom)
	var res [32]byte
	h.Sum(res[:0])
	return res
}

// TreeHashPair returns sha256(0x02 || left || right) where left and right
// are the tree hashes of the pair's children.
func TreeHashPair(left, right [32]byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{PairPrefix})
	h.Write(left[:])
	h.Write(right[:])
	var res [32]byte
	h.Sum(res[:0])
	return res
}
