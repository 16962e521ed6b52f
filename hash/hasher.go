package hash

import (
	"crypto"
	"fmt"
	"hash"

	"github.com/fxamacker/cbor/v2"
)

/*
Hasher hashes values by their core deterministic CBOR encoding. It is used
for the identifiers of export records (ie spend bundle hash), puzzle and type
hashes are always tree hashes (see TreeHashAtom and TreeHashPair).

The first encoding or write error is kept and returned by Sum, values written
after the error are ignored.
*/
type Hasher struct {
	h   hash.Hash
	enc *cbor.Encoder
	err error
}

func New(h hash.Hash) *Hasher {
	return &Hasher{h: h, enc: encMode.NewEncoder(h)}
}

// Values returns the hash of the CBOR encodings of the values.
func Values(algorithm crypto.Hash, values ...any) ([]byte, error) {
	h := New(algorithm.New())
	for _, v := range values {
		h.Write(v)
	}
	return h.Sum()
}

// Write adds the CBOR encoding of v to the hash.
func (h *Hasher) Write(v any) {
	if h.err == nil {
		h.err = h.enc.Encode(v)
	}
}

// WriteRaw adds the bytes to the hash as is.
func (h *Hasher) WriteRaw(b []byte) {
	if h.err == nil {
		_, h.err = h.h.Write(b)
	}
}

// Reset clears the hash state and the error.
func (h *Hasher) Reset() {
	h.h.Reset()
	h.enc = encMode.NewEncoder(h.h)
	h.err = nil
}

func (h *Hasher) Size() int { return h.h.Size() }

// Sum returns the hash and the first error, the hash is not valid when the error is not nil.
func (h *Hasher) Sum() ([]byte, error) {
	return h.h.Sum(nil), h.err
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("initializing CBOR encoding mode: %w", err))
	}
	return em
}()
