package hash

import (
	"crypto"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// exportRecord mimics the toarray structs hashed for export identifiers.
type exportRecord struct {
	_        struct{} `cbor:",toarray"`
	ParentID []byte
	Amount   uint64
	Reveal   []byte
	invalid  bool
}

var errNotEncodable = errors.New("record is not encodable")

func (r *exportRecord) MarshalCBOR() ([]byte, error) {
	if r.invalid {
		return nil, errNotEncodable
	}
	type alias exportRecord
	return encMode.Marshal((*alias)(r))
}

func Test_Hasher(t *testing.T) {
	rec := &exportRecord{ParentID: []byte{1, 2, 3}, Amount: 1000, Reveal: []byte{0xff, 0x01, 0x80}}

	sum := func(values ...any) []byte {
		h := New(crypto.SHA256.New())
		for _, v := range values {
			h.Write(v)
		}
		res, err := h.Sum()
		require.NoError(t, err)
		return res
	}

	t.Run("same as hashing the encoding", func(t *testing.T) {
		enc, err := encMode.Marshal(rec)
		require.NoError(t, err)
		h := New(crypto.SHA256.New())
		h.WriteRaw(enc)
		raw, err := h.Sum()
		require.NoError(t, err)
		require.Equal(t, raw, sum(rec))
		require.Equal(t, 32, h.Size())
	})

	t.Run("field boundaries are kept", func(t *testing.T) {
		// byte concatenation of the fields is the same, the encoding is not
		other := &exportRecord{ParentID: []byte{1, 2}, Amount: 1000, Reveal: []byte{3, 0xff, 0x01, 0x80}}
		require.NotEqual(t, sum(rec), sum(other))

		other = &exportRecord{ParentID: rec.ParentID, Amount: rec.Amount + 1, Reveal: rec.Reveal}
		require.NotEqual(t, sum(rec), sum(other))
	})

	t.Run("reset", func(t *testing.T) {
		h := New(crypto.SHA256.New())
		h.Write("garbage")
		h.Reset()
		h.Write(rec)
		res, err := h.Sum()
		require.NoError(t, err)
		require.Equal(t, sum(rec), res)
	})

	t.Run("first error is kept", func(t *testing.T) {
		h := New(crypto.SHA256.New())
		h.Write(rec)
		h.Write(&exportRecord{invalid: true})
		h.WriteRaw([]byte{1})
		h.Write(rec)
		_, err := h.Sum()
		require.ErrorIs(t, err, errNotEncodable)

		// reset clears the error
		h.Reset()
		h.Write(rec)
		_, err = h.Sum()
		require.NoError(t, err)
	})
}

func Test_Values(t *testing.T) {
	a := &exportRecord{ParentID: []byte{1}, Amount: 2}
	b := &exportRecord{ParentID: []byte{3}, Amount: 4}

	h := New(crypto.SHA256.New())
	h.Write(a)
	h.Write(b)
	exp, err := h.Sum()
	require.NoError(t, err)

	res, err := Values(crypto.SHA256, a, b)
	require.NoError(t, err)
	require.Equal(t, exp, res)

	res, err = Values(crypto.SHA256, b, a)
	require.NoError(t, err)
	require.NotEqual(t, exp, res)

	_, err = Values(crypto.SHA256, a, &exportRecord{invalid: true})
	require.ErrorIs(t, err, errNotEncodable)
}
