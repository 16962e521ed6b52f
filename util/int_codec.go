package util

import (
	"math/big"
)

/*
EncodeInt returns the minimal big-endian two's complement encoding of v,
zero is encoded as an empty byte slice.
*/
func EncodeInt(v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return []byte{}
	case 1:
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			return append([]byte{0}, b...)
		}
		return b
	}

	// find the shortest length L for which -2^(8L-1) <= v
	size := (v.BitLen() + 7) / 8
	if size == 0 {
		size = 1
	}
	lowest := new(big.Int).Lsh(big.NewInt(1), uint(8*size-1))
	lowest.Neg(lowest)
	if v.Cmp(lowest) < 0 {
		size++
	}
	// two's complement: 2^(8L) + v
	m := new(big.Int).Lsh(big.NewInt(1), uint(8*size))
	m.Add(m, v)
	b := m.Bytes()
	res := make([]byte, size)
	copy(res[size-len(b):], b)
	return res
}

// EncodeUint64 is EncodeInt for unsigned values.
func EncodeUint64(v uint64) []byte {
	return EncodeInt(new(big.Int).SetUint64(v))
}

// EncodeInt64 is EncodeInt for signed values.
func EncodeInt64(v int64) []byte {
	return EncodeInt(big.NewInt(v))
}

/*
DecodeInt interprets b as big-endian two's complement number. Empty slice
decodes to zero.
*/
func DecodeInt(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return v
}
