package program

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/contract-patterns/vmp-go-base/types/hex"
)

const (
	consBox       byte = 0xff
	nilAtom       byte = 0x80
	maxSingleByte byte = 0x7f

	// atom length must be encodable in 5 byte size prefix
	maxAtomSize = 0x400000000
)

var (
	ErrUnexpectedEnd = errors.New("unexpected end of input")
	ErrTrailingBytes = errors.New("trailing bytes after program")
	ErrBadSizePrefix = errors.New("invalid atom size prefix")
)

/*
Serialize returns the execution VM's binary encoding of the program: 0xff
followed by the two children for pairs, atoms are either a single byte
(values up to 0x7f) or length prefixed byte string, 0x80 is nil.
*/
func (p *Program) Serialize() []byte {
	buf := &bytes.Buffer{}
	p.writeTo(buf)
	return buf.Bytes()
}

func (p *Program) writeTo(buf *bytes.Buffer) {
	// iterate over the rest of the lists, recurse into first elements only
	cur := p
	for cur.IsPair() {
		buf.WriteByte(consBox)
		cur.first.writeTo(buf)
		cur = cur.rest
	}
	writeAtom(buf, cur.Atom())
}

func writeAtom(buf *bytes.Buffer, atom []byte) {
	switch {
	case len(atom) == 0:
		buf.WriteByte(nilAtom)
		return
	case len(atom) == 1 && atom[0] <= maxSingleByte:
		buf.WriteByte(atom[0])
		return
	}

	n := uint64(len(atom))
	switch {
	case n < 0x40:
		buf.WriteByte(0x80 | byte(n))
	case n < 0x2000:
		buf.Write([]byte{0xC0 | byte(n>>8), byte(n)})
	case n < 0x100000:
		buf.Write([]byte{0xE0 | byte(n>>16), byte(n >> 8), byte(n)})
	case n < 0x8000000:
		buf.Write([]byte{0xF0 | byte(n>>24), byte(n >> 16), byte(n >> 8), byte(n)})
	case n < maxAtomSize:
		buf.Write([]byte{0xF8 | byte(n>>32), byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	default:
		panic(fmt.Errorf("atom of %d bytes is too large to serialize", n))
	}
	buf.Write(atom)
}

/*
Deserialize decodes program from its binary encoding, the whole input
must be consumed.
*/
func Deserialize(data []byte) (*Program, error) {
	d := &decoder{buf: data}
	p, err := d.program()
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.buf) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(d.buf)-d.pos)
	}
	return p, nil
}

type decoder struct {
	buf []byte
	pos int
}

/*
program decodes with an explicit stack of the pairs being decoded, the
nesting depth is bounded by the input size and not by the goroutine stack.
*/
func (d *decoder) program() (*Program, error) {
	// first elements of the open pairs, nil while the first element is being decoded
	var open []*Program
	for {
		if d.pos >= len(d.buf) {
			return nil, ErrUnexpectedEnd
		}
		if d.buf[d.pos] == consBox {
			d.pos++
			open = append(open, nil)
			continue
		}
		p, err := d.atom()
		if err != nil {
			return nil, err
		}
		for {
			if len(open) == 0 {
				return p, nil
			}
			top := len(open) - 1
			if open[top] == nil {
				// p is the first element, decode the rest next
				open[top] = p
				break
			}
			p = Cons(open[top], p)
			open = open[:top]
		}
	}
}

func (d *decoder) atom() (*Program, error) {
	b := d.buf[d.pos]
	d.pos++
	switch {
	case b == nilAtom:
		return Nil, nil
	case b <= maxSingleByte:
		return &Program{atom: []byte{b}}, nil
	}

	bitCount := 0
	for mask := byte(0x80); b&mask != 0; mask >>= 1 {
		bitCount++
		b &^= mask
	}
	if bitCount > 5 {
		return nil, fmt.Errorf("%w: %d byte size prefix", ErrBadSizePrefix, bitCount)
	}
	size := uint64(b)
	for i := 1; i < bitCount; i++ {
		if d.pos >= len(d.buf) {
			return nil, ErrUnexpectedEnd
		}
		size = size<<8 | uint64(d.buf[d.pos])
		d.pos++
	}
	if size > uint64(len(d.buf)-d.pos) {
		return nil, fmt.Errorf("%w: atom of %d bytes, %d bytes left", ErrUnexpectedEnd, size, len(d.buf)-d.pos)
	}
	end := d.pos + intOf(size)
	atom := bytes.Clone(d.buf[d.pos:end])
	d.pos = end
	if atom == nil {
		atom = []byte{}
	}
	return &Program{atom: atom}, nil
}

// FromHex decodes "0x" prefixed hex string of the serialized program.
func FromHex(s string) (*Program, error) {
	b, err := hex.Decode([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("decoding hex: %w", err)
	}
	return Deserialize(b)
}

// MarshalText encodes the program as "0x" prefixed hex of its serialization.
func (p *Program) MarshalText() ([]byte, error) {
	return hex.Encode(p.Serialize()), nil
}

func (p *Program) UnmarshalText(src []byte) error {
	if p == nil {
		return errors.New("UnmarshalText on nil pointer")
	}
	b, err := hex.Decode(src)
	if err != nil {
		return fmt.Errorf("decoding hex: %w", err)
	}
	res, err := Deserialize(b)
	if err != nil {
		return err
	}
	*p = *res
	return nil
}
