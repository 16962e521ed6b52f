package types

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

/*
Cbor is the codec of the export formats (see SpendBundle). Values are encoded
using the core deterministic encoding of RFC 8949 section 4.2.1 so that the
bundle hash doesn't depend on the encoder.
*/
var Cbor cborCodec

type cborCodec struct{}

var (
	encMode = mustMode(cbor.CoreDetEncOptions().EncMode)
	decMode = mustMode(cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode)
)

func mustMode[T any](mode func() (T, error)) T {
	m, err := mode()
	if err != nil {
		panic(fmt.Errorf("initializing CBOR mode: %w", err))
	}
	return m
}

func (cborCodec) Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func (cborCodec) Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// MarshalTaggedValue encodes v as the content of the tag.
func (cborCodec) MarshalTaggedValue(tag Tag, v any) ([]byte, error) {
	return encMode.Marshal(cbor.Tag{Number: uint64(tag), Content: v})
}

// UnmarshalTaggedValue decodes the content of the tag into v, any other tag is an error.
func (cborCodec) UnmarshalTaggedValue(tag Tag, data []byte, v any) error {
	var raw cbor.RawTag
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Number != uint64(tag) {
		return fmt.Errorf("unexpected tag %d, expected %d", raw.Number, tag)
	}
	return decMode.Unmarshal(raw.Content, v)
}
