package assets

import (
	"fmt"
	"strings"
)

// Kind selects the asset type variant.
type Kind uint8

const (
	KindBasic Kind = iota + 1
	KindCAT
	KindNFT
	KindSingleton
)

var kindNames = map[Kind]string{
	KindBasic:     "basic",
	KindCAT:       "cat",
	KindNFT:       "nft",
	KindSingleton: "singleton",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the Kind of the (case insensitive) name.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, s)
}

// Fungible returns true when the variant takes part in fungibility rings.
func (k Kind) Fungible() bool {
	return k == KindCAT || k == KindNFT || k == KindSingleton
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
