package types

import "fmt"

// Tag is the CBOR tag number of an export record.
type Tag uint64

// Version is the version of an export record's encoding.
type Version uint64

const SpendBundleTag Tag = 1002

type Versioned interface {
	GetVersion() Version
}

// EnsureVersion returns error when "got" is not the "expected" version of the record.
func EnsureVersion(data Versioned, got, expected Version) error {
	if got != expected {
		return fmt.Errorf("invalid version (type %T), expected %d, got %d", data, expected, got)
	}
	return nil
}
