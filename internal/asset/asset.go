package asset

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

// IDLength is the byte length of an asset identifier.
const IDLength = 32

// Bech32HRP is the human-readable prefix used for the textual form of asset IDs.
const Bech32HRP = "sasset"

// ID identifies a fungible asset type on the chain.
//
// IDs are opaque 32-byte values; equality is byte-exact, which makes ID
// usable directly as a map key.
type ID [IDLength]byte

// IDFromBytes builds an ID from a raw byte slice.
func IDFromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLength {
		return id, fmt.Errorf("asset id must be %d bytes, got %d", IDLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// FromDenom derives the ID registered for a base denomination string.
//
// The chain derives asset identifiers by hashing the base denom with
// BLAKE2b-256, so the same denom always yields the same ID.
func FromDenom(denom string) ID {
	return ID(blake2b.Sum256([]byte(denom)))
}

// ParseID decodes the bech32 textual form of an asset ID.
func ParseID(s string) (ID, error) {
	var id ID
	hrp, grouped, err := bech32.Decode(s)
	if err != nil {
		return id, fmt.Errorf("decode asset id: %w", err)
	}
	if hrp != Bech32HRP {
		return id, fmt.Errorf("asset id has prefix %q, want %q", hrp, Bech32HRP)
	}
	raw, err := bech32.ConvertBits(grouped, 5, 8, false)
	if err != nil {
		return id, fmt.Errorf("decode asset id: %w", err)
	}
	return IDFromBytes(raw)
}

// Bytes returns a copy of the raw identifier bytes.
func (id ID) Bytes() []byte {
	out := make([]byte, IDLength)
	copy(out, id[:])
	return out
}

// IsZero reports whether the ID is the all-zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Equal reports byte-exact equality with another ID.
func (id ID) Equal(other ID) bool {
	return bytes.Equal(id[:], other[:])
}

// String renders the bech32 textual form of the ID.
func (id ID) String() string {
	grouped, err := bech32.ConvertBits(id[:], 8, 5, true)
	if err != nil {
		return hex.EncodeToString(id[:])
	}
	enc, err := bech32.Encode(Bech32HRP, grouped)
	if err != nil {
		return hex.EncodeToString(id[:])
	}
	return enc
}

// MarshalText implements encoding.TextMarshaler, so IDs serialize as their
// bech32 form in JSON.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
