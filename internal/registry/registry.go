// Package registry holds the static per-asset display metadata: ticker
// symbol, display exponent and icon assets. The registry is built once at
// startup from an embedded dataset and is read-only afterward, so a single
// instance is shared by every request without locking.
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"shielded-stats-backend/internal/asset"
)

// displayPrecision is the fixed number of fractional digits rendered for
// human-facing amounts. Rounding is half-up, pinned by the formatter tests.
const displayPrecision = 4

// Image is one icon variant for an asset. Either field may be empty.
type Image struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
}

// Metadata carries the display attributes of a single asset.
type Metadata struct {
	// Symbol is the display ticker, e.g. "SHD".
	Symbol string
	// Exponent scales atomic units to display units: the atomic amount is
	// divided by 10^Exponent.
	Exponent uint32
	// Images lists icon variants in registry order.
	Images []Image
}

// Image resolves the asset's icon: the first non-empty PNG wins, then the
// first non-empty SVG. The second return is false when no icon is usable
// and the caller should substitute its placeholder.
func (m *Metadata) Image() (string, bool) {
	for _, img := range m.Images {
		if img.PNG != "" {
			return img.PNG, true
		}
	}
	for _, img := range m.Images {
		if img.SVG != "" {
			return img.SVG, true
		}
	}
	return "", false
}

// Format scales an atomic amount by the asset's display exponent and
// renders it with the fixed display precision.
//
// The conversion goes through an arbitrary-precision decimal so amounts
// beyond the float64-safe range survive intact.
func (m *Metadata) Format(a asset.Amount) string {
	return decimal.NewFromBigInt(a.BigInt(), -int32(m.Exponent)).StringFixed(displayPrecision)
}

// FormatWithSymbol is Format with the ticker appended, e.g. "1.2346 SHD".
func (m *Metadata) FormatWithSymbol(a asset.Amount) string {
	return fmt.Sprintf("%s %s", m.Format(a), m.Symbol)
}

// Registry is an immutable mapping from asset ID to display metadata.
type Registry struct {
	byID map[asset.ID]*Metadata
}

// Lookup returns the metadata for an asset. Absence is a normal outcome,
// not an error: it marks the asset as unknown and the caller routes it to
// the unknown-asset path.
func (r *Registry) Lookup(id asset.ID) (*Metadata, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// Len returns the number of registered assets.
func (r *Registry) Len() int {
	return len(r.byID)
}

// assetRecord mirrors one entry of the registry dataset.
type assetRecord struct {
	ID         *recordID   `json:"id"`
	Symbol     string      `json:"symbol"`
	Display    string      `json:"display"`
	DenomUnits []denomUnit `json:"denomUnits"`
	Images     []Image     `json:"images"`
}

type recordID struct {
	Inner []byte `json:"inner"`
}

type denomUnit struct {
	Denom    string `json:"denom"`
	Exponent uint32 `json:"exponent"`
}

// Load parses a registry dataset. The load is all-or-nothing: a malformed
// document or a single bad record aborts the whole load, so a process never
// runs with a partial registry.
func Load(data []byte) (*Registry, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse registry document: %w", err)
	}
	rawAssets, ok := top["assetById"]
	if !ok {
		return nil, fmt.Errorf("registry document missing %q key", "assetById")
	}
	var records map[string]assetRecord
	if err := json.Unmarshal(rawAssets, &records); err != nil {
		return nil, fmt.Errorf("parse asset records: %w", err)
	}

	byID := make(map[asset.ID]*Metadata, len(records))
	for key, rec := range records {
		if rec.ID == nil {
			return nil, fmt.Errorf("asset record %q missing id", key)
		}
		id, err := asset.IDFromBytes(rec.ID.Inner)
		if err != nil {
			return nil, fmt.Errorf("asset record %q: %w", key, err)
		}
		exponent, err := displayExponent(rec)
		if err != nil {
			return nil, fmt.Errorf("asset record %q: %w", key, err)
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("asset record %q: duplicate id %s", key, id)
		}
		byID[id] = &Metadata{
			Symbol:   rec.Symbol,
			Exponent: exponent,
			Images:   rec.Images,
		}
	}
	return &Registry{byID: byID}, nil
}

// displayExponent finds the exponent of the record's display unit.
func displayExponent(rec assetRecord) (uint32, error) {
	for _, unit := range rec.DenomUnits {
		if unit.Denom == rec.Display {
			return unit.Exponent, nil
		}
	}
	return 0, fmt.Errorf("display unit %q not among denom units", rec.Display)
}
