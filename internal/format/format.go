// Package format turns the raw index record into its human-facing form:
// amounts scaled and rounded per the registry, deposits classified as
// known or unknown, known deposits sorted by descending total.
package format

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"shielded-stats-backend/internal/asset"
	"shielded-stats-backend/internal/chain"
	"shielded-stats-backend/internal/registry"
	"shielded-stats-backend/models"
)

// PlaceholderImage is a 1x1 transparent PNG data URI used for assets
// without a resolvable icon.
const PlaceholderImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAACklEQVR4nGMAAQAABQABDQottAAAAABJRU5ErkJggg=="

// Supply is a TotalSupply with every figure rendered as a scaled,
// symbol-annotated string.
type Supply struct {
	Total    string `json:"total"`
	Unstaked string `json:"unstaked"`
	Staked   string `json:"staked"`
	Auction  string `json:"auction"`
	Dex      string `json:"dex"`
}

// Deposit is the display form of one per-asset deposit record.
//
// For a registry-known asset, Asset is the ticker symbol and the amounts
// are scaled to display units. For an unknown asset, Asset is the raw
// identifier's textual form and the amounts stay in atomic units, since
// the display exponent is unknowable.
type Deposit struct {
	Asset   string `json:"asset"`
	Total   string `json:"total"`
	Current string `json:"current"`
	Known   bool   `json:"known"`
	Image   string `json:"image"`
}

// ShieldedValue splits the formatted deposits by registry knowledge.
// ByAsset is sorted by descending total; UnknownAsset has no ordering
// guarantee.
type ShieldedValue struct {
	ByAsset      []Deposit `json:"by_asset"`
	UnknownAsset []Deposit `json:"unknown_asset"`
}

// Index is the fully formatted index record consumed by the HTML page.
type Index struct {
	Supply               Supply            `json:"supply"`
	USDCEquivalentSupply Supply            `json:"usdc_equivalent_supply"`
	Depositors           models.Depositors `json:"depositors"`
	Shielded             ShieldedValue     `json:"shielded"`
	Unshielded           ShieldedValue     `json:"unshielded"`
}

// NewIndex formats a raw index record against the registry.
//
// The native and USDC assets must be registered; their absence is a
// deployment error and fails the whole formatting pass.
func NewIndex(reg *registry.Registry, raw *models.IndexStats) (*Index, error) {
	supply, err := formatSupply(reg, chain.NativeAssetID, raw.Supply)
	if err != nil {
		return nil, err
	}
	usdcSupply, err := formatSupply(reg, chain.USDCAssetID, raw.USDCEquivalentSupply)
	if err != nil {
		return nil, err
	}
	return &Index{
		Supply:               supply,
		USDCEquivalentSupply: usdcSupply,
		Depositors:           raw.Depositors,
		Shielded:             formatShieldedValue(reg, raw.Shielded),
		Unshielded:           formatShieldedValue(reg, raw.Unshielded),
	}, nil
}

func formatSupply(reg *registry.Registry, id asset.ID, value models.TotalSupply) (Supply, error) {
	meta, ok := reg.Lookup(id)
	if !ok {
		return Supply{}, fmt.Errorf("supply asset %s not in registry", id)
	}
	return Supply{
		Total:    meta.FormatWithSymbol(value.Total),
		Unstaked: meta.FormatWithSymbol(value.Unstaked),
		Staked:   meta.FormatWithSymbol(value.Staked),
		Auction:  meta.FormatWithSymbol(value.Auction),
		Dex:      meta.FormatWithSymbol(value.Dex),
	}, nil
}

// formatDeposit renders one deposit. Registry absence is the expected
// unknown-asset case here, not an error.
func formatDeposit(reg *registry.Registry, value models.Deposit) Deposit {
	meta, ok := reg.Lookup(value.Asset)
	if !ok {
		return Deposit{
			Asset:   value.Asset.String(),
			Total:   value.Total.String(),
			Current: value.Current.String(),
			Known:   false,
			Image:   PlaceholderImage,
		}
	}
	image, ok := meta.Image()
	if !ok {
		image = PlaceholderImage
	}
	return Deposit{
		Asset:   meta.Symbol,
		Total:   meta.Format(value.Total),
		Current: meta.Format(value.Current),
		Known:   true,
		Image:   image,
	}
}

func formatShieldedValue(reg *registry.Registry, value models.ShieldedValue) ShieldedValue {
	out := ShieldedValue{
		ByAsset:      []Deposit{},
		UnknownAsset: []Deposit{},
	}
	for _, dep := range value.ByAsset {
		formatted := formatDeposit(reg, dep)
		if formatted.Known {
			out.ByAsset = append(out.ByAsset, formatted)
		} else {
			out.UnknownAsset = append(out.UnknownAsset, formatted)
		}
	}
	sortByTotalDescending(out.ByAsset)
	return out
}

// sortByTotalDescending orders deposits by their rendered total, largest
// first. The rendered strings are re-parsed as decimals for comparison;
// anything that fails to parse sorts last rather than failing the page.
func sortByTotalDescending(deposits []Deposit) {
	type keyed struct {
		dep Deposit
		key *decimal.Decimal
	}
	items := make([]keyed, len(deposits))
	for i, dep := range deposits {
		items[i] = keyed{dep: dep}
		if d, err := decimal.NewFromString(dep.Total); err == nil {
			items[i].key = &d
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		switch {
		case items[i].key == nil:
			return false
		case items[j].key == nil:
			return true
		default:
			return items[i].key.GreaterThan(*items[j].key)
		}
	})
	for i, item := range items {
		deposits[i] = item.dep
	}
}
