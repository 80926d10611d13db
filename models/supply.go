package models

import "shielded-stats-backend/internal/asset"

// TotalSupply breaks the chain's issuance down by custody category, in
// atomic units of one pricing basis. The store guarantees
// Total == Unstaked + Staked + Auction + Dex; this layer preserves the
// figures without re-deriving them.
type TotalSupply struct {
	Total    asset.Amount `json:"total"`
	Unstaked asset.Amount `json:"unstaked"`
	Staked   asset.Amount `json:"staked"`
	Auction  asset.Amount `json:"auction"`
	Dex      asset.Amount `json:"dex"`
}

// Depositors counts distinct external-chain source addresses that have
// ever deposited.
type Depositors struct {
	Total uint64 `json:"total"`
}

// Deposit is the cumulative and current position of one asset moved over
// the bridge, in atomic units. Current is floor-clamped at zero upstream.
type Deposit struct {
	Asset   asset.ID     `json:"asset"`
	Total   asset.Amount `json:"total"`
	Current asset.Amount `json:"current"`
}

// ShieldedValue is the per-asset deposit set for one direction of bridge
// traffic. No ordering is guaranteed.
type ShieldedValue struct {
	ByAsset []Deposit `json:"by_asset"`
}

// IndexStats is the complete unformatted aggregate record served by the
// index endpoint: both supply bases, the depositor count and both deposit
// sets. It is assembled fresh per request and never cached.
type IndexStats struct {
	Supply               TotalSupply   `json:"supply"`
	USDCEquivalentSupply TotalSupply   `json:"usdc_equivalent_supply"`
	Depositors           Depositors    `json:"depositors"`
	Shielded             ShieldedValue `json:"shielded"`
	Unshielded           ShieldedValue `json:"unshielded"`
}
