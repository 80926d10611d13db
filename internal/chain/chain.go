// Package chain pins the well-known asset identifiers for the chain this
// backend reports on.
package chain

import "shielded-stats-backend/internal/asset"

// Base denominations of the two assets every deployment must have in its
// registry: the native staking token and the USDC routed in over IBC.
const (
	NativeDenom = "ushd"
	USDCDenom   = "transfer/channel-2/uusdc"
)

var (
	// NativeAssetID is the staking token's asset identifier.
	NativeAssetID = asset.FromDenom(NativeDenom)

	// USDCAssetID is the asset identifier used for the USDC-equivalent
	// supply basis.
	USDCAssetID = asset.FromDenom(USDCDenom)
)
