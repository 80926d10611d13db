package store

import (
	"context"
	"fmt"

	"shielded-stats-backend/internal/asset"
	"shielded-stats-backend/internal/chain"
	"shielded-stats-backend/models"
)

// shieldedQuery aggregates bridge traffic for every non-native asset.
// The second column is the signed net position (deposits minus
// withdrawals), the third the cumulative inbound volume.
const shieldedQuery = `
SELECT
    asset,
    SUM(amount)::TEXT,
    SUM(CASE WHEN kind = 'inbound' THEN amount ELSE 0 END)::TEXT
FROM ibc_transfer
WHERE asset != $1
GROUP BY asset
`

// unshieldedQuery is the mirror image for the native asset: outbound flow
// negated so the figures read as positive magnitudes.
const unshieldedQuery = `
SELECT
    asset,
    (-SUM(amount))::TEXT,
    (-SUM(CASE WHEN kind = 'outbound' OR kind ILIKE '%refund%' THEN amount ELSE 0 END))::TEXT
FROM ibc_transfer
WHERE asset = $1
GROUP BY asset
`

// ShieldedValue fetches per-asset deposit totals for all non-native assets.
func (s *Store) ShieldedValue(ctx context.Context) (models.ShieldedValue, error) {
	return s.depositQuery(ctx, shieldedQuery)
}

// UnshieldedValue fetches the native asset's outbound flow totals.
func (s *Store) UnshieldedValue(ctx context.Context) (models.ShieldedValue, error) {
	return s.depositQuery(ctx, unshieldedQuery)
}

func (s *Store) depositQuery(ctx context.Context, query string) (models.ShieldedValue, error) {
	rows, err := s.db.QueryContext(ctx, query, chain.NativeAssetID.Bytes())
	if err != nil {
		return models.ShieldedValue{}, fmt.Errorf("query deposits: %w", err)
	}
	defer rows.Close()

	var out models.ShieldedValue
	for rows.Next() {
		var (
			assetBytes []byte
			net        string
			total      string
		)
		if err := rows.Scan(&assetBytes, &net, &total); err != nil {
			return models.ShieldedValue{}, fmt.Errorf("scan deposit row: %w", err)
		}
		dep, err := scanDeposit(assetBytes, net, total)
		if err != nil {
			return models.ShieldedValue{}, err
		}
		out.ByAsset = append(out.ByAsset, dep)
	}
	if err := rows.Err(); err != nil {
		return models.ShieldedValue{}, fmt.Errorf("read deposit rows: %w", err)
	}
	return out, nil
}

// scanDeposit converts one aggregated transfer row. The net position is
// clamped at zero; the cumulative total must be non-negative.
func scanDeposit(assetBytes []byte, net, total string) (models.Deposit, error) {
	id, err := asset.IDFromBytes(assetBytes)
	if err != nil {
		return models.Deposit{}, fmt.Errorf("parse deposit asset: %w", err)
	}
	current, err := asset.ParseAmountClamped(net)
	if err != nil {
		return models.Deposit{}, fmt.Errorf("parse current for %s: %w", id, err)
	}
	cumulative, err := asset.ParseAmount(total)
	if err != nil {
		return models.Deposit{}, fmt.Errorf("parse total for %s: %w", id, err)
	}
	return models.Deposit{
		Asset:   id,
		Total:   cumulative,
		Current: current,
	}, nil
}
