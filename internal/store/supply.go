package store

import (
	"context"
	"fmt"

	"shielded-stats-backend/internal/asset"
	"shielded-stats-backend/internal/chain"
	"shielded-stats-backend/models"
)

// totalSupplyQuery assembles both supply bases in one round trip: five
// custody buckets in native atomic units, then the same five multiplied by
// the current native/USDC dex price. Every column is cast to text so values
// survive past the BIGINT range.
const totalSupplyQuery = `
SELECT
    (staked_um + unstaked_um + auction + dex)::TEXT,
    (unstaked_um + auction + dex)::TEXT,
    staked_um::TEXT,
    auction::TEXT,
    dex::TEXT,
    ROUND((staked_um + unstaked_um + auction + dex)::NUMERIC * price)::TEXT,
    ROUND((unstaked_um + auction + dex)::NUMERIC * price)::TEXT,
    ROUND(staked_um::NUMERIC * price)::TEXT,
    ROUND(auction::NUMERIC * price)::TEXT,
    ROUND(dex::NUMERIC * price)::TEXT
FROM (
  SELECT SUM(um) as staked_um
  FROM (
    SELECT *
    FROM supply_validators
  ) validators
  LEFT JOIN LATERAL (
    SELECT um
    FROM supply_total_staked
    WHERE validator_id = id
    ORDER BY height DESC
    LIMIT 1
  ) ON TRUE
) staked
LEFT JOIN LATERAL (
  SELECT um as unstaked_um, auction, dex
  FROM supply_total_unstaked
  ORDER BY height DESC
  LIMIT 1
) ON TRUE
LEFT JOIN LATERAL (
    SELECT AVG(price21) as price FROM (
        (SELECT
            price21
        FROM dex_lp
        WHERE state = 'opened'
        AND asset1 = $1
        AND asset2 = $2
        AND reserves1 > 0
        ORDER BY price21 DESC
        LIMIT 1)
        UNION ALL
        (SELECT
            price21
        FROM dex_lp
        WHERE state = 'opened'
        AND asset1 = $1
        AND asset2 = $2
        AND reserves2 > 0
        ORDER BY price21 ASC
        LIMIT 1)
    ) spread
) ON TRUE
`

// TotalSupply fetches the supply breakdown in the native basis and in its
// USDC equivalent.
func (s *Store) TotalSupply(ctx context.Context) (models.TotalSupply, models.TotalSupply, error) {
	var cols [10]string
	err := s.db.QueryRowContext(ctx, totalSupplyQuery,
		chain.NativeAssetID.Bytes(), chain.USDCAssetID.Bytes(),
	).Scan(
		&cols[0], &cols[1], &cols[2], &cols[3], &cols[4],
		&cols[5], &cols[6], &cols[7], &cols[8], &cols[9],
	)
	if err != nil {
		return models.TotalSupply{}, models.TotalSupply{}, fmt.Errorf("query total supply: %w", err)
	}
	native, err := supplyFromColumns(cols[0:5])
	if err != nil {
		return models.TotalSupply{}, models.TotalSupply{}, fmt.Errorf("native supply: %w", err)
	}
	usdc, err := supplyFromColumns(cols[5:10])
	if err != nil {
		return models.TotalSupply{}, models.TotalSupply{}, fmt.Errorf("usdc supply: %w", err)
	}
	return native, usdc, nil
}

// supplyFromColumns converts five decimal-text columns, in the order
// total, unstaked, staked, auction, dex.
func supplyFromColumns(cols []string) (models.TotalSupply, error) {
	amounts := make([]asset.Amount, len(cols))
	for i, c := range cols {
		a, err := asset.ParseAmount(c)
		if err != nil {
			return models.TotalSupply{}, err
		}
		amounts[i] = a
	}
	return models.TotalSupply{
		Total:    amounts[0],
		Unstaked: amounts[1],
		Staked:   amounts[2],
		Auction:  amounts[3],
		Dex:      amounts[4],
	}, nil
}
