package store

import (
	"strings"
	"testing"

	"shielded-stats-backend/internal/asset"
)

func TestScanDeposit(t *testing.T) {
	id := asset.FromDenom("transfer/channel-0/uatom")

	dep, err := scanDeposit(id.Bytes(), "250", "1000")
	if err != nil {
		t.Fatalf("scanDeposit: %v", err)
	}
	if !dep.Asset.Equal(id) {
		t.Errorf("asset = %s, want %s", dep.Asset, id)
	}
	if dep.Current.String() != "250" || dep.Total.String() != "1000" {
		t.Errorf("amounts = %s / %s", dep.Current, dep.Total)
	}
}

func TestScanDepositClampsNegativeNet(t *testing.T) {
	id := asset.FromDenom("ushd")
	dep, err := scanDeposit(id.Bytes(), "-3", "1000")
	if err != nil {
		t.Fatalf("scanDeposit: %v", err)
	}
	if !dep.Current.IsZero() {
		t.Errorf("negative net should clamp to zero, got %s", dep.Current)
	}
	if dep.Total.String() != "1000" {
		t.Errorf("total = %s", dep.Total)
	}
}

func TestScanDepositRejectsBadRows(t *testing.T) {
	id := asset.FromDenom("ushd")
	cases := []struct {
		name       string
		assetBytes []byte
		net        string
		total      string
	}{
		{name: "short asset id", assetBytes: []byte{1, 2, 3}, net: "1", total: "1"},
		{name: "negative total", assetBytes: id.Bytes(), net: "1", total: "-1"},
		{name: "non-numeric net", assetBytes: id.Bytes(), net: "abc", total: "1"},
		{name: "non-numeric total", assetBytes: id.Bytes(), net: "1", total: "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := scanDeposit(tc.assetBytes, tc.net, tc.total); err == nil {
				t.Fatalf("scanDeposit succeeded, want error")
			}
		})
	}
}

func TestSupplyFromColumns(t *testing.T) {
	got, err := supplyFromColumns([]string{"10", "4", "3", "2", "1"})
	if err != nil {
		t.Fatalf("supplyFromColumns: %v", err)
	}
	if got.Total.String() != "10" || got.Unstaked.String() != "4" ||
		got.Staked.String() != "3" || got.Auction.String() != "2" || got.Dex.String() != "1" {
		t.Fatalf("unexpected mapping: %+v", got)
	}
}

func TestSupplyFromColumnsLargeValues(t *testing.T) {
	big := "123456789012345678901234567890"
	got, err := supplyFromColumns([]string{big, "0", big, "0", "0"})
	if err != nil {
		t.Fatalf("supplyFromColumns: %v", err)
	}
	if got.Total.String() != big {
		t.Fatalf("total = %s, want %s", got.Total, big)
	}
}

func TestSupplyFromColumnsRejectsBadValues(t *testing.T) {
	for _, bad := range []string{"-1", "1.5", "x"} {
		if _, err := supplyFromColumns([]string{bad, "0", "0", "0", "0"}); err == nil {
			t.Errorf("value %q accepted, want error", bad)
		}
	}
}

func TestDepositQueriesPartitionByNativeAsset(t *testing.T) {
	// The shielded query must exclude the native asset, the unshielded
	// query must select only it; both bind it as $1.
	if !strings.Contains(shieldedQuery, "asset != $1") {
		t.Errorf("shielded query does not exclude the native asset")
	}
	if !strings.Contains(unshieldedQuery, "asset = $1") {
		t.Errorf("unshielded query does not select the native asset")
	}
}
