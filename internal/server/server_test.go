package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shielded-stats-backend/internal/asset"
	"shielded-stats-backend/internal/registry"
	"shielded-stats-backend/internal/ws"
	"shielded-stats-backend/models"
)

type fakeBuilder struct {
	out *models.IndexStats
	err error
}

func (f *fakeBuilder) BuildIndex(ctx context.Context) (*models.IndexStats, error) {
	return f.out, f.err
}

func testIndexStats(t *testing.T) *models.IndexStats {
	t.Helper()
	amt := func(s string) asset.Amount {
		a, err := asset.ParseAmount(s)
		if err != nil {
			t.Fatalf("parse amount %q: %v", s, err)
		}
		return a
	}
	return &models.IndexStats{
		Supply: models.TotalSupply{
			Total:    amt("10000000"),
			Unstaked: amt("4000000"),
			Staked:   amt("3000000"),
			Auction:  amt("2000000"),
			Dex:      amt("1000000"),
		},
		USDCEquivalentSupply: models.TotalSupply{
			Total:    amt("20000000"),
			Unstaked: amt("8000000"),
			Staked:   amt("6000000"),
			Auction:  amt("4000000"),
			Dex:      amt("2000000"),
		},
		Depositors: models.Depositors{Total: 42},
		Shielded: models.ShieldedValue{ByAsset: []models.Deposit{{
			Asset: asset.FromDenom("transfer/channel-0/uatom"),
			Total: amt("100000000"),
		}}},
	}
}

func newTestServer(t *testing.T, builder IndexBuilder) *Server {
	t.Helper()
	reg, err := registry.Default()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	srv, err := New(builder, reg, ws.NewHub())
	if err != nil {
		t.Fatalf("create server: %v", err)
	}
	return srv
}

func TestIndexServesJSONWhenAccepted(t *testing.T) {
	srv := newTestServer(t, &fakeBuilder{out: testIndexStats(t)})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	srv.handleIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	// Machine record: raw atomic amounts as decimal strings, untouched
	// by the formatter.
	if !strings.Contains(body, `"total":"10000000"`) {
		t.Errorf("body missing raw supply total: %s", body)
	}
	if !strings.Contains(body, `"depositors":{"total":42}`) {
		t.Errorf("body missing depositors: %s", body)
	}
}

func TestIndexServesHTMLByDefault(t *testing.T) {
	srv := newTestServer(t, &fakeBuilder{out: testIndexStats(t)})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	srv.handleIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "10.0000 SHD") {
		t.Errorf("page missing formatted native supply")
	}
	if !strings.Contains(body, "ATOM") {
		t.Errorf("page missing shielded deposit row")
	}
}

func TestIndexFailsClosedOnBuildError(t *testing.T) {
	srv := newTestServer(t, &fakeBuilder{err: errors.New("store down")})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	srv.handleIndex(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestIndexRejectsOtherPaths(t *testing.T) {
	srv := newTestServer(t, &fakeBuilder{out: testIndexStats(t)})
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	srv.handleIndex(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAPIIndexAlwaysJSON(t *testing.T) {
	srv := newTestServer(t, &fakeBuilder{out: testIndexStats(t)})
	req := httptest.NewRequest(http.MethodGet, "/api/index", nil)
	rec := httptest.NewRecorder()

	srv.handleAPIIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeBuilder{out: testIndexStats(t)})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	srv.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("health body = %s", rec.Body.String())
	}
}
