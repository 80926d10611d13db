// Package stats assembles the aggregate index record from the store.
package stats

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"shielded-stats-backend/internal/logger"
	"shielded-stats-backend/models"
)

// Source is the read contract the builder needs from the store. The four
// queries are independent reads and must be safe to call concurrently.
type Source interface {
	TotalSupply(ctx context.Context) (models.TotalSupply, models.TotalSupply, error)
	Depositors(ctx context.Context) (models.Depositors, error)
	ShieldedValue(ctx context.Context) (models.ShieldedValue, error)
	UnshieldedValue(ctx context.Context) (models.ShieldedValue, error)
}

// Builder orchestrates the four aggregate fetches for a request.
type Builder struct {
	source Source
	log    *logrus.Entry
}

// NewBuilder creates a builder over the given source.
func NewBuilder(source Source) *Builder {
	return &Builder{
		source: source,
		log:    logger.WithComponent("stats"),
	}
}

// part is the outcome of one fetch: a closure that writes its result into
// the index record, or the error that prevented it.
type part struct {
	name  string
	apply func(*models.IndexStats)
	err   error
}

// BuildIndex runs the four fetches concurrently and joins them into one
// record. The first failure to arrive wins and the whole build fails;
// fetches still in flight run to completion against the pool but their
// results are discarded. Which failure is "first" among simultaneous ones
// is scheduler-determined.
func (b *Builder) BuildIndex(ctx context.Context) (*models.IndexStats, error) {
	results := make(chan part, 4)

	go func() {
		native, usdc, err := b.source.TotalSupply(ctx)
		results <- part{name: "total supply", err: err, apply: func(out *models.IndexStats) {
			out.Supply = native
			out.USDCEquivalentSupply = usdc
		}}
	}()
	go func() {
		depositors, err := b.source.Depositors(ctx)
		results <- part{name: "depositors", err: err, apply: func(out *models.IndexStats) {
			out.Depositors = depositors
		}}
	}()
	go func() {
		shielded, err := b.source.ShieldedValue(ctx)
		results <- part{name: "shielded value", err: err, apply: func(out *models.IndexStats) {
			out.Shielded = shielded
		}}
	}()
	go func() {
		unshielded, err := b.source.UnshieldedValue(ctx)
		results <- part{name: "unshielded value", err: err, apply: func(out *models.IndexStats) {
			out.Unshielded = unshielded
		}}
	}()

	var out models.IndexStats
	for i := 0; i < 4; i++ {
		r := <-results
		if r.err != nil {
			b.log.WithError(r.err).WithField("aggregate", r.name).Warn("aggregate fetch failed")
			return nil, fmt.Errorf("fetch %s: %w", r.name, r.err)
		}
		r.apply(&out)
	}
	return &out, nil
}
