package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"shielded-stats-backend/internal/format"
	"shielded-stats-backend/internal/logger"
	"shielded-stats-backend/internal/registry"
	"shielded-stats-backend/internal/ws"
)

// Broadcaster periodically rebuilds the formatted index record and pushes
// it to WebSocket subscribers. A failed build skips the tick; the next
// tick retries.
type Broadcaster struct {
	builder  *Builder
	registry *registry.Registry
	hub      *ws.Hub
	interval time.Duration
	log      *logrus.Entry
}

// NewBroadcaster wires a broadcaster over the builder and hub.
func NewBroadcaster(builder *Builder, reg *registry.Registry, hub *ws.Hub, interval time.Duration) *Broadcaster {
	return &Broadcaster{
		builder:  builder,
		registry: reg,
		hub:      hub,
		interval: interval,
		log:      logger.WithComponent("broadcaster"),
	}
}

// statsMessage is the envelope pushed over the feed.
type statsMessage struct {
	Type      string        `json:"type"`
	Data      *format.Index `json:"data"`
	Timestamp int64         `json:"timestamp"`
}

// Run loops until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	b.log.WithField("interval", b.interval).Info("stats broadcaster started")
	for {
		select {
		case <-ctx.Done():
			b.log.Info("stats broadcaster stopped")
			return
		case <-ticker.C:
			b.tick(ctx)
		}
	}
}

func (b *Broadcaster) tick(ctx context.Context) {
	if b.hub.ClientCount() == 0 {
		return
	}
	raw, err := b.builder.BuildIndex(ctx)
	if err != nil {
		b.log.WithError(err).Warn("skipping broadcast, index build failed")
		return
	}
	formatted, err := format.NewIndex(b.registry, raw)
	if err != nil {
		b.log.WithError(err).Warn("skipping broadcast, formatting failed")
		return
	}
	payload, err := json.Marshal(statsMessage{
		Type:      "stats",
		Data:      formatted,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		b.log.WithError(err).Error("failed to marshal stats message")
		return
	}
	b.hub.Broadcast(payload)
}
