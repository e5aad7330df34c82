// Package metrics defines and registers all custom Prometheus metrics for the
// meme API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry on package init.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/memevault/meme-api/internal/core/domain"
	"github.com/memevault/meme-api/internal/core/ports"
)

const namespace = "memeapi"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts register attempts.
// Label:
//   - result: "success", "duplicate", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthGateTotal counts Auth Gate decisions.
// Label:
//   - outcome: "accepted", "unauthenticated" (no header) or "rejected" (bad token)
var AuthGateTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "gate_total",
		Help:      "Total number of protected requests seen by the auth gate, by outcome.",
	},
	[]string{"outcome"},
)

// ── Meme metrics ──────────────────────────────────────────────────────────────

var MemesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "memes_created_total",
		Help:      "Total number of memes created.",
	},
)

// MemeCacheTotal counts meme cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var MemeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meme_cache_total",
		Help:      "Total number of meme cache lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)

// InstrumentCache wraps a MemeCache so every lookup is counted in
// MemeCacheTotal.
func InstrumentCache(next ports.MemeCache) ports.MemeCache {
	return instrumentedCache{next: next}
}

type instrumentedCache struct {
	next ports.MemeCache
}

func (c instrumentedCache) Get(ctx context.Context, id int64) (*domain.Meme, bool, error) {
	m, found, err := c.next.Get(ctx, id)
	switch {
	case err != nil:
		MemeCacheTotal.WithLabelValues("error").Inc()
	case found:
		MemeCacheTotal.WithLabelValues("hit").Inc()
	default:
		MemeCacheTotal.WithLabelValues("miss").Inc()
	}
	return m, found, err
}

func (c instrumentedCache) Set(ctx context.Context, meme *domain.Meme) error {
	return c.next.Set(ctx, meme)
}
