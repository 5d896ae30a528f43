// internal/marketplace/types.go
package marketplace

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	conf "watchsync/internal/config"
	"watchsync/internal/feed"
)

// ErrNotConfigured is returned by a Factory whose marketplace has no
// credentials in the config; the syncer skips it with a warning.
var ErrNotConfigured = errors.New("marketplace not configured")

// Report summarizes one reconciliation pass for the run journal.
type Report struct {
	Offers       int // offer ids fetched from the marketplace
	StocksPushed int // stock records submitted (matched + zero-stock fallback)
	PricesPushed int // price records submitted (matched only)
}

// Marketplace is one seller-API integration. Sync performs a full pass:
// fetch offer ids, build and submit stock batches, build and submit price
// batches. It blocks until done or failed; a failed batch aborts the pass.
type Marketplace interface {
	Name() string
	Sync(ctx context.Context, remnants []feed.Remnant) (Report, error)
}

type Factory func(log zerolog.Logger, cfg *conf.Config) (Marketplace, error)
