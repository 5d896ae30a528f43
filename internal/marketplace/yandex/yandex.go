// internal/marketplace/yandex/yandex.go
package yandex

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	conf "watchsync/internal/config"
	"watchsync/internal/feed"
	"watchsync/internal/marketplace"
)

// Per-request limits of the campaign endpoints.
const (
	stockBatchSize = 2000
	priceBatchSize = 500
)

type campaign struct {
	name        string // "fbs" / "dbs", for logs
	id          string
	warehouseID string
}

type Yandex struct {
	log       zerolog.Logger
	client    *Client
	campaigns []campaign
	now       func() time.Time
}

func (y *Yandex) Name() string { return "yandex" }

// Sync runs one reconciliation pass per campaign, sequentially: FBS first,
// then DBS. A failed step aborts the rest of the pass; the returned report
// covers what was pushed before the failure.
func (y *Yandex) Sync(ctx context.Context, remnants []feed.Remnant) (marketplace.Report, error) {
	var rep marketplace.Report
	for _, cmp := range y.campaigns {
		if err := y.syncCampaign(ctx, cmp, remnants, &rep); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func (y *Yandex) syncCampaign(ctx context.Context, cmp campaign, remnants []feed.Remnant, rep *marketplace.Report) error {
	log := y.log.With().Str("campaign", cmp.name).Logger()

	offerIDs, err := y.client.OfferIDs(ctx, cmp.id)
	if err != nil {
		return err
	}
	rep.Offers += len(offerIDs)
	log.Info().Int("offers", len(offerIDs)).Msg("offer ids fetched")

	stocks, err := CreateStocks(remnants, offerIDs, cmp.warehouseID, y.now())
	if err != nil {
		return fmt.Errorf("yandex: build stocks: %w", err)
	}
	for batch := range slices.Chunk(stocks, stockBatchSize) {
		body, err := y.client.UpdateStocks(ctx, cmp.id, batch)
		if err != nil {
			return err
		}
		rep.StocksPushed += len(batch)
		log.Debug().Int("batch", len(batch)).Str("response", string(body)).Msg("stocks submitted")
	}

	prices, err := CreatePrices(remnants, offerIDs)
	if err != nil {
		return fmt.Errorf("yandex: build prices: %w", err)
	}
	for batch := range slices.Chunk(prices, priceBatchSize) {
		body, err := y.client.UpdatePrices(ctx, cmp.id, batch)
		if err != nil {
			return err
		}
		rep.PricesPushed += len(batch)
		log.Debug().Int("batch", len(batch)).Str("response", string(body)).Msg("prices submitted")
	}
	return nil
}

func factory(log zerolog.Logger, cfg *conf.Config) (marketplace.Marketplace, error) {
	yc := cfg.Yandex
	if yc.Token == "" || yc.FBS.ID == "" || yc.DBS.ID == "" {
		return nil, marketplace.ErrNotConfigured
	}
	return &Yandex{
		log:    log,
		client: NewClient(log, defaultBaseURL, yc.Token),
		campaigns: []campaign{
			{name: "fbs", id: yc.FBS.ID, warehouseID: yc.FBS.WarehouseID},
			{name: "dbs", id: yc.DBS.ID, warehouseID: yc.DBS.WarehouseID},
		},
		now: time.Now,
	}, nil
}

func init() {
	marketplace.Register("yandex", factory)
}
