// internal/marketplace/ozon/ozon.go
package ozon

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	conf "watchsync/internal/config"
	"watchsync/internal/feed"
	"watchsync/internal/marketplace"
)

// Per-request limits of the import endpoints.
const (
	stockBatchSize = 100
	priceBatchSize = 900
)

type Ozon struct {
	log    zerolog.Logger
	client *Client
}

func (o *Ozon) Name() string { return "ozon" }

// Sync runs one full reconciliation pass for the Ozon store: fetch offer
// ids, push stock batches, push price batches. Sequential; the first failed
// batch aborts the pass.
func (o *Ozon) Sync(ctx context.Context, remnants []feed.Remnant) (marketplace.Report, error) {
	var rep marketplace.Report

	offerIDs, err := o.client.OfferIDs(ctx)
	if err != nil {
		return rep, err
	}
	rep.Offers = len(offerIDs)
	o.log.Info().Int("offers", len(offerIDs)).Msg("offer ids fetched")

	stocks, err := CreateStocks(remnants, offerIDs)
	if err != nil {
		return rep, fmt.Errorf("ozon: build stocks: %w", err)
	}
	for batch := range slices.Chunk(stocks, stockBatchSize) {
		body, err := o.client.UpdateStocks(ctx, batch)
		if err != nil {
			return rep, err
		}
		rep.StocksPushed += len(batch)
		o.log.Debug().Int("batch", len(batch)).Str("response", string(body)).Msg("stocks submitted")
	}

	prices, err := CreatePrices(remnants, offerIDs)
	if err != nil {
		return rep, fmt.Errorf("ozon: build prices: %w", err)
	}
	for batch := range slices.Chunk(prices, priceBatchSize) {
		body, err := o.client.UpdatePrices(ctx, batch)
		if err != nil {
			return rep, err
		}
		rep.PricesPushed += len(batch)
		o.log.Debug().Int("batch", len(batch)).Str("response", string(body)).Msg("prices submitted")
	}

	return rep, nil
}

func factory(log zerolog.Logger, cfg *conf.Config) (marketplace.Marketplace, error) {
	if cfg.Ozon.ClientID == "" || cfg.Ozon.APIKey == "" {
		return nil, marketplace.ErrNotConfigured
	}
	return &Ozon{
		log:    log,
		client: NewClient(log, defaultBaseURL, cfg.Ozon.ClientID, cfg.Ozon.APIKey),
	}, nil
}

func init() {
	marketplace.Register("ozon", factory)
}
