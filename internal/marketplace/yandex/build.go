// internal/marketplace/yandex/build.go
package yandex

import (
	"fmt"
	"time"

	"watchsync/internal/feed"
	"watchsync/internal/marketplace"
)

// CreateStocks reconciles feed rows against the campaign's offer ids.
// Semantics match the Ozon builder — one record per offer id, matched rows
// first in feed order, count-0 fallback for the rest, first match wins —
// but records carry the warehouse and a shared FIT item stamped with the
// run timestamp (UTC, second precision). offerIDs is not mutated.
func CreateStocks(remnants []feed.Remnant, offerIDs []string, warehouseID string, now time.Time) ([]Stock, error) {
	updatedAt := now.UTC().Truncate(time.Second).Format(time.RFC3339)

	known := make(map[string]bool, len(offerIDs))
	for _, id := range offerIDs {
		known[id] = true
	}

	stocks := make([]Stock, 0, len(offerIDs))
	matched := make(map[string]bool, len(offerIDs))
	add := func(sku string, count int) {
		stocks = append(stocks, Stock{
			SKU:         sku,
			WarehouseID: warehouseID,
			Items: []StockItem{{
				Count:     count,
				Type:      "FIT",
				UpdatedAt: updatedAt,
			}},
		})
	}

	for _, watch := range remnants {
		code := watch.Code()
		if !known[code] || matched[code] {
			continue
		}
		count, err := marketplace.ResolveCount(watch.Quantity())
		if err != nil {
			return nil, fmt.Errorf("sku %s: %w", code, err)
		}
		add(code, count)
		matched[code] = true
	}

	for _, id := range offerIDs {
		if !matched[id] {
			add(id, 0)
		}
	}
	return stocks, nil
}

// CreatePrices builds RUR price records for feed rows whose code is a known
// offer id. No fallback for unmatched offers.
func CreatePrices(remnants []feed.Remnant, offerIDs []string) ([]Price, error) {
	known := make(map[string]bool, len(offerIDs))
	for _, id := range offerIDs {
		known[id] = true
	}

	var prices []Price
	for _, watch := range remnants {
		code := watch.Code()
		if !known[code] {
			continue
		}
		value, err := marketplace.ParsePrice(watch.Price())
		if err != nil {
			return nil, fmt.Errorf("sku %s: %w", code, err)
		}
		prices = append(prices, Price{
			ID: code,
			Price: PriceBody{
				Value:      value,
				CurrencyID: "RUR",
			},
		})
	}
	return prices, nil
}
