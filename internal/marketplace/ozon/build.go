// internal/marketplace/ozon/build.go
package ozon

import (
	"fmt"
	"strconv"

	"watchsync/internal/feed"
	"watchsync/internal/marketplace"
)

// CreateStocks reconciles feed rows against the offer ids known to the
// marketplace. Every offer id ends up in the result exactly once: matched
// rows first, in feed order, then a count-0 record for every offer the feed
// does not mention. Duplicate feed codes are ignored past the first match.
// The offerIDs slice is not mutated.
func CreateStocks(remnants []feed.Remnant, offerIDs []string) ([]Stock, error) {
	known := make(map[string]bool, len(offerIDs))
	for _, id := range offerIDs {
		known[id] = true
	}

	stocks := make([]Stock, 0, len(offerIDs))
	matched := make(map[string]bool, len(offerIDs))
	for _, watch := range remnants {
		code := watch.Code()
		if !known[code] || matched[code] {
			continue
		}
		count, err := marketplace.ResolveCount(watch.Quantity())
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", code, err)
		}
		stocks = append(stocks, Stock{OfferID: code, Stock: count})
		matched[code] = true
	}

	// zero-stock fallback for offers the feed does not carry
	for _, id := range offerIDs {
		if !matched[id] {
			stocks = append(stocks, Stock{OfferID: id, Stock: 0})
		}
	}
	return stocks, nil
}

// CreatePrices builds price records for feed rows whose code is a known
// offer id. Unmatched offers get no record; there is no zero-price fallback.
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
			return nil, fmt.Errorf("offer %s: %w", code, err)
		}
		prices = append(prices, Price{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      "RUB",
			OfferID:           code,
			OldPrice:          "0",
			Price:             strconv.Itoa(value),
		})
	}
	return prices, nil
}
