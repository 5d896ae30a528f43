// internal/marketplace/ozon/types.go
package ozon

type productListRequest struct {
	Filter productFilter `json:"filter"`
	LastID string        `json:"last_id"`
	Limit  int           `json:"limit"`
}

type productFilter struct {
	Visibility string `json:"visibility"`
}

type productListResponse struct {
	Result productListResult `json:"result"`
}

type productListResult struct {
	Items  []productItem `json:"items"`
	Total  int           `json:"total"`
	LastID string        `json:"last_id"`
}

type productItem struct {
	OfferID string `json:"offer_id"`
}

// Stock is one entry of the /v1/product/import/stocks payload.
type Stock struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

// Price is one entry of the /v1/product/import/prices payload. Price is the
// normalized integer price as a string, the way the endpoint wants it.
type Price struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}
