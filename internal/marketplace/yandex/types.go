// internal/marketplace/yandex/types.go
package yandex

type offerMappingsResponse struct {
	Result offerMappingsResult `json:"result"`
}

type offerMappingsResult struct {
	OfferMappingEntries []offerMappingEntry `json:"offerMappingEntries"`
	Paging              paging              `json:"paging"`
}

type offerMappingEntry struct {
	Offer offerInfo `json:"offer"`
}

type offerInfo struct {
	ShopSKU string `json:"shopSku"`
}

type paging struct {
	NextPageToken string `json:"nextPageToken"`
}

// Stock is one entry of the PUT offers/stocks payload. Items always holds a
// single FIT item stamped with the run timestamp.
type Stock struct {
	SKU         string      `json:"sku"`
	WarehouseID string      `json:"warehouseId"`
	Items       []StockItem `json:"items"`
}

type StockItem struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

// Price is one entry of the offer-prices/updates payload.
type Price struct {
	ID    string    `json:"id"`
	Price PriceBody `json:"price"`
}

type PriceBody struct {
	Value      int    `json:"value"`
	CurrencyID string `json:"currencyId"`
}
