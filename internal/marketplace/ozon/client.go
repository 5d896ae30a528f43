// internal/marketplace/ozon/client.go
package ozon

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api-seller.ozon.ru"

const pageLimit = 1000

// Client wraps the Ozon seller API. Authentication is header-based
// (Client-Id + Api-Key); there is no retry, a failed call is final.
type Client struct {
	log zerolog.Logger
	rc  *resty.Client
}

func NewClient(log zerolog.Logger, baseURL, clientID, apiKey string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Client-Id", clientID).
		SetHeader("Api-Key", apiKey).
		SetTimeout(30 * time.Second)
	return &Client{log: log, rc: rc}
}

// OfferIDs pages through /v2/product/list following the last-seen-id cursor
// and collects every offer_id. The API reports a total; the loop ends once
// that many items were collected (or a page comes back empty).
func (c *Client) OfferIDs(ctx context.Context) ([]string, error) {
	var (
		lastID   string
		offerIDs []string
	)
	for {
		page, err := c.productPage(ctx, lastID)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			offerIDs = append(offerIDs, item.OfferID)
		}
		lastID = page.LastID
		if len(offerIDs) >= page.Total || len(page.Items) == 0 {
			break
		}
	}
	return offerIDs, nil
}

func (c *Client) productPage(ctx context.Context, lastID string) (*productListResult, error) {
	var out productListResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(productListRequest{
			Filter: productFilter{Visibility: "ALL"},
			LastID: lastID,
			Limit:  pageLimit,
		}).
		SetResult(&out).
		Post("/v2/product/list")
	if err != nil {
		return nil, fmt.Errorf("ozon: product list: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ozon: product list: http %s", resp.Status())
	}
	c.log.Debug().
		Int("items", len(out.Result.Items)).
		Int("total", out.Result.Total).
		Msg("product list page")
	return &out.Result, nil
}

// UpdateStocks submits one pre-sized stock batch and returns the raw
// response body for inspection.
func (c *Client) UpdateStocks(ctx context.Context, stocks []Stock) ([]byte, error) {
	return c.submit(ctx, "/v1/product/import/stocks", map[string]any{"stocks": stocks})
}

// UpdatePrices submits one pre-sized price batch and returns the raw
// response body for inspection.
func (c *Client) UpdatePrices(ctx context.Context, prices []Price) ([]byte, error) {
	return c.submit(ctx, "/v1/product/import/prices", map[string]any{"prices": prices})
}

func (c *Client) submit(ctx context.Context, path string, payload any) ([]byte, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(payload).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("ozon: %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ozon: %s: http %s", path, resp.Status())
	}
	return resp.Body(), nil
}
