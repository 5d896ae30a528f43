// internal/marketplace/yandex/client.go
package yandex

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.partner.market.yandex.ru"

const pageLimit = 200

// Client wraps the Yandex Market partner API with Bearer authentication.
// Campaign ids are passed per call; one token serves several campaigns.
type Client struct {
	log zerolog.Logger
	rc  *resty.Client
}

func NewClient(log zerolog.Logger, baseURL, token string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	return &Client{log: log, rc: rc}
}

// OfferIDs pages through the campaign's offer-mapping entries following the
// page-token cursor until the API stops returning one, and collects every
// shopSku.
func (c *Client) OfferIDs(ctx context.Context, campaignID string) ([]string, error) {
	var (
		pageToken string
		offerIDs  []string
	)
	for {
		page, err := c.offerMappingPage(ctx, campaignID, pageToken)
		if err != nil {
			return nil, err
		}
		for _, entry := range page.OfferMappingEntries {
			offerIDs = append(offerIDs, entry.Offer.ShopSKU)
		}
		pageToken = page.Paging.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return offerIDs, nil
}

func (c *Client) offerMappingPage(ctx context.Context, campaignID, pageToken string) (*offerMappingsResult, error) {
	var out offerMappingsResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page_token": pageToken,
			"limit":      strconv.Itoa(pageLimit),
		}).
		SetResult(&out).
		Get(fmt.Sprintf("/campaigns/%s/offer-mapping-entries", campaignID))
	if err != nil {
		return nil, fmt.Errorf("yandex: offer mappings: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yandex: offer mappings: http %s", resp.Status())
	}
	c.log.Debug().
		Str("campaign", campaignID).
		Int("entries", len(out.Result.OfferMappingEntries)).
		Msg("offer mapping page")
	return &out.Result, nil
}

// UpdateStocks submits one pre-sized stock batch for the campaign and
// returns the raw response body for inspection.
func (c *Client) UpdateStocks(ctx context.Context, campaignID string, stocks []Stock) ([]byte, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(map[string]any{"skus": stocks}).
		Put(fmt.Sprintf("/campaigns/%s/offers/stocks", campaignID))
	if err != nil {
		return nil, fmt.Errorf("yandex: update stocks: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yandex: update stocks: http %s", resp.Status())
	}
	return resp.Body(), nil
}

// UpdatePrices submits one pre-sized price batch for the campaign and
// returns the raw response body for inspection.
func (c *Client) UpdatePrices(ctx context.Context, campaignID string, prices []Price) ([]byte, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(map[string]any{"offers": prices}).
		Post(fmt.Sprintf("/campaigns/%s/offer-prices/updates", campaignID))
	if err != nil {
		return nil, fmt.Errorf("yandex: update prices: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yandex: update prices: http %s", resp.Status())
	}
	return resp.Body(), nil
}
