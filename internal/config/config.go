// internal/config/config.go
package conf

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Ozon holds the seller credentials for api-seller.ozon.ru.
type Ozon struct {
	ClientID string
	APIKey   string
}

// Campaign is one Yandex Market campaign plus the warehouse its stock
// updates are reported against.
type Campaign struct {
	ID          string
	WarehouseID string
}

// Yandex holds the partner API token and the two campaigns (FBS and DBS)
// served by it.
type Yandex struct {
	Token string
	FBS   Campaign
	DBS   Campaign
}

// Feed describes the inventory feed source. HeaderRow is the zero-based row
// index of the column-name row; data rows follow it.
type Feed struct {
	URL        string
	HeaderRow  int
	CSVCharset string
}

// Config is the explicit configuration record handed to the syncer. It is
// built exactly once, at the process boundary.
type Config struct {
	Feed   Feed
	Ozon   Ozon
	Yandex Yandex
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load collects configuration from the environment, after merging an
// optional .env file in the working directory (existing env wins).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Feed: Feed{
			URL:        getenv("STOCK_FEED_URL", "https://timeworld.ru/upload/files/ostatki.zip"),
			HeaderRow:  atoienv("STOCK_FEED_HEADER_ROW", 17),
			CSVCharset: getenv("STOCK_FEED_CSV_CHARSET", "windows-1251"),
		},
		Ozon: Ozon{
			ClientID: os.Getenv("CLIENT_ID"),
			APIKey:   os.Getenv("SELLER_TOKEN"),
		},
		Yandex: Yandex{
			Token: os.Getenv("MARKET_TOKEN"),
			FBS: Campaign{
				ID:          os.Getenv("FBS_ID"),
				WarehouseID: os.Getenv("WAREHOUSE_FBS_ID"),
			},
			DBS: Campaign{
				ID:          os.Getenv("DBS_ID"),
				WarehouseID: os.Getenv("WAREHOUSE_DBS_ID"),
			},
		},
	}
}
