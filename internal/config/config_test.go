package conf

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOCK_FEED_URL", "")
	t.Setenv("STOCK_FEED_HEADER_ROW", "")
	t.Setenv("STOCK_FEED_CSV_CHARSET", "")
	c := Load()
	if c.Feed.URL != "https://timeworld.ru/upload/files/ostatki.zip" {
		t.Fatalf("feed URL default: %s", c.Feed.URL)
	}
	if c.Feed.HeaderRow != 17 {
		t.Fatalf("header row default: %d", c.Feed.HeaderRow)
	}
	if c.Feed.CSVCharset != "windows-1251" {
		t.Fatalf("csv charset default: %s", c.Feed.CSVCharset)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("STOCK_FEED_URL", "https://example.com/feed.zip")
	t.Setenv("STOCK_FEED_HEADER_ROW", "3")
	t.Setenv("CLIENT_ID", "cid")
	t.Setenv("SELLER_TOKEN", "sk")
	t.Setenv("MARKET_TOKEN", "mk")
	t.Setenv("FBS_ID", "f-1")
	t.Setenv("DBS_ID", "d-1")
	t.Setenv("WAREHOUSE_FBS_ID", "wf")
	t.Setenv("WAREHOUSE_DBS_ID", "wd")

	c := Load()
	if c.Feed.URL != "https://example.com/feed.zip" || c.Feed.HeaderRow != 3 {
		t.Fatalf("feed env: %+v", c.Feed)
	}
	if c.Ozon.ClientID != "cid" || c.Ozon.APIKey != "sk" {
		t.Fatalf("ozon env: %+v", c.Ozon)
	}
	if c.Yandex.Token != "mk" {
		t.Fatalf("yandex token env: %+v", c.Yandex)
	}
	if c.Yandex.FBS.ID != "f-1" || c.Yandex.FBS.WarehouseID != "wf" {
		t.Fatalf("fbs env: %+v", c.Yandex.FBS)
	}
	if c.Yandex.DBS.ID != "d-1" || c.Yandex.DBS.WarehouseID != "wd" {
		t.Fatalf("dbs env: %+v", c.Yandex.DBS)
	}
}

func TestLoadBadHeaderRowFallsBack(t *testing.T) {
	t.Setenv("STOCK_FEED_HEADER_ROW", "many")
	if c := Load(); c.Feed.HeaderRow != 17 {
		t.Fatalf("header row fallback: %d", c.Feed.HeaderRow)
	}
}
