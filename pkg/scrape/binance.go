package scrape

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

const (
	binanceCatalogURL  = "https://www.binance.com/bapi/composite/v1/public/cms/article/list/query?type=1&pageNo=1&pageSize=20&catalogId=48"
	binanceArticleBase = "https://www.binance.com/en/support/announcement/"
)

type binanceResponse struct {
	Data struct {
		Catalogs []struct {
			Articles []binanceArticle `json:"articles"`
		} `json:"catalogs"`
		Articles []binanceArticle `json:"articles"`
	} `json:"data"`
}

type binanceArticle struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	ReleaseDate int64  `json:"releaseDate"` // milliseconds UTC
}

// BinanceClient lists announcement page titles from the public CMS
// endpoint. Articles come back either at the top level or nested per
// catalog depending on the endpoint mood; both shapes are read.
type BinanceClient struct {
	httpClient *http.Client
}

func NewBinanceClient() *BinanceClient {
	return &BinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch returns announcement titles as messages in ascending article id
// order; the article id doubles as the watermark id.
func (c *BinanceClient) Fetch() ([]Message, error) {
	req, err := http.NewRequest(http.MethodGet, binanceCatalogURL, nil)
	if err != nil {
		return nil, fmt.Errorf("binance request: %w", err)
	}
	req.Header.Set("User-Agent", telegramUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance fetch: status %d", resp.StatusCode)
	}

	var parsed binanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}

	articles := parsed.Data.Articles
	for _, cat := range parsed.Data.Catalogs {
		articles = append(articles, cat.Articles...)
	}

	messages := make([]Message, 0, len(articles))
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		msg := Message{
			ID:   a.ID,
			Text: a.Title,
			Link: binanceArticleBase + a.Code,
		}
		if a.ReleaseDate > 0 {
			at := time.Unix(a.ReleaseDate/1000, 0).UTC()
			msg.PostedAt = &at
		}
		messages = append(messages, msg)
	}

	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
	return messages, nil
}
