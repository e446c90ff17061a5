package ingest

import (
	"context"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/pkg/scrape"
)

// ScrapeSource routes a channel to the scraper that serves it: the Binance
// CMS listing for announcement-page sources, the Telegram preview page for
// everything else.
type ScrapeSource struct {
	Telegram *scrape.TelegramClient
	Binance  *scrape.BinanceClient
}

func NewScrapeSource() *ScrapeSource {
	return &ScrapeSource{
		Telegram: scrape.NewTelegramClient(),
		Binance:  scrape.NewBinanceClient(),
	}
}

func (s *ScrapeSource) Messages(ctx context.Context, ch config.Channel) ([]model.RawMessage, error) {
	var raw []scrape.Message
	var err error
	if ch.Source == model.SourceBinanceTournament {
		raw, err = s.Binance.Fetch()
	} else {
		raw, err = s.Telegram.Fetch(ch.Username)
	}
	if err != nil {
		return nil, err
	}

	messages := make([]model.RawMessage, 0, len(raw))
	for _, m := range raw {
		messages = append(messages, model.RawMessage{
			ID:       m.ID,
			Text:     m.Text,
			Link:     m.Link,
			PostedAt: m.PostedAt,
			Channel:  ch.Username,
		})
	}
	return messages, nil
}
