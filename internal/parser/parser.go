package parser

import (
	"time"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/dateparse"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
)

// Parser turns one raw message into zero or more event drafts. Parsers
// never error: anything they cannot extract with certainty (a missing
// labeled line, an unresolvable date) means the message is skipped, not
// guessed at.
type Parser interface {
	Parse(msg model.RawMessage, ch config.Channel) []model.EventDraft
}

// For returns the parser for a source kind. The switch is deliberately
// exhaustive over model.SourceKind so an unhandled source is caught at the
// call site instead of silently producing nothing.
func For(kind model.SourceKind) (Parser, bool) {
	switch kind {
	case model.SourceBinanceAlpha:
		return &BinanceAlpha{}, true
	case model.SourceOKXBoost:
		return &OKXBoost{}, true
	case model.SourceTokenSplash:
		return &TokenSplash{}, true
	case model.SourceLaunchpoolLegacy:
		return &Launchpool{Legacy: true}, true
	case model.SourceLaunchpoolNew:
		return &Launchpool{}, true
	case model.SourceBinanceTournament:
		return &BinanceTournament{}, true
	default:
		return nil, false
	}
}

// resolverFor builds a date resolver carrying the channel's wall-clock
// zone. An unknown zone name degrades to UTC rather than failing the
// channel.
func resolverFor(ch config.Channel, now func() time.Time) *dateparse.Resolver {
	r := &dateparse.Resolver{Now: now}
	if ch.Timezone != "" {
		if loc, err := time.LoadLocation(ch.Timezone); err == nil {
			r.Loc = loc
		}
	}
	return r
}
