package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceKind identifies which parser handles a channel's messages.
// Adding a new source means adding a constant here and a case to
// parser.For; the switch there is exhaustive on purpose.
type SourceKind string

const (
	SourceBinanceAlpha      SourceKind = "binance_alpha"
	SourceOKXBoost          SourceKind = "okx_boost"
	SourceTokenSplash       SourceKind = "token_splash"
	SourceLaunchpoolLegacy  SourceKind = "launchpool_legacy"
	SourceLaunchpoolNew     SourceKind = "launchpool"
	SourceBinanceTournament SourceKind = "binance_tournament"
)

// RawMessage is one scraped post. The ID is source-local and is what the
// channel watermark tracks; the text is kept as fetched, normalization
// happens in the pipeline.
type RawMessage struct {
	ID       int64
	Text     string
	Link     string
	PostedAt *time.Time
	Channel  string
}

// EventDraft is the parser output: a candidate event prior to dedup.
// A draft missing Title, TypeSlug or StartAt never reaches persistence.
type EventDraft struct {
	Title        string
	Description  string
	StartAt      time.Time
	EndAt        *time.Time
	CoinName     string
	CoinQuantity *decimal.Decimal
	SourceKey    string
	TypeSlug     string
	Source       string
	Link         string
	OmitLink     bool
	Timezone     string
}

// Event is an approved, publicly displayed calendar row.
type Event struct {
	ID           uuid.UUID
	Title        string
	Description  string
	TypeSlug     string
	CoinName     string
	CoinQuantity *decimal.Decimal
	StartAt      time.Time
	EndAt        *time.Time
	Link         string
	Timezone     string
	CreatedAt    time.Time
}

// PendingEvent is an unmoderated auto-draft row, keyed by (Source, SourceKey)
// so repeat scrapes of the same announcement update in place.
type PendingEvent struct {
	ID           uuid.UUID
	Source       string
	SourceKey    string
	Title        string
	Description  string
	TypeSlug     string
	CoinName     string
	CoinQuantity *decimal.Decimal
	StartAt      time.Time
	EndAt        *time.Time
	Link         string
	Timezone     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EditSuggestion is a proposed patch against an approved event. Only the
// changed fields are recorded; a moderator applies or discards it, the
// approved row is never mutated directly by the scraper.
type EditSuggestion struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	Source    string
	Changes   map[string]string
	CreatedAt time.Time
}

// ChannelWatermark is the last processed message id for a channel.
type ChannelWatermark struct {
	Channel       string
	LastMessageID int64
	UpdatedAt     time.Time
}

// RunSummary is the per-channel outcome of one ingest run.
type RunSummary struct {
	Channel       string
	NewMessages   int
	Inserted      int
	Updated       int
	Suggested     int
	Skipped       int
	Errors        int
	LastWatermark int64
}
