package ingest

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/parser"
)

// MessageSource fetches the raw messages for one configured channel.
type MessageSource interface {
	Messages(ctx context.Context, ch config.Channel) ([]model.RawMessage, error)
}

// CursorStore is the per-channel watermark persistence.
type CursorStore interface {
	GetWatermark(channel string) (int64, error)
	SetWatermark(channel string, id int64) error
}

// Runner drives one ingest run: channels sequentially, and within a
// channel, unseen messages in ascending id order so the watermark always
// reflects a processed prefix.
type Runner struct {
	source  MessageSource
	engine  *Engine
	cursors CursorStore
}

func NewRunner(source MessageSource, engine *Engine, cursors CursorStore) *Runner {
	return &Runner{source: source, engine: engine, cursors: cursors}
}

// Run processes every channel and returns one summary per channel. A
// channel that fails entirely (fetch error, watermark read error) is
// reported with Errors set and the rest of the channels still run.
func (r *Runner) Run(ctx context.Context, channels []config.Channel) []model.RunSummary {
	summaries := make([]model.RunSummary, 0, len(channels))
	for _, ch := range channels {
		summary := r.runChannel(ctx, ch)
		slog.Info("channel processed",
			"channel", summary.Channel,
			"new_messages", summary.NewMessages,
			"inserted", summary.Inserted,
			"updated", summary.Updated,
			"suggested", summary.Suggested,
			"skipped", summary.Skipped,
			"errors", summary.Errors,
			"watermark", summary.LastWatermark,
		)
		summaries = append(summaries, summary)
	}
	return summaries
}

func (r *Runner) runChannel(ctx context.Context, ch config.Channel) model.RunSummary {
	summary := model.RunSummary{Channel: ch.Username}

	watermark, err := r.cursors.GetWatermark(ch.Username)
	if err != nil {
		slog.Error("error reading watermark", "channel", ch.Username, "error", err)
		summary.Errors++
		return summary
	}
	summary.LastWatermark = watermark

	p, ok := parser.For(ch.Source)
	if !ok {
		slog.Error("no parser for source", "channel", ch.Username, "source", ch.Source)
		summary.Errors++
		return summary
	}

	messages, err := r.source.Messages(ctx, ch)
	if err != nil {
		slog.Error("error fetching messages", "channel", ch.Username, "error", err)
		summary.Errors++
		return summary
	}

	fresh := messages[:0:0]
	for _, m := range messages {
		if m.ID > watermark {
			fresh = append(fresh, m)
		}
	}
	sort.Slice(fresh, func(i, j int) bool { return fresh[i].ID < fresh[j].ID })
	summary.NewMessages = len(fresh)

	// The watermark may only cover a prefix of durably handled messages:
	// it never advances past the first message that hit a storage error,
	// even though later siblings are still attempted.
	var failedAt int64
	for _, m := range fresh {
		m.Channel = ch.Username
		drafts := p.Parse(m, ch)
		if len(drafts) == 0 {
			summary.Skipped++
			continue
		}
		failed := false
		for _, d := range drafts {
			outcome, err := r.engine.Apply(d)
			if err != nil {
				slog.Error("error persisting draft",
					"channel", ch.Username, "message_id", m.ID, "source_key", d.SourceKey, "error", err)
				summary.Errors++
				failed = true
				continue
			}
			switch outcome {
			case OutcomeInserted:
				summary.Inserted++
			case OutcomeUpdated:
				summary.Updated++
			case OutcomeSuggested:
				summary.Suggested++
			default:
				summary.Skipped++
			}
		}
		if failed && failedAt == 0 {
			failedAt = m.ID
		}
	}

	advanceTo := watermark
	for _, m := range fresh {
		if failedAt != 0 && m.ID >= failedAt {
			break
		}
		if m.ID > advanceTo {
			advanceTo = m.ID
		}
	}
	if advanceTo > watermark {
		if err := r.cursors.SetWatermark(ch.Username, advanceTo); err != nil {
			slog.Error("error advancing watermark", "channel", ch.Username, "error", err)
			summary.Errors++
			return summary
		}
		summary.LastWatermark = advanceTo
	}

	return summary
}

// runDeadline bounds a whole ingest run; individual fetches carry their own
// shorter HTTP timeouts.
const runDeadline = 5 * time.Minute

// RunWithDeadline wraps Run with the standard batch deadline.
func (r *Runner) RunWithDeadline(ctx context.Context, channels []config.Channel) []model.RunSummary {
	ctx, cancel := context.WithTimeout(ctx, runDeadline)
	defer cancel()
	return r.Run(ctx, channels)
}
