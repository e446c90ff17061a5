package ingest

import (
	"time"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
)

// Outcome classifies what the engine did with one draft.
const (
	OutcomeInserted  = "inserted"
	OutcomeUpdated   = "updated"
	OutcomeSuggested = "suggested"
	OutcomeSkipped   = "skipped"
)

// EventStore is the slice of persistence the engine needs.
type EventStore interface {
	FindApprovedByKey(typeSlug, coinName string, startAt time.Time) (*model.Event, error)
	FindPendingBySourceKey(source, sourceKey string) (*model.PendingEvent, error)
	FindPendingByNaturalKey(title string, startAt time.Time, link string) (*model.PendingEvent, error)
	InsertPending(*model.PendingEvent) error
	UpdatePending(*model.PendingEvent) error
	InsertEditSuggestion(*model.EditSuggestion) error
}

// Engine decides whether a draft duplicates an approved event, updates a
// pending auto-draft, or is new. The approved match is checked first: once
// a human has approved an event, scrapes only ever propose edits, never
// overwrite.
type Engine struct {
	store EventStore
}

func NewEngine(store EventStore) *Engine {
	return &Engine{store: store}
}

// Apply persists one draft and reports the outcome. Errors are per-draft;
// the caller continues with siblings.
func (e *Engine) Apply(d model.EventDraft) (string, error) {
	if d.Title == "" || d.TypeSlug == "" || d.StartAt.IsZero() {
		return OutcomeSkipped, nil
	}

	approved, err := e.store.FindApprovedByKey(d.TypeSlug, d.CoinName, d.StartAt)
	if err != nil {
		return "", err
	}
	if approved != nil {
		changes := diffApproved(approved, d)
		if len(changes) == 0 {
			return OutcomeSkipped, nil
		}
		suggestion := &model.EditSuggestion{
			EventID: approved.ID,
			Source:  d.Source,
			Changes: changes,
		}
		if err := e.store.InsertEditSuggestion(suggestion); err != nil {
			return "", err
		}
		return OutcomeSuggested, nil
	}

	var pending *model.PendingEvent
	if d.SourceKey != "" {
		pending, err = e.store.FindPendingBySourceKey(d.Source, d.SourceKey)
	} else {
		pending, err = e.store.FindPendingByNaturalKey(d.Title, d.StartAt, d.Link)
	}
	if err != nil {
		return "", err
	}

	if pending != nil {
		mergeDraft(pending, d)
		if err := e.store.UpdatePending(pending); err != nil {
			return "", err
		}
		return OutcomeUpdated, nil
	}

	row := &model.PendingEvent{
		Source:       d.Source,
		SourceKey:    d.SourceKey,
		Title:        d.Title,
		Description:  d.Description,
		TypeSlug:     d.TypeSlug,
		CoinName:     d.CoinName,
		CoinQuantity: d.CoinQuantity,
		StartAt:      d.StartAt,
		EndAt:        d.EndAt,
		Link:         draftLink(d),
		Timezone:     d.Timezone,
	}
	if err := e.store.InsertPending(row); err != nil {
		return "", err
	}
	return OutcomeInserted, nil
}

// diffApproved compares a draft against an approved row over the fixed
// comparable field set. Fields the draft does not carry never count as
// changes: scraped absence must not erase moderated data.
func diffApproved(approved *model.Event, d model.EventDraft) map[string]string {
	changes := make(map[string]string)

	if d.Title != "" && d.Title != approved.Title {
		changes["title"] = d.Title
	}
	if d.Description != "" && d.Description != approved.Description {
		changes["description"] = d.Description
	}
	if !d.StartAt.IsZero() && !d.StartAt.Equal(approved.StartAt) {
		changes["start_at"] = d.StartAt.UTC().Format(time.RFC3339)
	}
	if d.EndAt != nil && (approved.EndAt == nil || !d.EndAt.Equal(*approved.EndAt)) {
		changes["end_at"] = d.EndAt.UTC().Format(time.RFC3339)
	}
	if d.Timezone != "" && d.Timezone != approved.Timezone {
		changes["timezone"] = d.Timezone
	}
	if d.TypeSlug != "" && d.TypeSlug != approved.TypeSlug {
		changes["type_slug"] = d.TypeSlug
	}
	if link := draftLink(d); link != "" && link != approved.Link {
		changes["link"] = link
	}
	if d.CoinName != "" && d.CoinName != approved.CoinName {
		changes["coin_name"] = d.CoinName
	}
	if d.CoinQuantity != nil && (approved.CoinQuantity == nil || !d.CoinQuantity.Equal(*approved.CoinQuantity)) {
		changes["coin_quantity"] = d.CoinQuantity.String()
	}

	return changes
}

// mergeDraft folds a draft's non-empty fields into an existing pending row.
// Empty incoming fields leave the stored value alone.
func mergeDraft(p *model.PendingEvent, d model.EventDraft) {
	if d.Title != "" {
		p.Title = d.Title
	}
	if d.Description != "" {
		p.Description = d.Description
	}
	if d.TypeSlug != "" {
		p.TypeSlug = d.TypeSlug
	}
	if d.CoinName != "" {
		p.CoinName = d.CoinName
	}
	if d.CoinQuantity != nil {
		p.CoinQuantity = d.CoinQuantity
	}
	if !d.StartAt.IsZero() {
		p.StartAt = d.StartAt
	}
	if d.EndAt != nil {
		p.EndAt = d.EndAt
	}
	if link := draftLink(d); link != "" {
		p.Link = link
	}
	if d.Timezone != "" {
		p.Timezone = d.Timezone
	}
}

func draftLink(d model.EventDraft) string {
	if d.OmitLink {
		return ""
	}
	return d.Link
}
