package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) FindApprovedByKey(typeSlug, coinName string, startAt time.Time) (*model.Event, error) {
	row := r.db.QueryRow(`
		SELECT id, title, description, type_slug, coin_name, coin_quantity, start_at, end_at, link, timezone, created_at
		FROM events
		WHERE type_slug = $1 AND coin_name = $2 AND start_at = $3
	`, typeSlug, coinName, startAt)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) GetEventByID(id uuid.UUID) (*model.Event, error) {
	row := r.db.QueryRow(`
		SELECT id, title, description, type_slug, coin_name, coin_quantity, start_at, end_at, link, timezone, created_at
		FROM events
		WHERE id = $1
	`, id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) GetFeed(limit, offset int, typeSlug string, from *time.Time) ([]model.Event, error) {
	rows, err := r.db.Query(`
		SELECT id, title, description, type_slug, coin_name, coin_quantity, start_at, end_at, link, timezone, created_at
		FROM events
		WHERE ($3 = '' OR type_slug = $3)
		  AND ($4::timestamptz IS NULL OR start_at >= $4)
		ORDER BY start_at ASC
		LIMIT $1 OFFSET $2
	`, limit, offset, typeSlug, from)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) GetFeedTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&total)
	return total, err
}

func (r *EventRepository) FindPendingBySourceKey(source, sourceKey string) (*model.PendingEvent, error) {
	row := r.db.QueryRow(`
		SELECT id, source, source_key, title, description, type_slug, coin_name, coin_quantity, start_at, end_at, link, timezone, created_at, updated_at
		FROM pending_events
		WHERE source = $1 AND source_key = $2
	`, source, sourceKey)

	p, err := scanPending(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *EventRepository) FindPendingByNaturalKey(title string, startAt time.Time, link string) (*model.PendingEvent, error) {
	row := r.db.QueryRow(`
		SELECT id, source, source_key, title, description, type_slug, coin_name, coin_quantity, start_at, end_at, link, timezone, created_at, updated_at
		FROM pending_events
		WHERE title = $1 AND start_at = $2 AND COALESCE(link, '') = $3
	`, title, startAt, link)

	p, err := scanPending(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *EventRepository) InsertPending(p *model.PendingEvent) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	// The conflict branch fires when two runs race on the same key; it
	// merges like the engine does: non-empty incoming fields win.
	return r.db.QueryRow(`
		INSERT INTO pending_events(id, source, source_key, title, description, type_slug, coin_name, coin_quantity, start_at, end_at, link, timezone)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (source, source_key) DO UPDATE SET
			title = EXCLUDED.title,
			description = COALESCE(NULLIF(EXCLUDED.description, ''), pending_events.description),
			type_slug = EXCLUDED.type_slug,
			coin_name = COALESCE(EXCLUDED.coin_name, pending_events.coin_name),
			coin_quantity = COALESCE(EXCLUDED.coin_quantity, pending_events.coin_quantity),
			start_at = EXCLUDED.start_at,
			end_at = COALESCE(EXCLUDED.end_at, pending_events.end_at),
			link = COALESCE(EXCLUDED.link, pending_events.link),
			timezone = COALESCE(EXCLUDED.timezone, pending_events.timezone),
			updated_at = now()
		RETURNING id
	`, p.ID, p.Source, nullString(p.SourceKey), p.Title, p.Description, p.TypeSlug,
		nullString(p.CoinName), nullDecimal(p.CoinQuantity), p.StartAt, nullTime(p.EndAt),
		nullString(p.Link), nullString(p.Timezone)).Scan(&p.ID)
}

func (r *EventRepository) UpdatePending(p *model.PendingEvent) error {
	_, err := r.db.Exec(`
		UPDATE pending_events SET
			title = $2,
			description = $3,
			type_slug = $4,
			coin_name = $5,
			coin_quantity = $6,
			start_at = $7,
			end_at = $8,
			link = $9,
			timezone = $10,
			updated_at = now()
		WHERE id = $1
	`, p.ID, p.Title, p.Description, p.TypeSlug, nullString(p.CoinName),
		nullDecimal(p.CoinQuantity), p.StartAt, nullTime(p.EndAt), nullString(p.Link), nullString(p.Timezone))
	return err
}

func (r *EventRepository) GetPendingFeed(limit, offset int) ([]model.PendingEvent, error) {
	rows, err := r.db.Query(`
		SELECT id, source, source_key, title, description, type_slug, coin_name, coin_quantity, start_at, end_at, link, timezone, created_at, updated_at
		FROM pending_events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []model.PendingEvent
	for rows.Next() {
		p, err := scanPending(rows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}

func (r *EventRepository) InsertEditSuggestion(s *model.EditSuggestion) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	changes, err := json.Marshal(s.Changes)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
		INSERT INTO edit_suggestions(id, event_id, source, changes)
		VALUES($1, $2, $3, $4)
	`, s.ID, s.EventID, s.Source, changes)
	return err
}

func (r *EventRepository) GetEditSuggestions(limit, offset int) ([]model.EditSuggestion, error) {
	rows, err := r.db.Query(`
		SELECT id, event_id, source, changes, created_at
		FROM edit_suggestions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []model.EditSuggestion
	for rows.Next() {
		var s model.EditSuggestion
		var changes []byte
		if err := rows.Scan(&s.ID, &s.EventID, &s.Source, &changes, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(changes, &s.Changes); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return suggestions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var e model.Event
	var description, coinName, quantity, link, timezone sql.NullString
	var endAt sql.NullTime

	err := row.Scan(&e.ID, &e.Title, &description, &e.TypeSlug, &coinName, &quantity,
		&e.StartAt, &endAt, &link, &timezone, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	e.Description = description.String
	e.CoinName = coinName.String
	e.Link = link.String
	e.Timezone = timezone.String
	if endAt.Valid {
		t := endAt.Time
		e.EndAt = &t
	}
	if quantity.Valid {
		if d, err := decimal.NewFromString(quantity.String); err == nil {
			e.CoinQuantity = &d
		}
	}
	return &e, nil
}

func scanPending(row rowScanner) (*model.PendingEvent, error) {
	var p model.PendingEvent
	var sourceKey, description, coinName, quantity, link, timezone sql.NullString
	var endAt sql.NullTime

	err := row.Scan(&p.ID, &p.Source, &sourceKey, &p.Title, &description, &p.TypeSlug,
		&coinName, &quantity, &p.StartAt, &endAt, &link, &timezone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.SourceKey = sourceKey.String
	p.Description = description.String
	p.CoinName = coinName.String
	p.Link = link.String
	p.Timezone = timezone.String
	if endAt.Valid {
		t := endAt.Time
		p.EndAt = &t
	}
	if quantity.Valid {
		if d, err := decimal.NewFromString(quantity.String); err == nil {
			p.CoinQuantity = &d
		}
	}
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
