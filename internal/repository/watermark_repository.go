package repository

import (
	"database/sql"
)

type WatermarkRepository struct {
	db *sql.DB
}

func NewWatermarkRepository(db *sql.DB) *WatermarkRepository {
	return &WatermarkRepository{db: db}
}

// GetWatermark returns the last processed message id for a channel, zero
// for a channel seen for the first time.
func (r *WatermarkRepository) GetWatermark(channel string) (int64, error) {
	var id int64
	err := r.db.QueryRow(`
		SELECT last_message_id FROM channel_watermarks WHERE channel = $1
	`, channel).Scan(&id)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SetWatermark upserts the channel's watermark. Callers advance it only
// after every message up to id has been durably persisted or skipped; the
// GREATEST guard keeps a concurrent run from moving it backwards.
func (r *WatermarkRepository) SetWatermark(channel string, id int64) error {
	_, err := r.db.Exec(`
		INSERT INTO channel_watermarks(channel, last_message_id)
		VALUES($1, $2)
		ON CONFLICT (channel) DO UPDATE SET
			last_message_id = GREATEST(channel_watermarks.last_message_id, EXCLUDED.last_message_id),
			updated_at = now()
	`, channel, id)
	return err
}
