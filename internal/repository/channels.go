package repository

import (
	"database/sql"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/google/uuid"
)

const channelColumns = `
	id, owner_id, name, link, language, niche, sub_niche, micro_niche,
	color, logo_url, posting_days, posting_times, created_at, version
`

func weekdaysToInt16(days []time.Weekday) []int16 {
	out := make([]int16, 0, len(days))
	for _, d := range days {
		out = append(out, int16(d))
	}
	return out
}

func int16ToWeekdays(days []int16) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanChannel(row rowScanner) (*domain.Channel, error) {
	ch := &domain.Channel{}
	var days []int16
	var times []string

	dst := []any{
		&ch.ID,
		&ch.OwnerID,
		&ch.Name,
		&ch.Link,
		&ch.Language,
		&ch.Niche,
		&ch.SubNiche,
		&ch.MicroNiche,
		&ch.Color,
		&ch.LogoURL,
		r.typeMap.SQLScanner(&days),
		r.typeMap.SQLScanner(&times),
		&ch.CreatedAt,
		&ch.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	ch.PostingDays = int16ToWeekdays(days)
	ch.PostingTimes = times
	if ch.PostingTimes == nil {
		ch.PostingTimes = []string{}
	}

	return ch, nil
}

func (r *Repository) CreateChannel(ch *domain.Channel) error {
	query := `
		INSERT INTO channels (
			owner_id,
			name,
			link,
			language,
			niche,
			sub_niche,
			micro_niche,
			color,
			logo_url,
			posting_days,
			posting_times
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{
		ch.OwnerID,
		ch.Name,
		ch.Link,
		ch.Language,
		ch.Niche,
		ch.SubNiche,
		ch.MicroNiche,
		ch.Color,
		ch.LogoURL,
		weekdaysToInt16(ch.PostingDays),
		ch.PostingTimes,
	}
	dst := []any{&ch.ID, &ch.CreatedAt, &ch.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllChannels(ownerID uuid.UUID) ([]*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE owner_id = $1 ORDER BY name`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := []*domain.Channel{}
	for rows.Next() {
		ch, err := r.scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return channels, nil
}

func (r *Repository) GetChannelByID(id uuid.UUID) (*domain.Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.scanChannel(r.dbpool.QueryRowContext(ctx, query, id))
}

func (r *Repository) UpdateChannel(ch *domain.Channel) error {
	query := `
		UPDATE channels
		SET
			name = $1,
			link = $2,
			language = $3,
			niche = $4,
			sub_niche = $5,
			micro_niche = $6,
			color = $7,
			logo_url = $8,
			posting_days = $9,
			posting_times = $10,
			version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{
		ch.Name,
		ch.Link,
		ch.Language,
		ch.Niche,
		ch.SubNiche,
		ch.MicroNiche,
		ch.Color,
		ch.LogoURL,
		weekdaysToInt16(ch.PostingDays),
		ch.PostingTimes,
		ch.ID,
		ch.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&ch.Version); err != nil {
		return err
	}

	return nil
}

// DeleteChannel 删除频道，创意、视频和排期通过外键级联删除
func (r *Repository) DeleteChannel(id uuid.UUID) error {
	query := `
		DELETE FROM channels WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}
