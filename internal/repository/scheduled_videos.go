package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/google/uuid"
)

type ScheduledVideoFilter struct {
	ChannelID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Status    *domain.ScheduledStatus
}

const scheduledVideoSelect = `
	SELECT
		s.id,
		s.owner_id,
		s.channel_id,
		c.name,
		c.color,
		s.title,
		s.description,
		s.scheduled_date,
		s.scheduled_time,
		s.youtube_link,
		s.status,
		s.created_at,
		s.version
	FROM scheduled_videos s
	JOIN channels c ON c.id = s.channel_id
`

func scanScheduledVideo(row rowScanner) (*domain.ScheduledVideo, error) {
	sv := &domain.ScheduledVideo{}
	dst := []any{
		&sv.ID,
		&sv.OwnerID,
		&sv.ChannelID,
		&sv.ChannelName,
		&sv.ChannelColor,
		&sv.Title,
		&sv.Description,
		&sv.ScheduledDate,
		&sv.ScheduledTime,
		&sv.YoutubeLink,
		&sv.Status,
		&sv.CreatedAt,
		&sv.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	return sv, nil
}

func (r *Repository) GetScheduledVideos(ownerID uuid.UUID, filter ScheduledVideoFilter) ([]*domain.ScheduledVideo, error) {
	conditions := []string{"s.owner_id = $1"}
	args := []any{ownerID}

	if filter.ChannelID != nil {
		args = append(args, *filter.ChannelID)
		conditions = append(conditions, fmt.Sprintf("s.channel_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("s.scheduled_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("s.scheduled_date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)))
	}

	query := scheduledVideoSelect + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY s.scheduled_date, s.scheduled_time`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []*domain.ScheduledVideo{}
	for rows.Next() {
		sv, err := scanScheduledVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, sv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return videos, nil
}

func (r *Repository) GetScheduledVideoByID(id uuid.UUID) (*domain.ScheduledVideo, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	return scanScheduledVideo(r.dbpool.QueryRowContext(ctx, scheduledVideoSelect+` WHERE s.id = $1`, id))
}

// GetOccupiedSlots 返回某个频道在 [from, to] 之间已经被占用的时段
// 只查询该频道，调用方不需要再按频道过滤
func (r *Repository) GetOccupiedSlots(channelID uuid.UUID, from, to time.Time) ([]scheduler.OccupiedSlot, error) {
	query := `
		SELECT scheduled_date, scheduled_time
		FROM scheduled_videos
		WHERE channel_id = $1 AND scheduled_date BETWEEN $2 AND $3
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, channelID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []scheduler.OccupiedSlot{}
	for rows.Next() {
		var slot scheduler.OccupiedSlot
		if err := rows.Scan(&slot.Date, &slot.Time); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// ScheduleVideo 把看板上的视频移入排期：删除视频并插入排期记录
// (channel_id, scheduled_date, scheduled_time) 上的唯一约束保证同一时段不会被重复占用
func (r *Repository) ScheduleVideo(v *domain.Video, sv *domain.ScheduledVideo) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = $1 AND version = $2`, v.ID, v.Version)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}

	query := `
		INSERT INTO scheduled_videos (owner_id, channel_id, title, description, scheduled_date, scheduled_time, youtube_link, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`
	params := []any{sv.OwnerID, sv.ChannelID, sv.Title, sv.Description, sv.ScheduledDate, sv.ScheduledTime, sv.YoutubeLink, sv.Status}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&sv.ID, &sv.CreatedAt, &sv.Version); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) UpdateScheduledVideo(sv *domain.ScheduledVideo) error {
	query := `
		UPDATE scheduled_videos
		SET
			title = $1,
			youtube_link = $2,
			status = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{sv.Title, sv.YoutubeLink, sv.Status, sv.ID, sv.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&sv.Version); err != nil {
		return err
	}

	return nil
}

// UnscheduleVideo 取消排期，视频回到看板的“就绪”列
func (r *Repository) UnscheduleVideo(sv *domain.ScheduledVideo, v *domain.Video) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM scheduled_videos WHERE id = $1 AND version = $2`, sv.ID, sv.Version)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}

	if err := insertVideo(ctx, tx, v); err != nil {
		return err
	}

	return tx.Commit()
}
