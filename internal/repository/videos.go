package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/google/uuid"
)

type VideoFilter struct {
	ChannelID  *uuid.UUID
	Stage      *domain.VideoStage
	AssigneeID *uuid.UUID
}

const videoSelect = `
	SELECT
		v.id,
		v.owner_id,
		v.channel_id,
		c.name,
		v.title,
		v.description,
		v.stage,
		v.assignee_id,
		COALESCE(m.full_name, ''),
		v.thumbnail_ready,
		v.drive_link,
		v.created_at,
		v.version
	FROM videos v
	JOIN channels c ON c.id = v.channel_id
	LEFT JOIN members m ON m.id = v.assignee_id
`

func scanVideo(row rowScanner) (*domain.Video, error) {
	v := &domain.Video{}
	var assignee uuid.NullUUID

	dst := []any{
		&v.ID,
		&v.OwnerID,
		&v.ChannelID,
		&v.ChannelName,
		&v.Title,
		&v.Description,
		&v.Stage,
		&assignee,
		&v.AssigneeName,
		&v.ThumbnailReady,
		&v.DriveLink,
		&v.CreatedAt,
		&v.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	if assignee.Valid {
		v.AssigneeID = &assignee.UUID
	}

	return v, nil
}

type execQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertVideo(ctx context.Context, q execQuerier, v *domain.Video) error {
	query := `
		INSERT INTO videos (owner_id, channel_id, title, description, stage, assignee_id, thumbnail_ready, drive_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	params := []any{v.OwnerID, v.ChannelID, v.Title, v.Description, v.Stage, v.AssigneeID, v.ThumbnailReady, v.DriveLink}
	return q.QueryRowContext(ctx, query, params...).Scan(&v.ID, &v.CreatedAt, &v.Version)
}

func (r *Repository) CreateVideo(v *domain.Video) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	return insertVideo(ctx, r.dbpool, v)
}

func (r *Repository) GetVideos(ownerID uuid.UUID, filter VideoFilter) ([]*domain.Video, error) {
	conditions := []string{"v.owner_id = $1"}
	args := []any{ownerID}

	if filter.ChannelID != nil {
		args = append(args, *filter.ChannelID)
		conditions = append(conditions, fmt.Sprintf("v.channel_id = $%d", len(args)))
	}
	if filter.Stage != nil {
		args = append(args, *filter.Stage)
		conditions = append(conditions, fmt.Sprintf("v.stage = $%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		conditions = append(conditions, fmt.Sprintf("v.assignee_id = $%d", len(args)))
	}

	query := videoSelect + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY v.created_at DESC`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []*domain.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return videos, nil
}

func (r *Repository) GetVideoByID(id uuid.UUID) (*domain.Video, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	return scanVideo(r.dbpool.QueryRowContext(ctx, videoSelect+` WHERE v.id = $1`, id))
}

func (r *Repository) UpdateVideo(v *domain.Video) error {
	query := `
		UPDATE videos
		SET
			channel_id = $1,
			title = $2,
			description = $3,
			stage = $4,
			assignee_id = $5,
			thumbnail_ready = $6,
			drive_link = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{v.ChannelID, v.Title, v.Description, v.Stage, v.AssigneeID, v.ThumbnailReady, v.DriveLink, v.ID, v.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&v.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteVideo(id uuid.UUID) error {
	query := `
		DELETE FROM videos WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// SendVideoBackToIdeas 删除视频并把它作为待定创意放回创意库
func (r *Repository) SendVideoBackToIdeas(v *domain.Video, idea *domain.Idea) error {
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
		INSERT INTO ideas (owner_id, channel_id, title, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`
	params := []any{idea.OwnerID, idea.ChannelID, idea.Title, idea.Description, idea.Status}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&idea.ID, &idea.CreatedAt, &idea.Version); err != nil {
		return err
	}

	return tx.Commit()
}
