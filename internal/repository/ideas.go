package repository

import (
	"fmt"
	"strings"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/google/uuid"
)

type IdeaFilter struct {
	ChannelID *uuid.UUID
	Status    *domain.IdeaStatus
}

const ideaColumns = `id, owner_id, channel_id, title, description, status, created_at, version`

func ideaDst(idea *domain.Idea) []any {
	return []any{&idea.ID, &idea.OwnerID, &idea.ChannelID, &idea.Title, &idea.Description, &idea.Status, &idea.CreatedAt, &idea.Version}
}

func (r *Repository) CreateIdea(idea *domain.Idea) error {
	query := `
		INSERT INTO ideas (owner_id, channel_id, title, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{idea.OwnerID, idea.ChannelID, idea.Title, idea.Description, idea.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&idea.ID, &idea.CreatedAt, &idea.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetIdeas(ownerID uuid.UUID, filter IdeaFilter) ([]*domain.Idea, error) {
	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}

	if filter.ChannelID != nil {
		args = append(args, *filter.ChannelID)
		conditions = append(conditions, fmt.Sprintf("channel_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ideas := []*domain.Idea{}
	for rows.Next() {
		idea := &domain.Idea{}
		if err := rows.Scan(ideaDst(idea)...); err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ideas, nil
}

func (r *Repository) GetIdeaByID(id uuid.UUID) (*domain.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	idea := &domain.Idea{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(ideaDst(idea)...); err != nil {
		return nil, err
	}

	return idea, nil
}

func (r *Repository) UpdateIdea(idea *domain.Idea) error {
	query := `
		UPDATE ideas
		SET
			channel_id = $1,
			title = $2,
			description = $3,
			status = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{idea.ChannelID, idea.Title, idea.Description, idea.Status, idea.ID, idea.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&idea.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteIdea(id uuid.UUID) error {
	query := `
		DELETE FROM ideas WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// ApproveIdea 在同一个事务中把创意标记为已批准，并在看板的第一列创建视频
func (r *Repository) ApproveIdea(idea *domain.Idea, video *domain.Video) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE ideas
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, domain.IdeaApproved, idea.ID, idea.Version).Scan(&idea.Version); err != nil {
		return err
	}
	idea.Status = domain.IdeaApproved

	if err := insertVideo(ctx, tx, video); err != nil {
		return err
	}

	return tx.Commit()
}
