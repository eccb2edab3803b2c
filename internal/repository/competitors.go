package repository

import (
	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/google/uuid"
)

const competitorColumns = `id, owner_id, name, address, niche, details, note, favorite, created_at, version`

func competitorDst(c *domain.CompetitorChannel) []any {
	return []any{&c.ID, &c.OwnerID, &c.Name, &c.Address, &c.Niche, &c.Details, &c.Note, &c.Favorite, &c.CreatedAt, &c.Version}
}

func (r *Repository) CreateCompetitor(c *domain.CompetitorChannel) error {
	query := `
		INSERT INTO competitor_channels (owner_id, name, address, niche, details, note, favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{c.OwnerID, c.Name, c.Address, c.Niche, c.Details, c.Note, c.Favorite}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&c.ID, &c.CreatedAt, &c.Version); err != nil {
		return err
	}

	return nil
}

// GetAllCompetitors 收藏的频道排在前面
func (r *Repository) GetAllCompetitors(ownerID uuid.UUID) ([]*domain.CompetitorChannel, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitor_channels WHERE owner_id = $1 ORDER BY favorite DESC, name`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitors := []*domain.CompetitorChannel{}
	for rows.Next() {
		c := &domain.CompetitorChannel{}
		if err := rows.Scan(competitorDst(c)...); err != nil {
			return nil, err
		}
		competitors = append(competitors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return competitors, nil
}

func (r *Repository) GetCompetitorByID(id uuid.UUID) (*domain.CompetitorChannel, error) {
	query := `SELECT ` + competitorColumns + ` FROM competitor_channels WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	c := &domain.CompetitorChannel{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(competitorDst(c)...); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *Repository) UpdateCompetitor(c *domain.CompetitorChannel) error {
	query := `
		UPDATE competitor_channels
		SET
			name = $1,
			address = $2,
			niche = $3,
			details = $4,
			note = $5,
			favorite = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{c.Name, c.Address, c.Niche, c.Details, c.Note, c.Favorite, c.ID, c.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&c.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCompetitor(id uuid.UUID) error {
	query := `
		DELETE FROM competitor_channels WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
