package repository

import (
	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/google/uuid"
)

const memberColumns = `id, owner_id, username, password_hash, full_name, email, function, is_active, created_at, version`

func memberDst(m *domain.Member) []any {
	return []any{&m.ID, &m.OwnerID, &m.Username, &m.PasswordHash, &m.FullName, &m.Email, &m.Function, &m.IsActive, &m.CreatedAt, &m.Version}
}

func (r *Repository) CreateMember(member *domain.Member) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO members (owner_id, username, password_hash, full_name, email, function)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, version
	`

	args := []any{member.OwnerID, member.Username, member.PasswordHash, member.FullName, member.Email, member.Function}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&member.ID, &member.IsActive, &member.CreatedAt, &member.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllMembers(ownerID uuid.UUID) ([]*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE owner_id = $1 ORDER BY full_name`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.Member, 0)
	for rows.Next() {
		member := &domain.Member{}
		if err := rows.Scan(memberDst(member)...); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) GetMemberByID(id uuid.UUID) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	member := &domain.Member{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(memberDst(member)...); err != nil {
		return nil, err
	}

	return member, nil
}

func (r *Repository) GetMemberByUsername(username string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE username = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	member := &domain.Member{}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(memberDst(member)...); err != nil {
		return nil, err
	}

	return member, nil
}

func (r *Repository) UpdateMember(member *domain.Member) error {
	query := `
		UPDATE members
		SET
			password_hash = $1,
			full_name = $2,
			email = $3,
			function = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{member.PasswordHash, member.FullName, member.Email, member.Function, member.IsActive, member.ID, member.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&member.Version); err != nil {
		return err
	}

	return nil
}

// DeleteMember 删除成员，已分配给该成员的视频会通过外键置空负责人
func (r *Repository) DeleteMember(id uuid.UUID) error {
	query := `
		DELETE FROM members WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
