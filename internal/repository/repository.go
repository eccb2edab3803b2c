package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/darkchannels/studio/backend/internal/config"
	"github.com/jackc/pgx/v5/pgtype"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	// 用于扫描 smallint[] / text[] 这类数组列
	typeMap *pgtype.Map
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:     cfg,
		dbpool:  dbpool,
		typeMap: pgtype.NewMap(),
	}
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) transactionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
}

// Ping 用于健康检查
func (r *Repository) Ping(ctx context.Context) error {
	return r.dbpool.PingContext(ctx)
}
