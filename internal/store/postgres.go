package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyagen/dramarail/internal/models"
)

// Postgres implements FetchLog using PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store from a DSN. Caller must call Close when done.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// RecordFetch inserts one fetch record.
func (p *Postgres) RecordFetch(ctx context.Context, rec models.FetchRecord) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO fetch_log (id, rail, path, query, item_count, shape, error, applied, duration_ms, fetched_at)
		 VALUES ($1, $2, $3, NULLIF($4,''), $5, NULLIF($6,''), NULLIF($7,''), $8, $9, $10)`,
		rec.ID, rec.Rail, rec.Path, rec.Query, rec.ItemCount, rec.Shape, rec.Error, rec.Applied, rec.DurationMs, rec.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("RecordFetch: %w", err)
	}
	return nil
}

// ListFetches returns recent records matching filter, newest first.
func (p *Postgres) ListFetches(ctx context.Context, filter FetchFilter) ([]models.FetchRecord, error) {
	filter = filter.Normalize()
	rows, err := p.pool.Query(ctx,
		`SELECT id, rail, path, COALESCE(query,''), item_count, COALESCE(shape,''), COALESCE(error,''),
		        applied, duration_ms, fetched_at
		   FROM fetch_log
		  WHERE ($1 = '' OR rail = $1)
		    AND (NOT $2 OR error IS NOT NULL)
		  ORDER BY fetched_at DESC
		  LIMIT $3`,
		filter.Rail, filter.FailedOnly, filter.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListFetches: %w", err)
	}
	defer rows.Close()

	var out []models.FetchRecord
	for rows.Next() {
		var (
			rec models.FetchRecord
			at  time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.Rail, &rec.Path, &rec.Query, &rec.ItemCount, &rec.Shape,
			&rec.Error, &rec.Applied, &rec.DurationMs, &at); err != nil {
			return nil, fmt.Errorf("scan fetch_log: %w", err)
		}
		rec.FetchedAt = at.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fetch_log: %w", err)
	}
	return out, nil
}
