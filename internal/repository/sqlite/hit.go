package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/creamcroissant/pixelbeacon/internal/repository"
)

type hitRepo struct {
	db *sql.DB
}

func newHitRepo(db *sql.DB) *hitRepo {
	return &hitRepo{db: db}
}

func (r *hitRepo) Create(ctx context.Context, hit *repository.Hit) error {
	query := `
		INSERT INTO hits (
			date, category, ip_address, width, height, color, metadata, user_agent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		hit.Date, hit.Category, hit.IPAddress, hit.Width, hit.Height,
		int64(hit.Color), hit.Metadata, hit.UserAgent,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	hit.ID = id
	return nil
}

// buildFilter appends one predicate fragment per present dimension, in a
// fixed order, so every combination of the four optional dimensions maps to
// a single deterministic WHERE clause with positionally matching arguments.
func (r *hitRepo) buildFilter(filter repository.HitFilter) (string, []any) {
	query := strings.Builder{}
	args := make([]any, 0, 4)

	query.WriteString(" WHERE 1=1")

	if filter.Category != "" {
		query.WriteString(" AND category = ?")
		args = append(args, filter.Category)
	}
	if filter.IPAddress != "" {
		query.WriteString(" AND ip_address = ?")
		args = append(args, filter.IPAddress)
	}
	if filter.Before > 0 {
		query.WriteString(" AND date <= ?")
		args = append(args, filter.Before)
	}
	if filter.After > 0 {
		query.WriteString(" AND date >= ?")
		args = append(args, filter.After)
	}

	return query.String(), args
}

func (r *hitRepo) List(ctx context.Context, filter repository.HitFilter) ([]*repository.Hit, error) {
	where, args := r.buildFilter(filter)

	query := `
		SELECT id, date, category, ip_address, width, height, color, metadata, user_agent
		FROM hits
	` + where + " ORDER BY id DESC LIMIT ? OFFSET ?"

	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanHits(rows)
}

func (r *hitRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM hits").Scan(&count)
	return count, err
}

func (r *hitRepo) scanHits(rows *sql.Rows) ([]*repository.Hit, error) {
	var hits []*repository.Hit
	for rows.Next() {
		var hit repository.Hit
		var category sql.NullString
		var metadata sql.NullString
		var color int64

		err := rows.Scan(
			&hit.ID, &hit.Date, &category, &hit.IPAddress,
			&hit.Width, &hit.Height, &color, &metadata, &hit.UserAgent,
		)
		if err != nil {
			return nil, err
		}

		hit.Color = uint32(color)
		if category.Valid {
			hit.Category = &category.String
		}
		if metadata.Valid {
			hit.Metadata = &metadata.String
		}

		hits = append(hits, &hit)
	}
	return hits, rows.Err()
}
