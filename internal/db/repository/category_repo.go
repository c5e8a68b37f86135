package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triviahub/trivia-api/internal/trivia"
)

// CategoryRepository implements trivia.CategoryStore over Postgres.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

var _ trivia.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// ListAll returns every category ordered by id.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, label FROM categories ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []trivia.Category
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Label); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return cats, nil
}
