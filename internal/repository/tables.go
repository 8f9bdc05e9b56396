package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const queryCountTables = `
	SELECT COUNT(*)
	FROM information_schema.tables
	WHERE table_schema = 'public'
	AND table_name IN ('users', 'posts', 'likes')
`

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

// CountTables reports how many of the board tables exist.
func (r *tablesRepository) CountTables(ctx context.Context) (int, error) {
	var count int

	if err := r.db.GetContext(ctx, &count, queryCountTables); err != nil {
		return 0, fmt.Errorf("failed to count database tables: %w", err)
	}

	return count, nil
}
