package postgres

import (
	"context"
	"database/sql"
)

// Queryer é o lado de leitura de *sql.DB usado pelos repositórios
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
