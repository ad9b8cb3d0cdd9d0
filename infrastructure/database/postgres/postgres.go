package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// Connection encapsula o pool de conexões com o banco
type Connection struct {
	*sql.DB
}

// NewConnection abre a conexão com o DSN configurado e valida com um ping
func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	// sql.Open não conecta, o ping garante que o banco está acessível
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	return &Connection{DB: db}, nil
}
