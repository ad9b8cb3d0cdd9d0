package dataset

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Open cria a fonte configurada. A função retornada libera os recursos da
// fonte e pode ser chamada assim que os registros forem carregados.
func Open(ctx context.Context, cfg *config.Config) (Source, func(), error) {
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, errors.Wrap(err, "connect to postgres")
		}
		logrus.Info("postgres: conexão estabelecida")

		repo := repository.NewTransactionRepository(conn, cfg.Dataset.SalesTable)
		return repository.NewTransactionSource(repo, cfg.Dataset.SalesTable), func() {
			if err := conn.Close(); err != nil {
				logrus.WithError(err).Warn("postgres: erro ao fechar conexão")
			}
		}, nil
	case config.SourceCSV:
		return NewCSVFile(cfg.Dataset.Path), func() {}, nil
	default:
		return nil, nil, errors.Errorf("unknown data source %q", cfg.Dataset.Source)
	}
}

// LoadConfigured abre a fonte configurada e carrega os registros uma vez
func LoadConfigured(ctx context.Context, cfg *config.Config) (*domain.RecordSet, error) {
	src, release, err := Open(ctx, cfg)
	if err != nil {
		return nil, &domain.LoadError{Source: cfg.Dataset.Source, Err: err}
	}
	defer release()

	return Load(ctx, src)
}
