// Package dataset carrega a base de registros uma única vez na inicialização
package dataset

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Source produz as transações brutas do dashboard
type Source interface {
	// Name identifica a fonte nos logs e nos erros de carga
	Name() string
	Load(ctx context.Context) ([]domain.Transaction, error)
}

// Load lê src uma vez e encapsula o resultado em uma base somente leitura.
// Qualquer falha é reportada como *domain.LoadError.
func Load(ctx context.Context, src Source) (*domain.RecordSet, error) {
	start := time.Now()

	records, err := src.Load(ctx)
	if err != nil {
		var loadErr *domain.LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &domain.LoadError{Source: src.Name(), Err: err}
	}

	set := domain.NewRecordSet(records)

	logrus.WithFields(logrus.Fields{
		"source":   src.Name(),
		"records":  set.Len(),
		"duration": time.Since(start).String(),
	}).Info("dataset: registros carregados")

	if set.Len() == 0 {
		logrus.WithField("source", src.Name()).Warn("dataset: fonte sem registros, nenhum KPI estará disponível")
	}

	return set, nil
}
