package reporting

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Reporter é o que a camada de apresentação chama a cada mudança de filtro
type Reporter interface {
	// Summary executa o pipeline completo para o filtro informado
	Summary(filter domain.Filter) *domain.Summary

	// FilterOptions lista os clientes, produtos e datas disponíveis para filtrar
	FilterOptions() *domain.FilterOptions

	// Tabelas individuais do resumo
	ProductRanking(filter domain.Filter) []domain.ProductTotal
	CustomerRanking(filter domain.Filter) []domain.CustomerTotal
	MonthlyRevenue(filter domain.Filter) []domain.MonthTotal
}

// Service guarda uma referência à base de registros. Vários serviços podem
// rodar lado a lado sobre bases diferentes.
type Service struct {
	records *domain.RecordSet
	opts    Options
}

// NewService cria o serviço sobre records. Um conjunto nil é tratado como vazio
func NewService(records *domain.RecordSet, opts Options) *Service {
	if records == nil {
		records = domain.NewRecordSet(nil)
	}

	return &Service{
		records: records,
		opts:    opts,
	}
}

// Summary executa o pipeline completo para o filtro
func (s *Service) Summary(filter domain.Filter) *domain.Summary {
	summary := Run(s.records, filter, s.opts)

	logrus.WithFields(logrus.Fields{
		"customers":    filter.Customers,
		"products":     filter.Products,
		"records":      summary.RecordCount,
		"base_records": s.records.Len(),
	}).Debug("reporting: resumo calculado")

	if summary.IsEmpty() && s.records.Len() > 0 {
		logrus.WithField("filter", filter).Debug("reporting: filtro não encontrou registros")
	}

	return summary
}

// FilterOptions lista clientes, produtos e o intervalo de datas da base
func (s *Service) FilterOptions() *domain.FilterOptions {
	options := &domain.FilterOptions{
		Customers: s.records.Customers(),
		Products:  s.records.Products(),
	}

	if first, last, ok := s.records.DateBounds(); ok {
		options.FirstDate = &first
		options.LastDate = &last
	}

	return options
}

// ProductRanking retorna a receita por produto da seleção
func (s *Service) ProductRanking(filter domain.Filter) []domain.ProductTotal {
	return s.Summary(filter).RevenueByProduct
}

// CustomerRanking retorna a receita por cliente da seleção
func (s *Service) CustomerRanking(filter domain.Filter) []domain.CustomerTotal {
	return s.Summary(filter).RevenueByCustomer
}

// MonthlyRevenue retorna a receita mensal da seleção em ordem cronológica
func (s *Service) MonthlyRevenue(filter domain.Filter) []domain.MonthTotal {
	return s.Summary(filter).RevenueByMonth
}
