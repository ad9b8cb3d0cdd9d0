package handler

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// filterResponse ecoa o filtro aplicado com datas no formato YYYY-MM-DD
type filterResponse struct {
	Customers []string `json:"customers"`
	Products  []string `json:"products"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
}

// summaryResponse é o corpo de /v1/summary
type summaryResponse struct {
	Filter            filterResponse              `json:"filter"`
	RecordCount       int                         `json:"record_count"`
	TotalRevenue      decimal.Decimal             `json:"total_revenue"`
	TotalQuantity     int64                       `json:"total_quantity"`
	AverageTicket     domain.KPI[decimal.Decimal] `json:"average_ticket"`
	TopProduct        domain.KPI[string]          `json:"top_product"`
	TopCustomer       domain.KPI[string]          `json:"top_customer"`
	RevenueByProduct  []domain.ProductTotal       `json:"revenue_by_product"`
	RevenueByCustomer []domain.CustomerTotal      `json:"revenue_by_customer"`
	RevenueByMonth    []domain.MonthTotal         `json:"revenue_by_month"`
	TopProducts       []domain.ProductTotal       `json:"top_products"`
}

// filterOptionsResponse é o corpo de /v1/filters
type filterOptionsResponse struct {
	Customers []string `json:"customers"`
	Products  []string `json:"products"`
	FirstDate *string  `json:"first_date"`
	LastDate  *string  `json:"last_date"`
}

// newSummaryResponse arredonda valores monetários para centavos na exibição.
// Os valores do domínio mantêm a precisão total.
func newSummaryResponse(s *domain.Summary) summaryResponse {
	average := s.AverageTicket
	if average.Valid {
		average = domain.Available(utils.RoundWithTwoDecimalPlace(average.Value))
	}

	return summaryResponse{
		Filter:            newFilterResponse(s.Filter),
		RecordCount:       s.RecordCount,
		TotalRevenue:      utils.RoundWithTwoDecimalPlace(s.TotalRevenue),
		TotalQuantity:     s.TotalQuantity,
		AverageTicket:     average,
		TopProduct:        s.TopProduct,
		TopCustomer:       s.TopCustomer,
		RevenueByProduct:  roundProducts(s.RevenueByProduct),
		RevenueByCustomer: roundCustomers(s.RevenueByCustomer),
		RevenueByMonth:    roundMonths(s.RevenueByMonth),
		TopProducts:       roundProducts(s.TopProducts),
	}
}

// newFilterResponse converte o filtro do domínio para a resposta
func newFilterResponse(f domain.Filter) filterResponse {
	return filterResponse{
		Customers: nonNil(f.Customers),
		Products:  nonNil(f.Products),
		StartDate: formatDate(f.Dates.From),
		EndDate:   formatDate(f.Dates.To),
	}
}

// newFilterOptionsResponse converte as opções do domínio para a resposta
func newFilterOptionsResponse(o *domain.FilterOptions) filterOptionsResponse {
	resp := filterOptionsResponse{
		Customers: nonNil(o.Customers),
		Products:  nonNil(o.Products),
	}
	if o.FirstDate != nil {
		resp.FirstDate = formatDate(*o.FirstDate)
	}
	if o.LastDate != nil {
		resp.LastDate = formatDate(*o.LastDate)
	}
	return resp
}

func roundProducts(rows []domain.ProductTotal) []domain.ProductTotal {
	out := make([]domain.ProductTotal, len(rows))
	for i, row := range rows {
		row.Revenue = utils.RoundWithTwoDecimalPlace(row.Revenue)
		out[i] = row
	}
	return out
}

func roundCustomers(rows []domain.CustomerTotal) []domain.CustomerTotal {
	out := make([]domain.CustomerTotal, len(rows))
	for i, row := range rows {
		row.Revenue = utils.RoundWithTwoDecimalPlace(row.Revenue)
		out[i] = row
	}
	return out
}

func roundMonths(rows []domain.MonthTotal) []domain.MonthTotal {
	out := make([]domain.MonthTotal, len(rows))
	for i, row := range rows {
		row.Revenue = utils.RoundWithTwoDecimalPlace(row.Revenue)
		out[i] = row
	}
	return out
}

// formatDate retorna nil para data zero
func formatDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// nonNil garante [] no lugar de null no JSON
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
