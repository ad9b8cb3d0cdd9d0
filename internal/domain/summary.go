package domain

import "github.com/shopspring/decimal"

// Summary é o resultado agregado de uma execução do pipeline
type Summary struct {
	Filter        Filter               `json:"filter"`
	RecordCount   int                  `json:"record_count"`
	TotalRevenue  decimal.Decimal      `json:"total_revenue"`
	TotalQuantity int64                `json:"total_quantity"`
	AverageTicket KPI[decimal.Decimal] `json:"average_ticket"`
	TopProduct    KPI[string]          `json:"top_product"`
	TopCustomer   KPI[string]          `json:"top_customer"`

	// RevenueByProduct e RevenueByCustomer trazem todos os grupos, ordenados por receita
	RevenueByProduct  []ProductTotal  `json:"revenue_by_product"`
	RevenueByCustomer []CustomerTotal `json:"revenue_by_customer"`
	// RevenueByMonth está em ordem cronológica
	RevenueByMonth []MonthTotal `json:"revenue_by_month"`
	// TopProducts é ordenado por quantidade e cortado no tamanho configurado
	TopProducts []ProductTotal `json:"top_products"`
}

// IsEmpty informa se o resumo foi calculado sem nenhum registro
func (s *Summary) IsEmpty() bool {
	return s == nil || s.RecordCount == 0
}

// ProductTotal acumula quantidade e receita de um produto
type ProductTotal struct {
	Product  string          `json:"product"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// CustomerTotal acumula quantidade e receita de um cliente
type CustomerTotal struct {
	Customer string          `json:"customer"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// MonthTotal acumula quantidade e receita de um mês
type MonthTotal struct {
	Month    string          `json:"month"` // YYYY-MM
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}
