package domain

import (
	"slices"
	"time"
)

// DateRange é um intervalo de dias inclusivo. Um limite zero fica aberto
type DateRange struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

// IsZero informa se nenhum dos limites foi definido
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Inverted informa se o início é posterior ao fim. Um intervalo invertido não seleciona nada
func (r DateRange) Inverted() bool {
	return !r.From.IsZero() && !r.To.IsZero() && TruncateDay(r.From).After(TruncateDay(r.To))
}

// Contains informa se o dia de date está dentro dos limites definidos
func (r DateRange) Contains(date time.Time) bool {
	day := TruncateDay(date)
	if !r.From.IsZero() && day.Before(TruncateDay(r.From)) {
		return false
	}
	if !r.To.IsZero() && day.After(TruncateDay(r.To)) {
		return false
	}
	return true
}

// Filter restringe a base de registros. Uma dimensão vazia aceita qualquer valor
type Filter struct {
	Customers []string  `json:"customers,omitempty"`
	Products  []string  `json:"products,omitempty"`
	Dates     DateRange `json:"dates"`
}

// IsZero informa se o filtro não restringe nada
func (f Filter) IsZero() bool {
	return len(f.Customers) == 0 && len(f.Products) == 0 && f.Dates.IsZero()
}

// Match aplica todos os critérios ativos a uma transação (E entre dimensões, OU dentro de cada uma)
func (f Filter) Match(t Transaction) bool {
	if len(f.Customers) > 0 && !slices.Contains(f.Customers, t.Customer) {
		return false
	}
	if len(f.Products) > 0 && !slices.Contains(f.Products, t.Product) {
		return false
	}
	if f.Dates.Inverted() {
		return false
	}
	return f.Dates.Contains(t.Date)
}

// FilterOptions lista os valores disponíveis para filtrar a base
type FilterOptions struct {
	Customers []string   `json:"customers"`
	Products  []string   `json:"products"`
	FirstDate *time.Time `json:"first_date"`
	LastDate  *time.Time `json:"last_date"`
}
