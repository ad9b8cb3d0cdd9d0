// Package domain contém as estruturas de dados do dashboard de vendas
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Erros de validação de uma linha de venda
var (
	ErrNegativeQuantity  = errors.New("quantity must not be negative")
	ErrNegativeUnitPrice = errors.New("unit price must not be negative")
	ErrEmptyCustomer     = errors.New("customer must not be empty")
	ErrEmptyProduct      = errors.New("product must not be empty")
)

// Transaction é uma linha de venda do arquivo de entrada
type Transaction struct {
	Date      time.Time       `json:"date"`
	Customer  string          `json:"customer"`
	Product   string          `json:"product"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewTransaction valida os campos e normaliza a data para o dia civil em UTC
func NewTransaction(date time.Time, customer, product string, quantity int64, unitPrice decimal.Decimal) (Transaction, error) {
	customer = strings.TrimSpace(customer)
	product = strings.TrimSpace(product)

	switch {
	case customer == "":
		return Transaction{}, ErrEmptyCustomer
	case product == "":
		return Transaction{}, ErrEmptyProduct
	case quantity < 0:
		return Transaction{}, ErrNegativeQuantity
	case unitPrice.IsNegative():
		return Transaction{}, ErrNegativeUnitPrice
	}

	return Transaction{
		Date:      TruncateDay(date),
		Customer:  customer,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}

// LineTotal é sempre derivado de Quantity e UnitPrice, nunca armazenado
func (t Transaction) LineTotal() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
}

// Month retorna o mês da transação no formato YYYY-MM
func (t Transaction) Month() string {
	return t.Date.Format(MonthLayout)
}

// MonthLayout é o formato das chaves mensais (YYYY-MM)
const MonthLayout = "2006-01"

// TruncateDay descarta o horário mantendo a data civil como foi escrita
func TruncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
