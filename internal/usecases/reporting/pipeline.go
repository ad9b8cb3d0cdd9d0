// Package reporting implementa o pipeline filtro -> agregação do dashboard.
// Todas as funções são puras e a base de registros é apenas lida.
package reporting

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DefaultTopN é o tamanho padrão da tabela de produtos mais vendidos
const DefaultTopN = 5

// Options ajusta o cálculo do resumo
type Options struct {
	// TopN é o tamanho da tabela de mais vendidos. Valores menores que 1 usam DefaultTopN
	TopN int
}

// topN retorna o tamanho efetivo da tabela de mais vendidos
func (o Options) topN() int {
	if o.TopN < 1 {
		return DefaultTopN
	}
	return o.TopN
}

// Run filtra a base e resume a seleção
func Run(set *domain.RecordSet, filter domain.Filter, opts Options) *domain.Summary {
	summary := Summarize(Filter(set.All(), filter), opts)
	summary.Filter = filter
	return summary
}

// Filter retorna um novo slice com os registros que atendem a todos os critérios.
// Um intervalo de datas invertido não seleciona nada.
func Filter(records []domain.Transaction, filter domain.Filter) []domain.Transaction {
	filtered := make([]domain.Transaction, 0, len(records))
	if filter.Dates.Inverted() {
		return filtered
	}

	for _, r := range records {
		if filter.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Summarize calcula os KPIs e as tabelas ordenadas dos registros
func Summarize(records []domain.Transaction, opts Options) *domain.Summary {
	summary := &domain.Summary{
		RecordCount:       len(records),
		TotalRevenue:      decimal.Zero,
		AverageTicket:     domain.NotAvailable[decimal.Decimal](),
		TopProduct:        domain.NotAvailable[string](),
		TopCustomer:       domain.NotAvailable[string](),
		RevenueByProduct:  []domain.ProductTotal{},
		RevenueByCustomer: []domain.CustomerTotal{},
		RevenueByMonth:    []domain.MonthTotal{},
		TopProducts:       []domain.ProductTotal{},
	}
	if len(records) == 0 {
		return summary
	}

	products := make(map[string]*domain.ProductTotal)
	customers := make(map[string]*domain.CustomerTotal)
	months := make(map[string]*domain.MonthTotal)

	for _, r := range records {
		lineTotal := r.LineTotal()

		// Totais gerais

		summary.TotalRevenue = summary.TotalRevenue.Add(lineTotal)
		summary.TotalQuantity += r.Quantity

		// Agrupamentos por produto, cliente e mês
		p, ok := products[r.Product]
		if !ok {
			p = &domain.ProductTotal{Product: r.Product, Revenue: decimal.Zero}
			products[r.Product] = p
		}
		p.Quantity += r.Quantity
		p.Revenue = p.Revenue.Add(lineTotal)

		c, ok := customers[r.Customer]
		if !ok {
			c = &domain.CustomerTotal{Customer: r.Customer, Revenue: decimal.Zero}
			customers[r.Customer] = c
		}
		c.Quantity += r.Quantity
		c.Revenue = c.Revenue.Add(lineTotal)

		month := r.Month()
		m, ok := months[month]
		if !ok {
			m = &domain.MonthTotal{Month: month, Revenue: decimal.Zero}
			months[month] = m
		}
		m.Quantity += r.Quantity
		m.Revenue = m.Revenue.Add(lineTotal)
	}

	summary.AverageTicket = domain.Available(summary.TotalRevenue.Div(decimal.NewFromInt(int64(len(records)))))

	summary.RevenueByProduct = rankProductsByRevenue(products)
	summary.RevenueByCustomer = rankCustomersByRevenue(customers)
	summary.RevenueByMonth = monthsInOrder(months)
	summary.TopProducts = topProductsByQuantity(summary.RevenueByProduct, opts.topN())

	summary.TopProduct = domain.Available(topProduct(products))
	summary.TopCustomer = domain.Available(topCustomer(customers))

	return summary
}

// topProduct escolhe a maior quantidade somada. No empate vence a menor chave
func topProduct(products map[string]*domain.ProductTotal) string {
	var best *domain.ProductTotal
	for _, key := range sortedKeys(products) {
		p := products[key]
		if best == nil || p.Quantity > best.Quantity {
			best = p
		}
	}
	return best.Product
}

// topCustomer escolhe a maior receita somada. No empate vence a menor chave
func topCustomer(customers map[string]*domain.CustomerTotal) string {
	var best *domain.CustomerTotal
	for _, key := range sortedKeys(customers) {
		c := customers[key]
		if best == nil || c.Revenue.GreaterThan(best.Revenue) {
			best = c
		}
	}
	return best.Customer
}

// rankProductsByRevenue ordena por receita decrescente e, no empate, por nome
func rankProductsByRevenue(products map[string]*domain.ProductTotal) []domain.ProductTotal {
	ranked := make([]domain.ProductTotal, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, *p)
	}

	slices.SortFunc(ranked, func(a, b domain.ProductTotal) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return strings.Compare(a.Product, b.Product)
	})
	return ranked
}

// rankCustomersByRevenue ordena por receita decrescente e, no empate, por nome
func rankCustomersByRevenue(customers map[string]*domain.CustomerTotal) []domain.CustomerTotal {
	ranked := make([]domain.CustomerTotal, 0, len(customers))
	for _, c := range customers {
		ranked = append(ranked, *c)
	}

	slices.SortFunc(ranked, func(a, b domain.CustomerTotal) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return strings.Compare(a.Customer, b.Customer)
	})
	return ranked
}

// topProductsByQuantity ordena por quantidade decrescente e mantém os n primeiros
func topProductsByQuantity(products []domain.ProductTotal, n int) []domain.ProductTotal {
	ranked := slices.Clone(products)
	slices.SortFunc(ranked, func(a, b domain.ProductTotal) int {
		switch {
		case a.Quantity > b.Quantity:
			return -1
		case a.Quantity < b.Quantity:
			return 1
		}
		return strings.Compare(a.Product, b.Product)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// monthsInOrder depende de chaves YYYY-MM ordenarem cronologicamente
func monthsInOrder(months map[string]*domain.MonthTotal) []domain.MonthTotal {
	ordered := make([]domain.MonthTotal, 0, len(months))
	for _, key := range sortedKeys(months) {
		ordered = append(ordered, *months[key])
	}
	return ordered
}

// sortedKeys retorna as chaves do mapa em ordem crescente
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
