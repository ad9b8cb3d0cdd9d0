package domain

import (
	"slices"
	"time"
)

// RecordSet é a base de dados somente leitura carregada na inicialização.
// É compartilhada por todas as execuções do pipeline e nunca é alterada.
type RecordSet struct {
	records []Transaction
}

// NewRecordSet copia records para que o chamador não altere o conjunto depois
func NewRecordSet(records []Transaction) *RecordSet {
	return &RecordSet{records: slices.Clone(records)}
}

// Len retorna a quantidade de registros. Um conjunto nil tem zero registros
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.records)
}

// All retorna uma cópia dos registros na ordem de carga
func (rs *RecordSet) All() []Transaction {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs.records)
}

// Customers retorna os clientes distintos em ordem crescente
func (rs *RecordSet) Customers() []string {
	return rs.distinct(func(t Transaction) string { return t.Customer })
}

// Products retorna os produtos distintos em ordem crescente
func (rs *RecordSet) Products() []string {
	return rs.distinct(func(t Transaction) string { return t.Product })
}

// DateBounds retorna a primeira e a última data do conjunto. ok é falso para conjunto vazio
func (rs *RecordSet) DateBounds() (first, last time.Time, ok bool) {
	if rs.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}

	first, last = rs.records[0].Date, rs.records[0].Date
	for _, r := range rs.records[1:] {
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last, true
}

// distinct retorna os valores distintos de key em ordem crescente
func (rs *RecordSet) distinct(key func(Transaction) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	if rs == nil {
		return values
	}

	for _, r := range rs.records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}

	slices.Sort(values)
	return values
}
