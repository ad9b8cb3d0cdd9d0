package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Parâmetros de filtro aceitos na query string
const (
	queryCustomer  = "customer"
	queryProduct   = "product"
	queryStartDate = "start_date"
	queryEndDate   = "end_date"
)

// filterError identifica o parâmetro da query que não pôde ser interpretado
type filterError struct {
	Param string
	Err   error
}

// Error inclui o nome do parâmetro
func (e *filterError) Error() string {
	return e.Param + ": " + e.Err.Error()
}

// Unwrap expõe o erro de interpretação
func (e *filterError) Unwrap() error {
	return e.Err
}

// parseFilter lê os critérios do dashboard da query string. Nomes podem se
// repetir ou vir separados por vírgula. Nomes desconhecidos são mantidos e
// apenas não selecionam nada.
func parseFilter(r *http.Request) (domain.Filter, error) {
	query := r.URL.Query()

	filter := domain.Filter{
		Customers: listParam(query, queryCustomer),
		Products:  listParam(query, queryProduct),
	}

	from, err := utils.ParseDate(strings.TrimSpace(query.Get(queryStartDate)))
	if err != nil {
		return domain.Filter{}, &filterError{Param: queryStartDate, Err: err}
	}
	to, err := utils.ParseDate(strings.TrimSpace(query.Get(queryEndDate)))
	if err != nil {
		return domain.Filter{}, &filterError{Param: queryEndDate, Err: err}
	}

	if from != nil {
		filter.Dates.From = *from
	}
	if to != nil {
		filter.Dates.To = *to
	}

	return filter, nil
}

// listParam junta valores repetidos e separados por vírgula, sem duplicatas
func listParam(query url.Values, key string) []string {
	var values []string
	seen := make(map[string]struct{})

	for _, raw := range query[key] {
		for _, value := range strings.Split(raw, ",") {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			values = append(values, value)
		}
	}

	return values
}

// filterErrorParam retorna o parâmetro inválido, ou vazio se err não for um filterError
func filterErrorParam(err error) string {
	var fe *filterError
	if errors.As(err, &fe) {
		return fe.Param
	}
	return ""
}
