package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// filteredHandler interpreta o filtro e responde VAL_003 quando ele é inválido
func filteredHandler(name string, fn func(w http.ResponseWriter, r *http.Request, filter domain.Filter)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warnf("%s: filtro inválido", name)
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), map[string]string{
				"param": filterErrorParam(err),
			})
			return
		}

		fn(w, r, filter)
	})
}

// GetSummary retorna os KPIs e todas as tabelas para o filtro da query
func GetSummary(service reporting.Reporter) http.Handler {
	return filteredHandler("summary", func(w http.ResponseWriter, r *http.Request, filter domain.Filter) {
		summary := service.Summary(filter)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"records": summary.RecordCount,
		}).Debug("summary: resumo calculado")

		writeJSON(w, r, http.StatusOK, newSummaryResponse(summary))
	})
}

// GetFilterOptions lista os clientes, produtos e o intervalo de datas da base
func GetFilterOptions(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, newFilterOptionsResponse(service.FilterOptions()))
	})
}

// GetProductRanking retorna a receita por produto da seleção
func GetProductRanking(service reporting.Reporter) http.Handler {
	return filteredHandler("rankings", func(w http.ResponseWriter, r *http.Request, filter domain.Filter) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"products": roundProducts(service.ProductRanking(filter)),
		})
	})
}

// GetCustomerRanking retorna a receita por cliente da seleção
func GetCustomerRanking(service reporting.Reporter) http.Handler {
	return filteredHandler("rankings", func(w http.ResponseWriter, r *http.Request, filter domain.Filter) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"customers": roundCustomers(service.CustomerRanking(filter)),
		})
	})
}

// GetMonthlyRevenue retorna a receita mensal da seleção
func GetMonthlyRevenue(service reporting.Reporter) http.Handler {
	return filteredHandler("revenue", func(w http.ResponseWriter, r *http.Request, filter domain.Filter) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"months": roundMonths(service.MonthlyRevenue(filter)),
		})
	})
}
