package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
)

// Healthcheck registra a rota de verificação de saúde
func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Reports registra as rotas do resumo e das tabelas
func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/summary",
			Method:  http.MethodGet,
			Handler: GetSummary(service),
		},
		{
			Path:    "/v1/filters",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
		{
			Path:    "/v1/rankings/products",
			Method:  http.MethodGet,
			Handler: GetProductRanking(service),
		},
		{
			Path:    "/v1/rankings/customers",
			Method:  http.MethodGet,
			Handler: GetCustomerRanking(service),
		},
		{
			Path:    "/v1/revenue/monthly",
			Method:  http.MethodGet,
			Handler: GetMonthlyRevenue(service),
		},
	}
}

// Charts registra a rota dos gráficos em PNG
func Charts(service reporting.Reporter, renderer ChartRenderer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/charts/:name",
			Method:  http.MethodGet,
			Handler: GetChart(service, renderer),
		},
	}
}

// CronJobs registra as rotas de execução manual e status dos jobs
func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
