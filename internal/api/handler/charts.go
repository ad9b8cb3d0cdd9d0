package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/charting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// ChartRenderer desenha um gráfico do resumo em w
type ChartRenderer interface {
	Render(name charting.Name, summary *domain.Summary, w io.Writer) error
}

// GetChart renderiza um gráfico do dashboard como PNG. Uma seleção sem nada
// para desenhar responde 204.
func GetChart(service reporting.Reporter, renderer ChartRenderer) http.Handler {
	return filteredHandler("charts", func(w http.ResponseWriter, r *http.Request, filter domain.Filter) {
		logger := log.ForContext(r.Context())

		param := httprouter.ParamsFromContext(r.Context()).ByName("name")
		name, err := charting.ParseName(strings.TrimSuffix(param, ".png"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, err.Error(), map[string]any{
				"charts": []charting.Name{charting.TopProducts, charting.MonthlyRevenue, charting.CustomerShare},
			})
			return
		}

		var buf bytes.Buffer
		err = renderer.Render(name, service.Summary(filter), &buf)
		switch {
		case errors.Is(err, charting.ErrNoChartData):
			w.WriteHeader(http.StatusNoContent)
			return
		case err != nil:
			logger.WithError(err).WithField("chart", string(name)).Error("charts: erro ao renderizar gráfico")
			apiErrors.WriteError(w, apiErrors.ErrChartRendering, "error rendering chart", nil)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("Cache-Control", "no-store")
		if _, err := buf.WriteTo(w); err != nil {
			logger.WithError(err).Warn("charts: erro ao escrever imagem")
		}
	})
}
