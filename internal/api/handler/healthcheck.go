package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// HealthcheckHandler responde 200 enquanto o processo estiver de pé
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

// writeJSON escreve body como JSON com o status informado
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("http: erro ao codificar resposta")
	}
}
