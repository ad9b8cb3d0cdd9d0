package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// Tipos aceitos em /v1/cron/:type/run
const (
	CronJobTypeKPIDigest = "kpi-digest"
	CronJobTypeAll       = "all"
)

// CronJob é um job agendado que também pode ser executado sob demanda
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices reúne os jobs expostos para execução manual
type CronJobServices struct {
	KPIDigestService CronJob
}

// jobs retorna os jobs configurados por tipo
func (s CronJobServices) jobs() map[string]CronJob {
	jobs := make(map[string]CronJob)
	if s.KPIDigestService != nil {
		jobs[CronJobTypeKPIDigest] = s.KPIDigestService
	}
	return jobs
}

// RunCronJob dispara um job em background
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type is required", nil)
			return
		}

		jobs := services.jobs()
		var selected map[string]CronJob

		switch cronType {
		case CronJobTypeAll:
			selected = jobs
		case CronJobTypeKPIDigest:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrJobUnavailable, "kpi digest job is not available", nil)
				return
			}
			selected = map[string]CronJob{cronType: job}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type, accepted values: kpi-digest, all", nil)
			return
		}

		started := make(map[string]bool, len(selected))
		for name, job := range selected {
			started[name] = job.TriggerManualSync()
		}

		logger.WithField("type", cronType).Info("cron: execução manual solicitada")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"type":    cronType,
			"started": started,
		})
	})
}

// GetCronStatus retorna o status de todos os jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
