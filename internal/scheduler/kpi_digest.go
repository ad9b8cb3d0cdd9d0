// Package scheduler contém os jobs agendados do dashboard
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// KPIDigestConfig é a configuração do job de digest
type KPIDigestConfig struct {
	CronSchedule string
	Enabled      bool
}

// Digest é a fotografia dos KPIs sem filtro tirada por uma execução
type Digest struct {
	RunID         string                      `json:"run_id"`
	GeneratedAt   time.Time                   `json:"generated_at"`
	RecordCount   int                         `json:"record_count"`
	TotalRevenue  decimal.Decimal             `json:"total_revenue"`
	TotalQuantity int64                       `json:"total_quantity"`
	AverageTicket domain.KPI[decimal.Decimal] `json:"average_ticket"`
	TopProduct    domain.KPI[string]          `json:"top_product"`
	TopCustomer   domain.KPI[string]          `json:"top_customer"`
}

// KPIDigestService registra periodicamente os KPIs da base completa
type KPIDigestService struct {
	scheduler *gocron.Scheduler
	reporter  reporting.Reporter
	config    KPIDigestConfig
	now       func() time.Time

	mu                 sync.Mutex
	running            bool
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastDigest         *Digest
}

// NewKPIDigestService cria o serviço a partir da configuração
func NewKPIDigestService(reporter reporting.Reporter, cfg *config.Config) *KPIDigestService {
	digestConfig := KPIDigestConfig{
		CronSchedule: cfg.KPIDigest.CronSchedule,
		Enabled:      cfg.KPIDigest.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
		"enabled":       digestConfig.Enabled,
	}).Info("kpi digest: configuração do agendador carregada")

	return &KPIDigestService{
		scheduler: gocron.NewScheduler(time.Local),
		reporter:  reporter,
		config:    digestConfig,
		now:       time.Now,
	}
}

// Start agenda o digest e para o agendador quando ctx é cancelado
func (s *KPIDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("kpi digest: desabilitado por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunDigest(); err != nil {
			logrus.WithError(err).Warn("kpi digest: execução agendada ignorada")
		}
	})
	if err != nil {
		return errors.Wrapf(err, "schedule kpi digest %q", s.config.CronSchedule)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()
	logrus.WithField("cron", s.config.CronSchedule).Info("kpi digest: agendador iniciado")

	// Parar o cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("kpi digest: parando agendador")
		s.scheduler.Stop()
	}()

	return nil
}

// ErrDigestRunning é retornado quando já existe uma execução em andamento
var ErrDigestRunning = errors.New("kpi digest already running")

// RunDigest calcula os KPIs sem filtro, registra no log e guarda o resultado
// como último digest. Execuções concorrentes recebem ErrDigestRunning.
func (s *KPIDigestService) RunDigest() (*Digest, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrDigestRunning
	}
	s.running = true
	s.lastRunStartedAt = s.now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.lastRunCompletedAt = s.now()
		s.mu.Unlock()
	}()

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "generate run id")
	}

	summary := s.reporter.Summary(domain.Filter{})
	digest := &Digest{
		RunID:         runID,
		GeneratedAt:   s.now(),
		RecordCount:   summary.RecordCount,
		TotalRevenue:  utils.RoundWithTwoDecimalPlace(summary.TotalRevenue),
		TotalQuantity: summary.TotalQuantity,
		AverageTicket: roundKPI(summary.AverageTicket),
		TopProduct:    summary.TopProduct,
		TopCustomer:   summary.TopCustomer,
	}

	logrus.WithFields(logrus.Fields{
		"run_id":         digest.RunID,
		"records":        digest.RecordCount,
		"total_revenue":  digest.TotalRevenue.StringFixed(2),
		"total_quantity": digest.TotalQuantity,
		"average_ticket": digest.AverageTicket.String(),
		"top_product":    digest.TopProduct.String(),
		"top_customer":   digest.TopCustomer.String(),
	}).Info("kpi digest: concluído")

	s.mu.Lock()
	s.lastDigest = digest
	s.mu.Unlock()

	return digest, nil
}

// roundKPI arredonda para centavos um indicador disponível
func roundKPI(k domain.KPI[decimal.Decimal]) domain.KPI[decimal.Decimal] {
	if !k.Valid {
		return k
	}
	return domain.Available(utils.RoundWithTwoDecimalPlace(k.Value))
}

// TriggerManualSync dispara uma execução em background. Retorna falso quando
// já existe uma execução em andamento.
func (s *KPIDigestService) TriggerManualSync() bool {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	if running {
		logrus.Info("kpi digest: execução em andamento, disparo manual ignorado")
		return false
	}

	logrus.Info("kpi digest: execução manual solicitada")
	go func() {
		if _, err := s.RunDigest(); err != nil {
			logrus.WithError(err).Warn("kpi digest: execução manual ignorada")
		}
	}()
	return true
}

// LastDigest retorna o resultado da última execução, ou nil
func (s *KPIDigestService) LastDigest() *Digest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDigest
}

// GetStatus retorna o agendamento e o resultado da última execução
func (s *KPIDigestService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"running":                s.running,
		"last_sync_started_at":   s.lastRunStartedAt,
		"last_sync_completed_at": s.lastRunCompletedAt,
		"last_digest":            s.lastDigest,
	}
	if s.lastDigest != nil {
		status["last_run_id"] = s.lastDigest.RunID
	}
	return status
}
