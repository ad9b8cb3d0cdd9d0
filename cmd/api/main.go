package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/charting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func main() {
	chdirToModule()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("nível de log definido como %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A base é carregada uma única vez. Erro de carga impede a subida
	records, err := dataset.LoadConfigured(ctx, cfg)
	if err != nil {
		var loadErr *domain.LoadError
		if errors.As(err, &loadErr) {
			logrus.WithFields(logrus.Fields{
				"source": loadErr.Source,
				"line":   loadErr.Line,
				"column": loadErr.Column,
			}).WithError(loadErr.Err).Fatal("dataset: erro ao carregar registros")
		}
		logrus.WithError(err).Fatal("dataset: erro ao carregar registros")
	}

	// Serviços
	reportService := reporting.NewService(records, reporting.Options{TopN: cfg.Report.TopN})
	chartRenderer := charting.NewRenderer(cfg.Chart.Width, cfg.Chart.Height)

	// Agendadores
	kpiDigestService := scheduler.NewKPIDigestService(reportService, cfg)
	if err := kpiDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("kpi digest: agendador não iniciado")
	}

	server, err := api.New(
		cfg,
		reportService,
		chartRenderer,
		handler.CronJobServices{KPIDigestService: kpiDigestService},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToModule faz caminhos relativos como DATA_PATH partirem da raiz do
// módulo quando iniciado com go run.
func chdirToModule() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return
	}
	root := path.Join(path.Dir(file), "..", "..")
	if _, err := os.Stat(path.Join(root, "go.mod")); err == nil {
		_ = os.Chdir(root)
	}
}
