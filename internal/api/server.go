package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

// shutdownTimeout é o tempo máximo para as requisições em andamento terminarem
const shutdownTimeout = 15 * time.Second

// Server é o servidor HTTP da API
type Server struct {
	httpServer *http.Server
}

// New cria o servidor com as rotas e middlewares configurados
func New(
	config *config.Config,
	reportService reporting.Reporter,
	chartRenderer handler.ChartRenderer,
	cronServices handler.CronJobServices,
) (*Server, error) {
	return &Server{
		httpServer: &http.Server{
			Addr:              config.Server.Addr(),
			Handler:           NewHandler(config, reportService, chartRenderer, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}, nil
}

// NewHandler monta as rotas atrás da cadeia global de middlewares
func NewHandler(
	config *config.Config,
	reportService reporting.Reporter,
	chartRenderer handler.ChartRenderer,
	cronServices handler.CronJobServices,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Reports(reportService)...),
		router.WithRoutes(handler.Charts(reportService, chartRenderer)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)
	logrus.WithField("routes", rt.Routes()).Debug("server: rotas registradas")

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.CORS.AllowedOrigins),
	}

	// TrustedProxy precisa rodar antes do limitador, que usa os headers de encaminhamento
	if config.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst)
		middlewares = append(middlewares,
			middleware.TrustedProxy(config.Proxy.TrustedProxies),
			middleware.RateLimit(limiter),
		)
	}

	return alice.New(middlewares...).Then(rt)
}

// Run escuta até um sinal de término ou o cancelamento do contexto e então
// desliga o servidor de forma graciosa. Um erro de listen é retornado
func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server: escutando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("server: sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("server: contexto cancelado")
	case err := <-errCh:
		logrus.WithError(err).Error("server: erro ao escutar")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("server: iniciando desligamento gracioso")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server: erro no desligamento")
		return err
	}

	logrus.Info("server: parado")
	return nil
}

// Shutdown encerra o servidor aguardando as requisições em andamento
func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
