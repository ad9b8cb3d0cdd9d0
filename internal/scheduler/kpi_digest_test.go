package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func digestConfig(enabled bool, cron string) *config.Config {
	return &config.Config{
		KPIDigest: config.KPIDigest{Enabled: enabled, CronSchedule: cron},
	}
}

func TestKPIDigestService_RunDigest(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		summary  *domain.Summary
		validate func(t *testing.T, digest *Digest)
	}{
		{
			name: "populated data set",
			summary: &domain.Summary{
				RecordCount:   3,
				TotalRevenue:  decimal.NewFromInt(100),
				TotalQuantity: 6,
				AverageTicket: domain.Available(decimal.RequireFromString("33.333333")),
				TopProduct:    domain.Available("Widget"),
				TopCustomer:   domain.Available("Ana"),
			},
			validate: func(t *testing.T, digest *Digest) {
				assert.Equal(t, 3, digest.RecordCount)
				assert.Equal(t, "100", digest.TotalRevenue.String())
				assert.Equal(t, "33.33", digest.AverageTicket.Value.String())
				assert.Equal(t, "Widget", digest.TopProduct.Value)
				assert.Equal(t, "Ana", digest.TopCustomer.Value)
				assert.Equal(t, fixed, digest.GeneratedAt)
				assert.Len(t, digest.RunID, utils.IDLength)
			},
		},
		{
			name: "empty data set keeps KPIs unavailable",
			summary: &domain.Summary{
				TotalRevenue:  decimal.Zero,
				AverageTicket: domain.NotAvailable[decimal.Decimal](),
				TopProduct:    domain.NotAvailable[string](),
				TopCustomer:   domain.NotAvailable[string](),
			},
			validate: func(t *testing.T, digest *Digest) {
				assert.Zero(t, digest.RecordCount)
				assert.False(t, digest.AverageTicket.Valid)
				assert.False(t, digest.TopProduct.Valid)
				assert.False(t, digest.TopCustomer.Valid)
				assert.Equal(t, "N/A", digest.TopCustomer.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reporter := mocks.NewMockReporter(ctrl)
			reporter.EXPECT().Summary(domain.Filter{}).Return(tt.summary)

			service := NewKPIDigestService(reporter, digestConfig(false, "0 7 * * *"))
			service.now = func() time.Time { return fixed }

			digest, err := service.RunDigest()
			require.NoError(t, err)
			tt.validate(t, digest)

			assert.Same(t, digest, service.LastDigest())
			status := service.GetStatus()
			assert.Equal(t, digest.RunID, status["last_run_id"])
			assert.Equal(t, false, status["running"])
			assert.Equal(t, fixed, status["last_sync_completed_at"])
		})
	}
}

func TestKPIDigestService_RejectsConcurrentRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	release := make(chan struct{})
	entered := make(chan struct{})
	reporter.EXPECT().Summary(gomock.Any()).DoAndReturn(func(domain.Filter) *domain.Summary {
		close(entered)
		<-release
		return &domain.Summary{}
	})

	service := NewKPIDigestService(reporter, digestConfig(false, "0 7 * * *"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := service.RunDigest()
		assert.NoError(t, err)
	}()

	<-entered
	_, err := service.RunDigest()
	assert.ErrorIs(t, err, ErrDigestRunning)
	assert.False(t, service.TriggerManualSync())
	assert.Equal(t, true, service.GetStatus()["running"])

	close(release)
	wg.Wait()
	assert.NotNil(t, service.LastDigest())
}

func TestKPIDigestService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Summary(domain.Filter{}).Return(&domain.Summary{RecordCount: 1, TotalRevenue: decimal.NewFromInt(5)})

	service := NewKPIDigestService(reporter, digestConfig(false, "0 7 * * *"))

	assert.True(t, service.TriggerManualSync())
	assert.Eventually(t, func() bool { return service.LastDigest() != nil }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, service.LastDigest().RecordCount)
}

func TestKPIDigestService_Start(t *testing.T) {
	t.Run("disabled does not schedule", func(t *testing.T) {
		service := NewKPIDigestService(nil, digestConfig(false, "not a cron"))
		assert.NoError(t, service.Start(context.Background()))
	})

	t.Run("invalid cron expression", func(t *testing.T) {
		service := NewKPIDigestService(nil, digestConfig(true, "not a cron"))
		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("valid cron stops with the context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		service := NewKPIDigestService(nil, digestConfig(true, "0 7 * * *"))

		require.NoError(t, service.Start(ctx))
		assert.True(t, service.scheduler.IsRunning())
		cancel()
		assert.Eventually(t, func() bool { return !service.scheduler.IsRunning() }, time.Second, 10*time.Millisecond)
	})
}
