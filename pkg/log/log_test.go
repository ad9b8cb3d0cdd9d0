package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContext_AddsCorrelationField(t *testing.T) {
	SetupTestLogger()

	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).Info("reporting: resumo solicitado")

	assert.Contains(t, buf.String(), "correlation_id="+id)
	assert.Contains(t, buf.String(), "reporting: resumo solicitado")
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Cleanup(SetupTestLogger)

	Setup("verbose")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	Setup("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	_, isJSON := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}
