package log

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background(), "")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, GetCorrelationID(ctx))

	ctx, id = WithCorrelationID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, "abc-123", GetCorrelationID(ctx))

	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithFields_DevelopmentFiltersFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	l := &logger{entry: logrus.NewEntry(logrus.New())}

	filtered := l.WithFields(Fields{"rows": 5, "user_agent": "curl"}).(*logger)
	assert.Equal(t, logrus.Fields{"rows": 5}, filtered.entry.Data)

	assert.Same(t, l, l.WithField("remote_addr", "127.0.0.1"))
}

func TestWithFields_ProductionKeepsFields(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	l := &logger{entry: logrus.NewEntry(logrus.New())}

	full := l.WithFields(Fields{"rows": 5, "user_agent": "curl"}).(*logger)
	assert.Len(t, full.entry.Data, 2)
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	assert.Equal(t, logrus.DebugLevel, Configure("debug"))
	assert.Equal(t, logrus.InfoLevel, Configure("verboso"))
}
