package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-analytics-api/internal/config"
	"go.uber.org/mock/gomock"
)

func retentionConfig(enabled bool) *config.Config {
	return &config.Config{
		ActivityRetention: config.ActivityRetention{
			CronSchedule:  "0 3 * * *",
			RetentionDays: 30,
			Enabled:       enabled,
		},
	}
}

func TestActivityRetentionService_Purge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockActivityRepo := mocks.NewMockActivityRepository(ctrl)
	mockActivityRepo.EXPECT().DeleteOlderThan(gomock.Any(), 30).Return(int64(4), nil)

	service := NewActivityRetentionService(mockActivityRepo, retentionConfig(true))
	service.purge()

	status := service.GetStatus()
	assert.Equal(t, int64(4), status["last_deleted"])
	assert.Equal(t, "", status["last_error"])
	assert.Equal(t, false, status["running"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestActivityRetentionService_PurgeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockActivityRepo := mocks.NewMockActivityRepository(ctrl)
	mockActivityRepo.EXPECT().DeleteOlderThan(gomock.Any(), 30).Return(int64(0), errors.New("banco indisponível"))

	service := NewActivityRetentionService(mockActivityRepo, retentionConfig(true))
	service.purge()

	status := service.GetStatus()
	assert.Equal(t, "banco indisponível", status["last_error"])
	assert.True(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestActivityRetentionService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	done := make(chan struct{})
	mockActivityRepo := mocks.NewMockActivityRepository(ctrl)
	mockActivityRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), 30).
		DoAndReturn(func(context.Context, int) (int64, error) {
			close(done)
			return 1, nil
		})

	service := NewActivityRetentionService(mockActivityRepo, retentionConfig(false))
	service.TriggerManualSync()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("limpeza manual não foi executada")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["last_deleted"] == int64(1)
	}, time.Second, 10*time.Millisecond)
}

func TestActivityRetentionService_DisabledWithoutRepository(t *testing.T) {
	service := NewActivityRetentionService(nil, retentionConfig(true))

	assert.False(t, service.Available())
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
	require.NoError(t, service.Start(context.Background()))

	// Sem repositório nada é executado
	service.TriggerManualSync()
}

func TestActivityRetentionService_InvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := retentionConfig(true)
	cfg.ActivityRetention.CronSchedule = "não é cron"

	service := NewActivityRetentionService(mocks.NewMockActivityRepository(ctrl), cfg)
	assert.Error(t, service.Start(context.Background()))
}
