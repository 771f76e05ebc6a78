package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/repository"
	"github.com/vfg2006/marketing-analytics-api/internal/config"
)

const purgeTimeout = 2 * time.Minute

// ActivityRetentionConfig representa a configuração da limpeza do histórico
type ActivityRetentionConfig struct {
	CronSchedule  string
	RetentionDays int
	SyncEnabled   bool
}

// ActivityRetentionService remove periodicamente entradas antigas do histórico de atividades
type ActivityRetentionService struct {
	scheduler    *gocron.Scheduler
	config       ActivityRetentionConfig
	activityRepo repository.ActivityRepository

	mu              sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastDeleted     int64
	lastError       string
}

// NewActivityRetentionService cria o agendador. activityRepo pode ser nil quando o
// histórico está desabilitado; nesse caso nenhuma limpeza é executada.
func NewActivityRetentionService(
	activityRepo repository.ActivityRepository,
	appConfig *config.Config,
) *ActivityRetentionService {
	retentionConfig := ActivityRetentionConfig{
		CronSchedule:  appConfig.ActivityRetention.CronSchedule,
		RetentionDays: appConfig.ActivityRetention.RetentionDays,
		SyncEnabled:   appConfig.ActivityRetention.Enabled && activityRepo != nil,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  retentionConfig.CronSchedule,
		"retention_days": retentionConfig.RetentionDays,
		"sync_enabled":   retentionConfig.SyncEnabled,
	}).Info("Configuração da limpeza do histórico de atividades carregada")

	return &ActivityRetentionService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       retentionConfig,
		activityRepo: activityRepo,
	}
}

// Start inicia o agendador e o para quando o contexto for cancelado
func (s *ActivityRetentionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Limpeza do histórico de atividades desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza do histórico de atividades")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.purge()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do histórico de atividades: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza do histórico de atividades")
		s.scheduler.Stop()
	}()

	return nil
}

// Available indica se existe histórico para limpar
func (s *ActivityRetentionService) Available() bool {
	return s.activityRepo != nil
}

// TriggerManualSync dispara uma limpeza fora do horário agendado
func (s *ActivityRetentionService) TriggerManualSync() {
	if !s.Available() {
		logrus.Info("Histórico de atividades desabilitado, ignorando limpeza manual")
		return
	}

	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		logrus.Info("Limpeza do histórico já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando limpeza manual do histórico de atividades")
	go s.purge()
}

// purge apaga entradas mais antigas que o período de retenção
func (s *ActivityRetentionService) purge() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logrus.Info("Limpeza do histórico já em andamento, ignorando")
		return
	}
	s.running = true
	s.lastStartedAt = time.Now()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	deleted, err := s.activityRepo.DeleteOlderThan(ctx, s.config.RetentionDays)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao limpar histórico de atividades")
		return
	}

	s.lastError = ""
	s.lastDeleted = deleted
	s.lastCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"deleted":        deleted,
		"retention_days": s.config.RetentionDays,
		"duration":       time.Since(s.lastStartedAt).String(),
	}).Info("Limpeza do histórico de atividades concluída")
}

// GetStatus retorna o status atual do agendador
func (s *ActivityRetentionService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"running":                s.running,
		"last_sync_started_at":   s.lastStartedAt,
		"last_sync_completed_at": s.lastCompletedAt,
		"last_deleted":           s.lastDeleted,
		"last_error":             s.lastError,
	}
}
