package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-analytics-api/infrastructure/migration"
	"github.com/vfg2006/marketing-analytics-api/infrastructure/repository"
	"github.com/vfg2006/marketing-analytics-api/internal/api"
	"github.com/vfg2006/marketing-analytics-api/internal/api/handler"
	"github.com/vfg2006/marketing-analytics-api/internal/config"
	"github.com/vfg2006/marketing-analytics-api/internal/scheduler"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-analytics-api/pkg/log"
)

func main() {
	// Formato inicial, antes de conhecer o nível configurado
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := campaigning.NewService()

	// O histórico de atividades é o único uso do banco; desabilitado, a API roda só em memória
	var activityRepo repository.ActivityRepository
	if cfg.ActivityLog.Enabled {
		pgConn := pgconn(ctx, cfg)
		defer pgConn.Close()

		activityRepo = repository.NewActivityRepository(pgConn)
		session.WithActivityLog(activityRepo)
		logrus.Info("Histórico de atividades habilitado")
	}

	connector := connecting.NewService()

	retentionService := scheduler.NewActivityRetentionService(activityRepo, cfg)
	if err := retentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do histórico de atividades")
	}

	server, err := api.New(
		cfg,
		session,
		connector,
		handler.CronJobServices{
			handler.CronJobTypeActivityRetention: retentionService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria a conexão com o banco e aplica as migrações quando configurado
func pgconn(ctx context.Context, cfg *config.Config) *postgres.Connection {
	if cfg.ActivityLog.Migrate {
		if err := migration.Up(cfg.Database.DSN); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações do banco de dados")
		}
		logrus.WithField("version", migration.Version).Info("Migrações aplicadas")
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
