package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	ActivityLog       ActivityLog       `mapstructure:",squash"`
	ActivityRetention ActivityRetention `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host               string   `mapstructure:"host"`
	Port               string   `mapstructure:"port"`
	UploadMaxBytes     int64    `mapstructure:"upload_max_bytes"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

// ActivityLog controla o histórico de operações em PostgreSQL.
// Desabilitado, a API não abre conexão com o banco.
type ActivityLog struct {
	Enabled bool `mapstructure:"activity_log_enabled"`
	Migrate bool `mapstructure:"activity_log_migrate"`
}

type ActivityRetention struct {
	CronSchedule  string `mapstructure:"activity_retention_cron"`
	RetentionDays int    `mapstructure:"activity_retention_days"`
	Enabled       bool   `mapstructure:"activity_retention_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("UPLOAD_MAX_BYTES", 10<<20) // 10 MiB
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marketing?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 5)

	viper.SetDefault("ACTIVITY_LOG_ENABLED", false)
	viper.SetDefault("ACTIVITY_LOG_MIGRATE", true)

	// Defaults para limpeza do histórico
	viper.SetDefault("ACTIVITY_RETENTION_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("ACTIVITY_RETENTION_DAYS", 30)          // Mantém 30 dias de histórico
	viper.SetDefault("ACTIVITY_RETENTION_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Opcional, já que usamos godotenv
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate confere combinações de configuração que impediriam a API de subir
func (c *Config) Validate() error {
	if c.ActivityRetention.Enabled && !c.ActivityLog.Enabled {
		return fmt.Errorf("ACTIVITY_RETENTION_ENABLED exige ACTIVITY_LOG_ENABLED")
	}
	if c.ActivityRetention.RetentionDays < 1 {
		return fmt.Errorf("ACTIVITY_RETENTION_DAYS deve ser maior que zero: %d", c.ActivityRetention.RetentionDays)
	}
	if c.Server.UploadMaxBytes < 1 {
		return fmt.Errorf("UPLOAD_MAX_BYTES deve ser maior que zero: %d", c.Server.UploadMaxBytes)
	}
	return nil
}

// Addr retorna o endereço de escuta do servidor HTTP
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
