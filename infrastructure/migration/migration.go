package migration

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Version é a versão de schema esperada pela aplicação
const Version = 1

var ErrDirtyDatabase = errors.New("banco de dados em estado sujo, corrija a migração manualmente")

// Up aplica as migrações do histórico de atividades até Version
func Up(dsn string) error {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return err
	}
	defer source.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return err
	}
	defer mg.Close()

	current, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	if dirty {
		return ErrDirtyDatabase
	}

	if err := mg.Migrate(Version); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logrus.Debugf("Schema já está na versão %d", current)
			return nil
		}
		return err
	}

	logrus.Infof("Migrações aplicadas: versão %d -> %d", current, Version)
	return nil
}
