package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/pkg/utils"
)

//go:generate mockgen -source=activity.go -destination=mocks/activity.go -package=mocks

const (
	activityTable = "activity_log"
	activityIDLen = 12
	// DefaultActivityLimit é usado quando nenhum limite (ou um limite inválido) é informado
	DefaultActivityLimit = 50
	maxActivityLimit     = 500
)

type ActivityRepository interface {
	Save(ctx context.Context, entry *domain.ActivityEntry) error
	List(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type activityRepository struct {
	conn postgres.Queryer
}

func NewActivityRepository(conn postgres.Queryer) ActivityRepository {
	return &activityRepository{
		conn: conn,
	}
}

// Save grava uma entrada; ID e CreatedAt são preenchidos quando vazios
func (r *activityRepository) Save(ctx context.Context, entry *domain.ActivityEntry) error {
	if entry.ID == "" {
		id, err := utils.GenerateID(activityIDLen)
		if err != nil {
			return fmt.Errorf("erro ao gerar ID da atividade: %w", err)
		}
		entry.ID = id
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query, args, err := squirrel.
		Insert(activityTable).
		Columns("id", "action", "source", "row_count", "column_count", "created_at").
		Values(entry.ID, string(entry.Action), entry.Source, entry.Rows, entry.Columns, entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// List retorna as entradas mais recentes primeiro
func (r *activityRepository) List(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	query, args, err := squirrel.
		Select("id", "action", "source", "row_count", "column_count", "created_at").
		From(activityTable).
		OrderBy("created_at DESC").
		Limit(uint64(NormalizeActivityLimit(limit))).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.ActivityEntry, 0)
	for rows.Next() {
		entry, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear atividade: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *activityRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(activityTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// NormalizeActivityLimit aplica o limite padrão e o teto de listagem
func NormalizeActivityLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultActivityLimit
	case limit > maxActivityLimit:
		return maxActivityLimit
	default:
		return limit
	}
}

func scanActivity(rows *sql.Rows) (*domain.ActivityEntry, error) {
	entry := &domain.ActivityEntry{}
	var action string

	err := rows.Scan(
		&entry.ID,
		&action,
		&entry.Source,
		&entry.Rows,
		&entry.Columns,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Action = domain.ActivityAction(action)

	return entry, nil
}
