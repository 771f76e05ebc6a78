package campaigning

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/repository"
	"github.com/vfg2006/marketing-analytics-api/infrastructure/spreadsheet"
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/analyzing"
)

// Service guarda a planilha da sessão. Leituras recebem cópias; escritas trocam o valor
// inteiro, de modo que uma operação com erro nunca deixa a planilha pela metade.
type Service struct {
	mu    sync.RWMutex
	table domain.CampaignTable

	activityRepository repository.ActivityRepository
	useActivityLog     bool
}

// NewService cria a sessão já carregada com a planilha de exemplo
func NewService() *Service {
	return &Service{
		table:          domain.ExampleTable(),
		useActivityLog: false, // Inicialmente não registra atividades
	}
}

// WithActivityLog habilita o registro das operações no histórico
func (s *Service) WithActivityLog(activityRepo repository.ActivityRepository) *Service {
	s.activityRepository = activityRepo
	s.useActivityLog = activityRepo != nil
	return s
}

// Table retorna uma cópia da planilha atual
func (s *Service) Table() domain.CampaignTable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.table.Clone()
}

// Replace substitui a planilha pela versão editada
func (s *Service) Replace(ctx context.Context, table domain.CampaignTable) (domain.CampaignTable, error) {
	normalized, err := normalizeTable(table)
	if err != nil {
		return domain.CampaignTable{}, err
	}

	s.store(normalized)
	s.record(ctx, domain.ActivityEdit, "", normalized)

	return normalized.Clone(), nil
}

// Import lê uma planilha enviada e, se a leitura for completa, passa a usá-la
func (s *Service) Import(ctx context.Context, filename string, r io.Reader) (domain.CampaignTable, error) {
	if strings.TrimSpace(filename) == "" {
		return domain.CampaignTable{}, ErrUploadNoFilename
	}

	table, err := spreadsheet.Import(filename, r)
	if err != nil {
		logrus.WithError(err).WithField("filename", filename).Warn("Falha ao importar planilha")
		return domain.CampaignTable{}, err
	}

	s.store(table)
	s.record(ctx, domain.ActivityUpload, filename, table)

	logrus.WithFields(logrus.Fields{
		"filename": filename,
		"rows":     table.Len(),
		"columns":  len(table.Columns),
	}).Info("Planilha importada com sucesso")

	return table.Clone(), nil
}

// Reset restaura a planilha de exemplo
func (s *Service) Reset(ctx context.Context) domain.CampaignTable {
	table := domain.ExampleTable()

	s.store(table)
	s.record(ctx, domain.ActivityReset, "", table)

	return table.Clone()
}

// Clear remove todas as linhas mantendo as colunas
func (s *Service) Clear(ctx context.Context) domain.CampaignTable {
	s.mu.Lock()
	s.table = s.table.Empty()
	table := s.table.Clone()
	s.mu.Unlock()

	s.record(ctx, domain.ActivityClear, "", table)

	return table
}

// RecomputeMetrics recalcula CTR, CPA e ROAS de todas as linhas
func (s *Service) RecomputeMetrics(ctx context.Context) (domain.CampaignTable, error) {
	s.mu.Lock()
	recomputed, err := analyzing.RecomputeMetrics(s.table)
	if err != nil {
		s.mu.Unlock()
		return domain.CampaignTable{}, err
	}
	s.table = recomputed
	s.mu.Unlock()

	s.record(ctx, domain.ActivityRecompute, "", recomputed)

	return recomputed.Clone(), nil
}

// Export grava a planilha atual no formato indicado pelo nome do arquivo.
// O arquivo é gerado em memória antes de ser escrito em w.
func (s *Service) Export(ctx context.Context, filename string, w io.Writer) error {
	table := s.Table()

	var buf bytes.Buffer
	if err := spreadsheet.Export(filename, &buf, table); err != nil {
		return err
	}

	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	s.record(ctx, domain.ActivityExport, filename, table)
	return nil
}

// Activity lista as operações mais recentes
func (s *Service) Activity(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	if !s.useActivityLog {
		return nil, ErrActivityLogDisabled
	}

	return s.activityRepository.List(ctx, limit)
}

func (s *Service) store(table domain.CampaignTable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = table.Clone()
}

// record registra a operação no histórico; falhas são apenas logadas
func (s *Service) record(ctx context.Context, action domain.ActivityAction, source string, table domain.CampaignTable) {
	if !s.useActivityLog {
		return
	}

	entry := &domain.ActivityEntry{
		Action:  action,
		Source:  source,
		Rows:    table.Len(),
		Columns: len(table.Columns),
	}

	if err := s.activityRepository.Save(ctx, entry); err != nil {
		logrus.WithError(err).WithField("action", action).Error("Erro ao registrar atividade")
	}
}
