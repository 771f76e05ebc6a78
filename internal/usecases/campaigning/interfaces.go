package campaigning

import (
	"context"
	"io"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

// Campaigner é a sessão de campanhas: uma única planilha em memória,
// substituída por inteiro a cada operação bem-sucedida
type Campaigner interface {
	Table() domain.CampaignTable
	Replace(ctx context.Context, table domain.CampaignTable) (domain.CampaignTable, error)
	Import(ctx context.Context, filename string, r io.Reader) (domain.CampaignTable, error)
	Reset(ctx context.Context) domain.CampaignTable
	Clear(ctx context.Context) domain.CampaignTable
	RecomputeMetrics(ctx context.Context) (domain.CampaignTable, error)
	Export(ctx context.Context, filename string, w io.Writer) error
}

// ActivityLister expõe o histórico de operações da sessão
type ActivityLister interface {
	Activity(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
}

// Session combina as duas interfaces
type Session interface {
	Campaigner
	ActivityLister
}
