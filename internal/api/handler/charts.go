package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/charting"
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/marketing-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-analytics-api/pkg/log"
)

// Gráficos disponíveis na aba de análise
const (
	ChartEngagement           = "engagement"
	ChartEfficiency           = "efficiency"
	ChartInvestmentByPlatform = "investment-by-platform"
)

var charts = map[string]func(io.Writer, domain.CampaignTable) error{
	ChartEngagement:           charting.Engagement,
	ChartEfficiency:           efficiencyChart,
	ChartInvestmentByPlatform: charting.InvestmentByPlatform,
}

// efficiencyChart desenha investimento contra conversões, uma cor por plataforma.
// Usa os cabeçalhos da própria tabela, que podem ter sido renomeados na edição.
func efficiencyChart(w io.Writer, table domain.CampaignTable) error {
	investment, ok := table.ColumnFor(domain.FieldInvestment)
	if !ok {
		return charting.ErrNothingToPlot
	}
	conversions, ok := table.ColumnFor(domain.FieldConversions)
	if !ok {
		return charting.ErrNothingToPlot
	}
	var colorBy string
	if platform, ok := table.ColumnFor(domain.FieldPlatform); ok {
		colorBy = platform.Header
	}

	series, err := analyzing.Scatter(table, investment.Header, conversions.Header, colorBy)
	if err != nil {
		return err
	}
	return charting.Scatter(w, series)
}

// GetAnalysisChart desenha o gráfico pedido sobre as linhas filtradas
func GetAnalysisChart(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("chart")
		render, ok := charts[name]
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Gráfico inexistente. Valores aceitos: engagement, efficiency, investment-by-platform", nil)
			return
		}

		var buf bytes.Buffer
		if err := render(&buf, filteredTable(r, session)); err != nil {
			writeServiceError(w, r, err, "Erro ao gerar gráfico")
			return
		}

		writePNG(w, r, &buf)
	})
}

func writePNG(w http.ResponseWriter, r *http.Request, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", charting.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar gráfico")
	}
}
