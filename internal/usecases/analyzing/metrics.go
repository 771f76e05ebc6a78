package analyzing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/pkg/utils"
)

// Colunas brutas necessárias para recalcular CTR, CPA e ROAS
var metricSources = []domain.Field{
	domain.FieldClicks,
	domain.FieldImpressions,
	domain.FieldInvestment,
	domain.FieldConversions,
}

var derivedMetrics = []domain.Field{domain.FieldCTR, domain.FieldCPA, domain.FieldROAS}

// RecomputeMetrics retorna uma nova tabela com CTR, CPA e ROAS recalculados a partir
// dos contadores brutos. Colunas derivadas ausentes são adicionadas ao final.
// Divisão por zero ou operando indisponível resulta em N/A.
func RecomputeMetrics(table domain.CampaignTable) (domain.CampaignTable, error) {
	var missing []string
	for _, f := range metricSources {
		if !table.HasField(f) {
			missing = append(missing, domain.DefaultHeaders[f])
		}
	}
	if len(missing) > 0 {
		return domain.CampaignTable{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	out := table.Clone()
	for _, f := range derivedMetrics {
		if !out.HasField(f) {
			out.Columns = append(out.Columns, domain.Column{Header: domain.DefaultHeaders[f], Field: f})
		}
	}

	for i := range out.Records {
		r := &out.Records[i]
		r.CTR = CTR(r.Clicks, r.Impressions)
		r.CPA = CPA(r.Investment, r.Conversions)
		r.ROAS = ROAS(r.Conversions, r.Investment)
	}

	return out, nil
}

// CTR = cliques / impressões × 100, arredondado em duas casas
func CTR(clicks, impressions domain.Number) domain.Number {
	if !clicks.Valid || !impressions.Valid || impressions.Value == 0 {
		return domain.NA
	}
	return domain.NewNumber(utils.RoundWithTwoDecimalPlace(clicks.Value / impressions.Value * 100))
}

// CPA = investimento / conversões, arredondado em duas casas
func CPA(investment, conversions domain.Number) domain.Number {
	if !investment.Valid || !conversions.Valid || conversions.Value == 0 {
		return domain.NA
	}
	return domain.NewNumber(utils.RoundWithTwoDecimalPlace(investment.Value / conversions.Value))
}

// ROAS = conversões × 100 / investimento, arredondado em duas casas
func ROAS(conversions, investment domain.Number) domain.Number {
	if !conversions.Valid || !investment.Valid || investment.Value == 0 {
		return domain.NA
	}
	return domain.NewNumber(utils.RoundWithTwoDecimalPlace(conversions.Value * 100 / investment.Value))
}
