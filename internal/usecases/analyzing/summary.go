package analyzing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

const notAvailable = "N/A"

// Summarize calcula o resumo de performance: investimento total, conversões totais,
// CTR médio e ROAS médio. Tabela vazia ou coluna ausente resulta em N/A.
func Summarize(table domain.CampaignTable) domain.SummaryStats {
	printer := message.NewPrinter(language.BrazilianPortuguese)

	investment := sumField(table, domain.FieldInvestment)
	conversions := sumField(table, domain.FieldConversions)
	ctr := meanField(table, domain.FieldCTR)
	roas := meanField(table, domain.FieldROAS)

	return domain.SummaryStats{
		Rows:             table.Len(),
		TotalInvestment:  display(investment, func(v float64) string { return printer.Sprintf("R$ %.2f", v) }),
		TotalConversions: display(conversions, func(v float64) string { return printer.Sprintf("%.0f", v) }),
		AverageCTR:       display(ctr, func(v float64) string { return printer.Sprintf("%.2f%%", v) }),
		AverageROAS:      display(roas, func(v float64) string { return printer.Sprintf("%.2f", v) }),
	}
}

func display(n domain.Number, format func(float64) string) domain.Stat {
	if !n.Valid {
		return domain.Stat{Value: n, Display: notAvailable}
	}
	return domain.Stat{Value: n, Display: format(n.Value)}
}

// sumField soma os valores disponíveis com aritmética decimal
func sumField(table domain.CampaignTable, field domain.Field) domain.Number {
	values := validValues(table, field)
	if len(values) == 0 {
		return domain.NA
	}

	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return domain.NewNumber(total.InexactFloat64())
}

func meanField(table domain.CampaignTable, field domain.Field) domain.Number {
	values := validValues(table, field)
	if len(values) == 0 {
		return domain.NA
	}
	return domain.NewNumber(stat.Mean(values, nil))
}

// validValues retorna os valores disponíveis de um campo, ou nil se a coluna não existe
func validValues(table domain.CampaignTable, field domain.Field) []float64 {
	if !table.HasField(field) {
		return nil
	}

	values := make([]float64, 0, table.Len())
	for _, r := range table.Records {
		if v, ok := r.Number(field).Float(); ok {
			values = append(values, v)
		}
	}
	return values
}
