package campaigning

import (
	"strings"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

// Contadores brutos da campanha, que não aceitam valores negativos na edição
var nonNegativeFields = []domain.Field{
	domain.FieldInvestment,
	domain.FieldClicks,
	domain.FieldImpressions,
	domain.FieldConversions,
}

// normalizeTable valida as colunas de uma planilha editada e ajusta os registros:
// status em grafia canônica, campos sem coluna zerados e extras restritos às colunas extras.
// Investimento, cliques, impressões e conversões não podem ser negativos.
func normalizeTable(table domain.CampaignTable) (domain.CampaignTable, error) {
	if len(table.Columns) == 0 {
		return domain.CampaignTable{}, newTableError(ErrColumnsRequired, "")
	}

	columns := make([]domain.Column, len(table.Columns))
	headers := make(map[string]bool, len(table.Columns))
	fields := make(map[domain.Field]bool, len(table.Columns))
	extras := make(map[string]bool)

	for i, c := range table.Columns {
		header := strings.TrimSpace(c.Header)
		if header == "" {
			return domain.CampaignTable{}, newTableError(ErrMissingHeader, "")
		}
		if headers[header] {
			return domain.CampaignTable{}, newTableError(ErrDuplicateHeader, header)
		}
		headers[header] = true

		if c.IsExtra() {
			extras[header] = true
		} else {
			if _, known := domain.DefaultHeaders[c.Field]; !known {
				return domain.CampaignTable{}, newTableError(ErrUnknownField, header)
			}
			if fields[c.Field] {
				return domain.CampaignTable{}, newTableError(ErrDuplicateField, header)
			}
			fields[c.Field] = true
		}

		columns[i] = domain.Column{Header: header, Field: c.Field}
	}

	records := make([]domain.CampaignRecord, len(table.Records))
	for i, r := range table.Records {
		records[i] = normalizeRecord(r, fields, extras)
		if field, negative := negativeCounter(records[i], fields); negative {
			return domain.CampaignTable{}, newTableError(ErrNegativeValue, headerFor(columns, field))
		}
	}

	return domain.CampaignTable{Columns: columns, Records: records}, nil
}

func normalizeRecord(r domain.CampaignRecord, fields map[domain.Field]bool, extras map[string]bool) domain.CampaignRecord {
	var out domain.CampaignRecord

	for f := range fields {
		if f.IsNumeric() {
			out.SetNumber(f, r.Number(f))
		} else {
			out.SetText(f, strings.TrimSpace(r.Text(f)))
		}
	}

	for header, value := range r.Extra {
		value = strings.TrimSpace(value)
		if !extras[strings.TrimSpace(header)] || value == "" {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]string)
		}
		out.Extra[strings.TrimSpace(header)] = value
	}

	return out
}

func negativeCounter(r domain.CampaignRecord, fields map[domain.Field]bool) (domain.Field, bool) {
	for _, f := range nonNegativeFields {
		if !fields[f] {
			continue
		}
		if n := r.Number(f); n.Valid && n.Value < 0 {
			return f, true
		}
	}
	return "", false
}

func headerFor(columns []domain.Column, field domain.Field) string {
	for _, c := range columns {
		if c.Field == field {
			return c.Header
		}
	}
	return ""
}
