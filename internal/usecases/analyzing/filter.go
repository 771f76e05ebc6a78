package analyzing

import (
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

// FilterTable mantém, na ordem original, as linhas cujo status, plataforma e canal
// pertencem simultaneamente aos conjuntos informados.
// Um conjunto vazio não aceita nenhuma linha. Uma dimensão cuja coluna não existe
// na tabela não restringe o resultado.
func FilterTable(table domain.CampaignTable, statuses, platforms, channels []string) domain.CampaignTable {
	type dimension struct {
		field   domain.Field
		allowed map[string]bool
	}

	statusSet := make([]string, len(statuses))
	for i, s := range statuses {
		statusSet[i] = string(domain.NormalizeStatus(s))
	}

	var dimensions []dimension
	for _, d := range []struct {
		field  domain.Field
		values []string
	}{
		{domain.FieldStatus, statusSet},
		{domain.FieldPlatform, platforms},
		{domain.FieldChannel, channels},
	} {
		if !table.HasField(d.field) {
			continue
		}
		dimensions = append(dimensions, dimension{field: d.field, allowed: toSet(d.values)})
	}

	records := make([]domain.CampaignRecord, 0, table.Len())
	for _, r := range table.Records {
		pass := true
		for _, d := range dimensions {
			if !d.allowed[r.Text(d.field)] {
				pass = false
				break
			}
		}
		if pass {
			records = append(records, r.Clone())
		}
	}

	return table.WithRecords(records)
}

// FilterOptions retorna os valores distintos de status, plataforma e canal
// na ordem em que aparecem
func FilterOptions(table domain.CampaignTable) domain.FilterOptions {
	return domain.FilterOptions{
		Statuses:  distinct(table, domain.FieldStatus),
		Platforms: distinct(table, domain.FieldPlatform),
		Channels:  distinct(table, domain.FieldChannel),
	}
}

func distinct(table domain.CampaignTable, field domain.Field) []string {
	values := make([]string, 0)
	if !table.HasField(field) {
		return values
	}

	seen := make(map[string]bool)
	for _, r := range table.Records {
		v := r.Text(field)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
