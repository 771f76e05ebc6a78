package spreadsheet

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

// Cabeçalhos aceitos para cada campo, já normalizados (minúsculas e sem acentos)
var headerAliases = map[string]domain.Field{
	"campanha":      domain.FieldName,
	"nome":          domain.FieldName,
	"campaign":      domain.FieldName,
	"campaign name": domain.FieldName,
	"name":          domain.FieldName,
	"investimento":  domain.FieldInvestment,
	"investment":    domain.FieldInvestment,
	"gasto":         domain.FieldInvestment,
	"spend":         domain.FieldInvestment,
	"cliques":       domain.FieldClicks,
	"clicks":        domain.FieldClicks,
	"impressoes":    domain.FieldImpressions,
	"impressions":   domain.FieldImpressions,
	"conversoes":    domain.FieldConversions,
	"conversions":   domain.FieldConversions,
	"ctr":           domain.FieldCTR,
	"cpa":           domain.FieldCPA,
	"roas":          domain.FieldROAS,
	"status":        domain.FieldStatus,
	"situacao":      domain.FieldStatus,
	"plataforma":    domain.FieldPlatform,
	"platform":      domain.FieldPlatform,
	"canal":         domain.FieldChannel,
	"channel":       domain.FieldChannel,
}

// normalizeHeader remove acentos, espaços nas pontas e converte para minúsculas
func normalizeHeader(header string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, header)
	if err != nil {
		folded = header
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// ResolveColumns associa cada cabeçalho a um campo conhecido.
// Cabeçalhos vazios recebem um nome gerado, repetidos recebem sufixo numérico,
// e apenas a primeira ocorrência de cada campo é reconhecida; o resto vira coluna extra.
func ResolveColumns(headers []string) []domain.Column {
	columns := make([]domain.Column, len(headers))
	usedHeaders := make(map[string]bool, len(headers))
	suffixes := make(map[string]int, len(headers))
	usedFields := make(map[domain.Field]bool, len(headers))

	for i, raw := range headers {
		header := strings.TrimSpace(raw)
		if header == "" {
			header = fmt.Sprintf("Unnamed: %d", i)
		}
		if usedHeaders[header] {
			base := header
			n := suffixes[base]
			// o sufixo não pode colidir com um cabeçalho já existente (ex.: A, A.1, A)
			for {
				n++
				header = fmt.Sprintf("%s.%d", base, n)
				if !usedHeaders[header] {
					break
				}
			}
			suffixes[base] = n
		}
		usedHeaders[header] = true

		column := domain.Column{Header: header}
		if field, ok := headerAliases[normalizeHeader(header)]; ok && !usedFields[field] {
			column.Field = field
			usedFields[field] = true
		}
		columns[i] = column
	}

	return columns
}
