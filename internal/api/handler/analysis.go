package handler

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
)

// Parâmetros de filtro da aba de análise
const (
	statusParam   = "status"
	platformParam = "platform"
	channelParam  = "channel"
)

func GetAnalysisOptions(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, analyzing.FilterOptions(session.Table()))
	})
}

// GetAnalysis devolve as linhas que passam pelos filtros e o resumo delas
func GetAnalysis(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table := session.Table()
		filters := parseFilters(r.URL.Query(), table)

		writeJSON(w, http.StatusOK, analyzing.Analyze(table, filters))
	})
}

// parseFilters lê os filtros da query string. Parâmetro ausente seleciona todos os
// valores da dimensão; parâmetro presente e vazio seleciona nenhum. Aceita tanto
// parâmetros repetidos quanto valores separados por vírgula.
func parseFilters(query url.Values, table domain.CampaignTable) domain.CampaignFilters {
	filters := analyzing.AllFilters(table)

	if values, ok := query[statusParam]; ok {
		filters.Statuses = splitValues(values, filters.Statuses)
	}
	if values, ok := query[platformParam]; ok {
		filters.Platforms = splitValues(values, filters.Platforms)
	}
	if values, ok := query[channelParam]; ok {
		filters.Channels = splitValues(values, filters.Channels)
	}

	return filters
}

// splitValues separa valores por vírgula. Um valor único que já existe na
// dimensão (ex.: "Google, Inc.") é usado inteiro.
func splitValues(values, options []string) []string {
	if len(values) == 1 {
		value := strings.TrimSpace(values[0])
		if value != "" && slices.Contains(options, value) {
			return []string{value}
		}
	}

	result := make([]string, 0, len(values))
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
	}
	return result
}

// filteredTable aplica os filtros da query à tabela atual
func filteredTable(r *http.Request, session campaigning.Campaigner) domain.CampaignTable {
	table := session.Table()
	filters := parseFilters(r.URL.Query(), table)
	return analyzing.FilterTable(table, filters.Statuses, filters.Platforms, filters.Channels)
}
