package analyzing

import (
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

// Analyze aplica os filtros e resume as linhas resultantes
func Analyze(table domain.CampaignTable, filters domain.CampaignFilters) domain.AnalysisResponse {
	filtered := FilterTable(table, filters.Statuses, filters.Platforms, filters.Channels)

	return domain.AnalysisResponse{
		Filters: filters,
		Table:   filtered,
		Summary: Summarize(filtered),
	}
}

// AllFilters seleciona todos os valores presentes em cada dimensão
func AllFilters(table domain.CampaignTable) domain.CampaignFilters {
	options := FilterOptions(table)
	return domain.CampaignFilters{
		Statuses:  options.Statuses,
		Platforms: options.Platforms,
		Channels:  options.Channels,
	}
}
