package domain

// CampaignFilters são os conjuntos de valores aceitos por dimensão.
// Um conjunto vazio não aceita nenhuma linha.
type CampaignFilters struct {
	Statuses  []string `json:"status"`
	Platforms []string `json:"platform"`
	Channels  []string `json:"channel"`
}

// FilterOptions são os valores distintos de cada dimensão, na ordem em que aparecem
type FilterOptions struct {
	Statuses  []string `json:"status"`
	Platforms []string `json:"platform"`
	Channels  []string `json:"channel"`
}

// Stat é uma estatística resumida com sua versão formatada para exibição
type Stat struct {
	Value   Number `json:"value"`
	Display string `json:"display"`
}

// SummaryStats resume uma tabela (possivelmente filtrada)
type SummaryStats struct {
	Rows             int  `json:"rows"`
	TotalInvestment  Stat `json:"total_investment"`
	TotalConversions Stat `json:"total_conversions"`
	AverageCTR       Stat `json:"average_ctr"`
	AverageROAS      Stat `json:"average_roas"`
}

// AnalysisResponse é o resultado da aba de análise: linhas filtradas e resumo
type AnalysisResponse struct {
	Filters CampaignFilters `json:"filters"`
	Table   CampaignTable   `json:"table"`
	Summary SummaryStats    `json:"summary"`
}

// CorrelationMatrix é a matriz de correlação de Pearson entre colunas numéricas.
// Values[i][j] é N/A quando a correlação não é definida (coluna constante).
type CorrelationMatrix struct {
	Columns []string   `json:"columns"`
	Values  [][]Number `json:"values"`
}

// ColumnStats são as estatísticas descritivas de uma coluna numérica
type ColumnStats struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Mean   Number `json:"mean"`
	Std    Number `json:"std"`
	Min    Number `json:"min"`
	P25    Number `json:"p25"`
	Median Number `json:"p50"`
	P75    Number `json:"p75"`
	Max    Number `json:"max"`
}

// DescriptiveStats agrupa as estatísticas de todas as colunas numéricas
type DescriptiveStats struct {
	Columns []ColumnStats `json:"columns"`
}

// DashboardColumns são as opções de eixo e de cor do painel interativo
type DashboardColumns struct {
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
}

// ScatterPoint é um ponto do gráfico de dispersão livre
type ScatterPoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group,omitempty"`
}

// ScatterSeries é o conjunto de pontos para os eixos escolhidos
type ScatterSeries struct {
	X       string         `json:"x"`
	Y       string         `json:"y"`
	ColorBy string         `json:"color_by,omitempty"`
	Points  []ScatterPoint `json:"points"`
}
