package analyzing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

// numericColumn é uma coluna numérica com um valor (possivelmente N/A) por linha
type numericColumn struct {
	header string
	values []domain.Number
}

// numericColumns seleciona as colunas numéricas da tabela, na ordem da tabela:
// campos numéricos conhecidos e colunas extras cujas células preenchidas são todas números.
func numericColumns(table domain.CampaignTable) []numericColumn {
	columns := make([]numericColumn, 0, len(table.Columns))
	for _, c := range table.Columns {
		if !c.IsExtra() {
			if !c.Field.IsNumeric() {
				continue
			}
			values := make([]domain.Number, table.Len())
			for i, r := range table.Records {
				values[i] = r.Number(c.Field)
			}
			columns = append(columns, numericColumn{header: c.Header, values: values})
			continue
		}

		if values, ok := extraAsNumbers(table, c.Header); ok {
			columns = append(columns, numericColumn{header: c.Header, values: values})
		}
	}
	return columns
}

func extraAsNumbers(table domain.CampaignTable, header string) ([]domain.Number, bool) {
	values := make([]domain.Number, table.Len())
	filled := 0
	for i, r := range table.Records {
		raw := strings.TrimSpace(r.Extra[header])
		if raw == "" {
			continue
		}
		n, ok := domain.ParseNumber(raw)
		if !ok {
			return nil, false
		}
		values[i] = n
		filled++
	}
	return values, filled > 0
}

// NumericColumns retorna os cabeçalhos das colunas numéricas
func NumericColumns(table domain.CampaignTable) []string {
	cols := numericColumns(table)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	return headers
}

// CategoricalColumns retorna os cabeçalhos das colunas não numéricas
func CategoricalColumns(table domain.CampaignTable) []string {
	numeric := toSet(NumericColumns(table))
	headers := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		if numeric[c.Header] {
			continue
		}
		headers = append(headers, c.Header)
	}
	return headers
}

// DashboardColumns retorna as opções de eixos e de cor do painel interativo
func DashboardColumns(table domain.CampaignTable) domain.DashboardColumns {
	return domain.DashboardColumns{
		Numeric:     NumericColumns(table),
		Categorical: CategoricalColumns(table),
	}
}

// checkSufficient valida o mínimo para as análises estatísticas:
// pelo menos duas linhas e duas colunas numéricas
func checkSufficient(table domain.CampaignTable, cols []numericColumn) error {
	if table.IsEmpty() {
		return fmt.Errorf("%w: nenhum dado disponível", ErrInsufficientData)
	}
	if table.Len() < 2 {
		return fmt.Errorf("%w: são necessárias pelo menos 2 linhas", ErrInsufficientData)
	}
	if len(cols) < 2 {
		return fmt.Errorf("%w: são necessárias pelo menos 2 colunas numéricas (encontradas %d)", ErrInsufficientData, len(cols))
	}
	return nil
}

// Correlate calcula a matriz de correlação de Pearson entre todas as colunas numéricas,
// usando os pares de valores disponíveis em cada combinação de colunas.
// Exige ao menos duas linhas e duas colunas numéricas não constantes.
func Correlate(table domain.CampaignTable) (domain.CorrelationMatrix, error) {
	cols := numericColumns(table)
	if err := checkSufficient(table, cols); err != nil {
		return domain.CorrelationMatrix{}, err
	}

	varying := 0
	for _, c := range cols {
		if !isConstant(available(c.values)) {
			varying++
		}
	}
	if varying < 2 {
		return domain.CorrelationMatrix{}, fmt.Errorf("%w: são necessárias pelo menos 2 colunas numéricas com valores variados", ErrInsufficientData)
	}

	matrix := domain.CorrelationMatrix{
		Columns: make([]string, len(cols)),
		Values:  make([][]domain.Number, len(cols)),
	}
	for i, a := range cols {
		matrix.Columns[i] = a.header
		matrix.Values[i] = make([]domain.Number, len(cols))
		for j, b := range cols {
			if j < i {
				matrix.Values[i][j] = matrix.Values[j][i]
				continue
			}
			matrix.Values[i][j] = pearson(a.values, b.values)
		}
	}

	return matrix, nil
}

// pearson calcula a correlação sobre as linhas em que os dois valores estão disponíveis
func pearson(a, b []domain.Number) domain.Number {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(b))
	for i := range a {
		if a[i].Valid && b[i].Valid {
			xs = append(xs, a[i].Value)
			ys = append(ys, b[i].Value)
		}
	}

	if len(xs) < 2 || isConstant(xs) || isConstant(ys) {
		return domain.NA
	}

	r := stat.Correlation(xs, ys, nil)
	return domain.NewNumber(math.Max(-1, math.Min(1, r)))
}

// Describe calcula as estatísticas descritivas de cada coluna numérica:
// contagem, média, desvio padrão amostral, mínimo, quartis e máximo
func Describe(table domain.CampaignTable) (domain.DescriptiveStats, error) {
	cols := numericColumns(table)
	if err := checkSufficient(table, cols); err != nil {
		return domain.DescriptiveStats{}, err
	}

	stats := domain.DescriptiveStats{Columns: make([]domain.ColumnStats, 0, len(cols))}
	for _, c := range cols {
		stats.Columns = append(stats.Columns, describeColumn(c))
	}
	return stats, nil
}

func describeColumn(c numericColumn) domain.ColumnStats {
	values := available(c.values)
	cs := domain.ColumnStats{
		Column: c.header,
		Count:  len(values),
	}
	if len(values) == 0 {
		return cs
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	cs.Mean = domain.NewNumber(stat.Mean(values, nil))
	if len(values) > 1 {
		cs.Std = domain.NewNumber(stat.StdDev(values, nil))
	}
	cs.Min = domain.NewNumber(floats.Min(values))
	cs.P25 = domain.NewNumber(quantile(sorted, 0.25))
	cs.Median = domain.NewNumber(quantile(sorted, 0.5))
	cs.P75 = domain.NewNumber(quantile(sorted, 0.75))
	cs.Max = domain.NewNumber(floats.Max(values))
	return cs
}

// quantile interpola linearmente entre as posições mais próximas de uma amostra ordenada
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func available(values []domain.Number) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			out = append(out, v.Value)
		}
	}
	return out
}

func isConstant(values []float64) bool {
	if len(values) < 2 {
		return true
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// Scatter monta os pontos do gráfico de dispersão para os eixos escolhidos.
// x e y devem ser colunas numéricas; colorBy, quando informado, uma coluna não numérica.
// Linhas sem valor em algum dos eixos são ignoradas.
func Scatter(table domain.CampaignTable, x, y, colorBy string) (domain.ScatterSeries, error) {
	cols := numericColumns(table)
	byHeader := make(map[string]numericColumn, len(cols))
	for _, c := range cols {
		byHeader[c.header] = c
	}

	xCol, ok := byHeader[x]
	if !ok {
		return domain.ScatterSeries{}, fmt.Errorf("%w: eixo X %q não é uma coluna numérica", ErrUnknownColumn, x)
	}
	yCol, ok := byHeader[y]
	if !ok {
		return domain.ScatterSeries{}, fmt.Errorf("%w: eixo Y %q não é uma coluna numérica", ErrUnknownColumn, y)
	}

	var colorColumn domain.Column
	if colorBy != "" {
		if _, numeric := byHeader[colorBy]; numeric {
			return domain.ScatterSeries{}, fmt.Errorf("%w: %q é numérica e não pode agrupar cores", ErrUnknownColumn, colorBy)
		}
		colorColumn, ok = table.ColumnByHeader(colorBy)
		if !ok {
			return domain.ScatterSeries{}, fmt.Errorf("%w: %q", ErrUnknownColumn, colorBy)
		}
	}

	series := domain.ScatterSeries{
		X:       x,
		Y:       y,
		ColorBy: colorBy,
		Points:  make([]domain.ScatterPoint, 0, table.Len()),
	}
	for i, r := range table.Records {
		xv, yv := xCol.values[i], yCol.values[i]
		if !xv.Valid || !yv.Valid {
			continue
		}

		point := domain.ScatterPoint{Label: r.Name, X: xv.Value, Y: yv.Value}
		if colorBy != "" {
			point.Group = cellText(r, colorColumn)
		}
		series.Points = append(series.Points, point)
	}

	return series, nil
}

func cellText(r domain.CampaignRecord, c domain.Column) string {
	if c.IsExtra() {
		return r.Extra[c.Header]
	}
	return r.Text(c.Field)
}
