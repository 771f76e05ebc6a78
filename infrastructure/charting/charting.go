package charting

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
)

// ContentType é o MIME type das imagens geradas
const ContentType = "image/png"

var ErrNothingToPlot = errors.New("não há dados para gerar o gráfico")

const (
	width  = 1024
	height = 512
)

// Paleta em tons pastel, uma cor por série ou grupo
var palette = []drawing.Color{
	drawing.ColorFromHex("66c5cc"),
	drawing.ColorFromHex("f6cf71"),
	drawing.ColorFromHex("f89c74"),
	drawing.ColorFromHex("dcb0f2"),
	drawing.ColorFromHex("87c55f"),
	drawing.ColorFromHex("9eb9f3"),
	drawing.ColorFromHex("fe88b1"),
	drawing.ColorFromHex("c9db74"),
}

func colorAt(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Engagement desenha cliques e conversões lado a lado para cada campanha
func Engagement(w io.Writer, table domain.CampaignTable) error {
	if table.IsEmpty() || !table.HasField(domain.FieldClicks) || !table.HasField(domain.FieldConversions) {
		return ErrNothingToPlot
	}

	bars := make([]chart.Value, 0, 2*table.Len())
	var max float64
	for _, record := range table.Records {
		clicks, _ := record.Clicks.Float()
		conversions, _ := record.Conversions.Float()
		if clicks > max {
			max = clicks
		}
		if conversions > max {
			max = conversions
		}

		bars = append(bars,
			chart.Value{Label: record.Name, Value: clicks, Style: chart.Style{FillColor: colorAt(0), StrokeColor: colorAt(0)}},
			chart.Value{Label: " ", Value: conversions, Style: chart.Style{FillColor: colorAt(1), StrokeColor: colorAt(1)}},
		)
	}
	if max <= 0 {
		return ErrNothingToPlot
	}

	graph := chart.BarChart{
		Title:      "Engajamento por Campanha (Cliques e Conversões)",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      width,
		Height:     height,
		BarWidth:   30,
		BarSpacing: 12,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: max * 1.1}},
		Bars:       bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("erro ao renderizar gráfico de engajamento: %w", err)
	}
	return nil
}

// InvestmentByPlatform desenha a distribuição do investimento por plataforma
func InvestmentByPlatform(w io.Writer, table domain.CampaignTable) error {
	if table.IsEmpty() || !table.HasField(domain.FieldInvestment) || !table.HasField(domain.FieldPlatform) {
		return ErrNothingToPlot
	}

	totals := make(map[string]float64)
	var order []string
	for _, record := range table.Records {
		v, ok := record.Investment.Float()
		if !ok || v <= 0 {
			continue
		}
		if _, seen := totals[record.Platform]; !seen {
			order = append(order, record.Platform)
		}
		totals[record.Platform] += v
	}
	if len(order) == 0 {
		return ErrNothingToPlot
	}

	values := make([]chart.Value, len(order))
	for i, platform := range order {
		label := platform
		if label == "" {
			label = "Sem plataforma"
		}
		values[i] = chart.Value{
			Label: label,
			Value: totals[platform],
			Style: chart.Style{FillColor: colorAt(i)},
		}
	}

	graph := chart.PieChart{
		Title:  "Distribuição de Investimento por Plataforma",
		Width:  height,
		Height: height,
		Values: values,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("erro ao renderizar gráfico de investimento: %w", err)
	}
	return nil
}

// Scatter desenha o gráfico de dispersão com um grupo (cor) por valor de ColorBy
func Scatter(w io.Writer, series domain.ScatterSeries) error {
	if len(series.Points) == 0 {
		return ErrNothingToPlot
	}

	var groups []string
	byGroup := make(map[string]*chart.ContinuousSeries)
	for _, p := range series.Points {
		s, ok := byGroup[p.Group]
		if !ok {
			name := p.Group
			if name == "" {
				name = series.Y
			}
			color := colorAt(len(groups))
			s = &chart.ContinuousSeries{
				Name: name,
				Style: chart.Style{
					StrokeColor: drawing.ColorTransparent,
					DotWidth:    6,
					DotColor:    color,
				},
			}
			byGroup[p.Group] = s
			groups = append(groups, p.Group)
		}
		s.XValues = append(s.XValues, p.X)
		s.YValues = append(s.YValues, p.Y)
	}

	chartSeries := make([]chart.Series, len(groups))
	for i, g := range groups {
		chartSeries[i] = *byGroup[g]
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("Relação entre %s e %s", series.X, series.Y),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20}},
		Width:      width,
		Height:     height,
		XAxis:      chart.XAxis{Name: series.X, Range: axisRange(series.Points, func(p domain.ScatterPoint) float64 { return p.X })},
		YAxis:      chart.YAxis{Name: series.Y, Range: axisRange(series.Points, func(p domain.ScatterPoint) float64 { return p.Y })},
		Series:     chartSeries,
	}
	if series.ColorBy != "" {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("erro ao renderizar gráfico de dispersão: %w", err)
	}
	return nil
}

// axisRange calcula o intervalo do eixo com folga; valores todos iguais ganham
// um intervalo artificial, já que o go-chart não aceita intervalo de tamanho zero
func axisRange(points []domain.ScatterPoint, value func(domain.ScatterPoint) float64) *chart.ContinuousRange {
	min, max := value(points[0]), value(points[0])
	for _, p := range points[1:] {
		v := value(p)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	pad := (max - min) * 0.05
	if pad == 0 {
		pad = 1
		if min != 0 {
			pad = abs(min) * 0.1
		}
	}
	return &chart.ContinuousRange{Min: min - pad, Max: max + pad}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
