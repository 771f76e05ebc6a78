package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/charting"
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
)

func GetDashboardColumns(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, analyzing.DashboardColumns(session.Table()))
	})
}

func GetScatter(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		series, err := scatterFromQuery(r, session.Table())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar gráfico de dispersão")
			return
		}

		writeJSON(w, http.StatusOK, series)
	})
}

func GetScatterPNG(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		series, err := scatterFromQuery(r, session.Table())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar gráfico de dispersão")
			return
		}

		var buf bytes.Buffer
		if err := charting.Scatter(&buf, series); err != nil {
			writeServiceError(w, r, err, "Erro ao gerar gráfico de dispersão")
			return
		}

		writePNG(w, r, &buf)
	})
}

// scatterFromQuery usa as duas primeiras colunas numéricas quando x ou y não são informados
func scatterFromQuery(r *http.Request, table domain.CampaignTable) (domain.ScatterSeries, error) {
	query := r.URL.Query()
	x, y := query.Get("x"), query.Get("y")

	if x == "" || y == "" {
		numeric := analyzing.NumericColumns(table)
		if len(numeric) < 2 {
			return domain.ScatterSeries{}, fmt.Errorf("%w: são necessárias ao menos duas colunas numéricas", analyzing.ErrInsufficientData)
		}
		if x == "" {
			x = numeric[0]
		}
		if y == "" {
			y = numeric[1]
		}
	}

	return analyzing.Scatter(table, x, y, query.Get("color"))
}

func GetCorrelation(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		matrix, err := analyzing.Correlate(session.Table())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular correlação")
			return
		}

		writeJSON(w, http.StatusOK, matrix)
	})
}

func GetDescribe(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := analyzing.Describe(session.Table())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular estatísticas descritivas")
			return
		}

		writeJSON(w, http.StatusOK, stats)
	})
}
