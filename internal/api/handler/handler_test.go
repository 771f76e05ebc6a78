package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/marketing-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-analytics-api/pkg/apiErrors"
)

const testUploadLimit = 1 << 20

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

type fakeCronJob struct {
	available bool
	triggered atomic.Int32
}

func (f *fakeCronJob) Available() bool    { return f.available }
func (f *fakeCronJob) TriggerManualSync() { f.triggered.Add(1) }
func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": f.available}
}

func newTestRouter(session campaigning.Session, jobs CronJobServices) router.Router {
	return router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Campaigns(session, testUploadLimit)...),
		router.WithRoutes(Analysis(session)...),
		router.WithRoutes(Dashboard(session)...),
		router.WithRoutes(Connections(connecting.NewService())...),
		router.WithRoutes(Activity(session)...),
		router.WithRoutes(CronJobs(jobs)...),
	)
}

func do(t *testing.T, h http.Handler, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func multipartFile(t *testing.T, filename string, content []byte) ([]byte, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf.Bytes(), writer.FormDataContentType()
}

func TestHealthcheck(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	rec := do(t, rt, http.MethodGet, "/healthcheck", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[healthcheckResponse](t, rec).Status)
}

func TestGetCampaigns(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	rec := do(t, rt, http.MethodGet, "/v1/campaigns", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	response := decode[CampaignsResponse](t, rec)
	assert.Equal(t, domain.ExampleTable(), response.Table)
	assert.Equal(t, domain.KnownStatuses, response.Editor.Statuses)
}

func TestReplaceCampaigns(t *testing.T) {
	session := campaigning.NewService()
	rt := newTestRouter(session, nil)

	table := domain.ExampleTable()
	table.Records = table.Records[:2]
	table.Records[0].Status = "paused"
	body, err := json.Marshal(table)
	require.NoError(t, err)

	rec := do(t, rt, http.MethodPut, "/v1/campaigns", body, "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Len(t, session.Table().Records, 2)
	assert.Equal(t, domain.StatusPaused, session.Table().Records[0].Status)
}

func TestReplaceCampaigns_InvalidBody(t *testing.T) {
	session := campaigning.NewService()
	rt := newTestRouter(session, nil)

	rec := do(t, rt, http.MethodPut, "/v1/campaigns", []byte("{"), "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decode[apiErrors.APIError](t, rec).Code)
	assert.Equal(t, domain.ExampleTable(), session.Table())
}

func TestReplaceCampaigns_InvalidTable(t *testing.T) {
	session := campaigning.NewService()
	rt := newTestRouter(session, nil)

	table := domain.ExampleTable()
	table.Columns = append(table.Columns, domain.Column{Header: "Campanha"})
	body, err := json.Marshal(table)
	require.NoError(t, err)

	rec := do(t, rt, http.MethodPut, "/v1/campaigns", body, "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidTable, decode[apiErrors.APIError](t, rec).Code)
	assert.Equal(t, domain.ExampleTable(), session.Table())
}

func TestUploadCampaigns_CSV(t *testing.T) {
	session := campaigning.NewService()
	rt := newTestRouter(session, nil)

	content := "Campanha,Investimento,Cliques,Impressões,Conversões,Status,Plataforma,Canal\n" +
		"Páscoa,3000,900,30000,60,Ativa,Google Ads,Search\n"
	body, contentType := multipartFile(t, "campanhas.csv", []byte(content))

	rec := do(t, rt, http.MethodPost, "/v1/campaigns/upload", body, contentType)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	response := decode[CampaignsResponse](t, rec)
	require.Len(t, response.Table.Records, 1)
	assert.Equal(t, "Páscoa", response.Table.Records[0].Name)
	assert.Equal(t, response.Table, session.Table())
}

func TestUploadCampaigns_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		status   int
		code     string
	}{
		{name: "extensão não suportada", filename: "campanhas.pdf", content: []byte("x"), status: http.StatusBadRequest, code: apiErrors.ErrUnsupportedFile},
		{name: "arquivo ilegível", filename: "campanhas.xlsx", content: []byte("não é xlsx"), status: http.StatusBadRequest, code: apiErrors.ErrMalformedFile},
		{name: "acima do limite", filename: "campanhas.csv", content: bytes.Repeat([]byte("a"), testUploadLimit+1), status: http.StatusRequestEntityTooLarge, code: apiErrors.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := campaigning.NewService()
			rt := newTestRouter(session, nil)
			body, contentType := multipartFile(t, tt.filename, tt.content)

			rec := do(t, rt, http.MethodPost, "/v1/campaigns/upload", body, contentType)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode[apiErrors.APIError](t, rec).Code)
			assert.Equal(t, domain.ExampleTable(), session.Table())
		})
	}
}

func TestUploadCampaigns_MissingFile(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("outro", "valor"))
	require.NoError(t, writer.Close())

	rec := do(t, rt, http.MethodPost, "/v1/campaigns/upload", buf.Bytes(), writer.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decode[apiErrors.APIError](t, rec).Code)
}

func TestClearResetAndMetrics(t *testing.T) {
	session := campaigning.NewService()
	rt := newTestRouter(session, nil)

	rec := do(t, rt, http.MethodPost, "/v1/campaigns/clear", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, session.Table().Records)
	assert.Equal(t, domain.DefaultColumns(), session.Table().Columns)

	rec = do(t, rt, http.MethodPost, "/v1/campaigns/reset", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ExampleTable(), session.Table())

	rec = do(t, rt, http.MethodPost, "/v1/campaigns/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	ctr, ok := session.Table().Records[0].CTR.Float()
	require.True(t, ok)
	assert.InDelta(t, 2.4, ctr, 1e-9)
}

func TestRecomputeMetrics_MissingColumns(t *testing.T) {
	session := campaigning.NewService()
	table := domain.CampaignTable{
		Columns: []domain.Column{{Header: "Campanha", Field: domain.FieldName}},
		Records: []domain.CampaignRecord{{Name: "Natal"}},
	}
	_, err := session.Replace(context.Background(), table)
	require.NoError(t, err)
	rt := newTestRouter(session, nil)

	rec := do(t, rt, http.MethodPost, "/v1/campaigns/metrics", nil, "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingColumns, decode[apiErrors.APIError](t, rec).Code)
}

func TestExportCampaigns(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	rec := do(t, rt, http.MethodGet, "/v1/campaigns/export", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "campanhas_marketing.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	assert.Len(t, rows, 6)
	assert.Equal(t, "Campanha", rows[0][0])

	rec = do(t, rt, http.MethodGet, "/v1/campaigns/export?format=csv", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "campanhas_marketing.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Campanha,Investimento"))
}

func TestGetAnalysis(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	tests := []struct {
		name  string
		query string
		rows  int
	}{
		{name: "sem filtros seleciona tudo", query: "", rows: 5},
		{name: "parâmetro repetido", query: "?platform=Google+Ads&platform=Instagram+Ads", rows: 3},
		{name: "valores separados por vírgula", query: "?platform=Google%20Ads,Instagram%20Ads&status=Ativa", rows: 2},
		{name: "parâmetro vazio não seleciona nada", query: "?status=", rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, rt, http.MethodGet, "/v1/analysis"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, rec.Code)

			response := decode[domain.AnalysisResponse](t, rec)
			assert.Equal(t, tt.rows, response.Summary.Rows)
			assert.Len(t, response.Table.Records, tt.rows)
		})
	}
}

func TestGetAnalysis_ValueWithComma(t *testing.T) {
	session := campaigning.NewService()
	_, err := session.Replace(context.Background(), domain.CampaignTable{
		Columns: []domain.Column{
			{Header: "Campanha", Field: domain.FieldName},
			{Header: "Plataforma", Field: domain.FieldPlatform},
		},
		Records: []domain.CampaignRecord{
			{Name: "A", Platform: "Google, Inc."},
			{Name: "B", Platform: "Meta"},
			{Name: "C", Platform: "Google"},
		},
	})
	require.NoError(t, err)
	rt := newTestRouter(session, nil)

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{name: "valor existente com vírgula", query: "?platform=Google,%20Inc.", names: []string{"A"}},
		{name: "lista separada por vírgula", query: "?platform=Meta,Google", names: []string{"B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, rt, http.MethodGet, "/v1/analysis"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, rec.Code)

			response := decode[domain.AnalysisResponse](t, rec)
			names := make([]string, 0, len(response.Table.Records))
			for _, r := range response.Table.Records {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestGetAnalysisOptions(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	rec := do(t, rt, http.MethodGet, "/v1/analysis/options", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	options := decode[domain.FilterOptions](t, rec)
	assert.Equal(t, []string{"Google Ads", "Facebook Ads", "Instagram Ads"}, options.Platforms)
}

func TestGetAnalysisChart(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	for _, chart := range []string{ChartEngagement, ChartEfficiency, ChartInvestmentByPlatform} {
		rec := do(t, rt, http.MethodGet, "/v1/analysis/charts/"+chart, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, chart)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), pngSignature))
	}

	rec := do(t, rt, http.MethodGet, "/v1/analysis/charts/engagement?status=", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apiErrors.ErrNothingToPlot, decode[apiErrors.APIError](t, rec).Code)

	rec = do(t, rt, http.MethodGet, "/v1/analysis/charts/pizza", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAnalysisChart_EfficiencyUsesTableHeaders(t *testing.T) {
	tests := []struct {
		name    string
		columns []domain.Column
		status  int
		errCode string
	}{
		{
			name: "cabeçalhos renomeados",
			columns: []domain.Column{
				{Header: "Gasto", Field: domain.FieldInvestment},
				{Header: "Vendas", Field: domain.FieldConversions},
				{Header: "Rede", Field: domain.FieldPlatform},
			},
			status: http.StatusOK,
		},
		{
			name: "sem coluna de plataforma",
			columns: []domain.Column{
				{Header: "Gasto", Field: domain.FieldInvestment},
				{Header: "Vendas", Field: domain.FieldConversions},
			},
			status: http.StatusOK,
		},
		{
			name:    "sem coluna de conversões",
			columns: []domain.Column{{Header: "Gasto", Field: domain.FieldInvestment}},
			status:  http.StatusUnprocessableEntity,
			errCode: apiErrors.ErrNothingToPlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := campaigning.NewService()
			_, err := session.Replace(context.Background(), domain.CampaignTable{
				Columns: tt.columns,
				Records: []domain.CampaignRecord{
					{Investment: domain.NewNumber(1000), Conversions: domain.NewNumber(10), Platform: "Google Ads"},
					{Investment: domain.NewNumber(3000), Conversions: domain.NewNumber(45), Platform: "Meta Ads"},
				},
			})
			require.NoError(t, err)
			rt := newTestRouter(session, nil)

			rec := do(t, rt, http.MethodGet, "/v1/analysis/charts/"+ChartEfficiency, nil, "")
			require.Equal(t, tt.status, rec.Code)
			if tt.errCode != "" {
				assert.Equal(t, tt.errCode, decode[apiErrors.APIError](t, rec).Code)
				return
			}
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), pngSignature))
		})
	}
}

func TestDashboard(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	rec := do(t, rt, http.MethodGet, "/v1/dashboard/columns", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	columns := decode[domain.DashboardColumns](t, rec)
	assert.Contains(t, columns.Numeric, "Investimento")
	assert.Contains(t, columns.Categorical, "Plataforma")

	rec = do(t, rt, http.MethodGet, "/v1/dashboard/scatter", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	series := decode[domain.ScatterSeries](t, rec)
	assert.Equal(t, columns.Numeric[0], series.X)
	assert.Equal(t, columns.Numeric[1], series.Y)
	assert.Len(t, series.Points, 5)

	rec = do(t, rt, http.MethodGet, "/v1/dashboard/scatter.png?x=Investimento&y=Convers%C3%B5es&color=Plataforma", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), pngSignature))

	rec = do(t, rt, http.MethodGet, "/v1/dashboard/scatter?x=Status&y=Cliques", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apiErrors.ErrUnknownColumn, decode[apiErrors.APIError](t, rec).Code)

	rec = do(t, rt, http.MethodGet, "/v1/dashboard/correlation", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	matrix := decode[domain.CorrelationMatrix](t, rec)
	assert.Len(t, matrix.Values, len(matrix.Columns))

	rec = do(t, rt, http.MethodGet, "/v1/dashboard/describe", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[domain.DescriptiveStats](t, rec)
	assert.NotEmpty(t, stats.Columns)
}

func TestDashboard_InsufficientData(t *testing.T) {
	session := campaigning.NewService()
	session.Clear(context.Background())
	rt := newTestRouter(session, nil)

	for _, path := range []string{"/v1/dashboard/correlation", "/v1/dashboard/describe"} {
		rec := do(t, rt, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
		assert.Equal(t, apiErrors.ErrInsufficientData, decode[apiErrors.APIError](t, rec).Code)
	}
}

func TestConnectPlatform(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	rec := do(t, rt, http.MethodPost, "/v1/connections/google-ads", []byte(`{"client_id":"123","access_token":"abc"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	response := decode[domain.ConnectionResponse](t, rec)
	assert.True(t, response.Connected)
	assert.Equal(t, "Conexão estabelecida com Google Ads!", response.Message)

	rec = do(t, rt, http.MethodPost, "/v1/connections/meta-ads", []byte(`{"client_id":"123"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingCredentials, decode[apiErrors.APIError](t, rec).Code)

	rec = do(t, rt, http.MethodPost, "/v1/connections/tiktok", []byte(`{"client_id":"1","access_token":"2"}`), "application/json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrUnknownPlatform, decode[apiErrors.APIError](t, rec).Code)
}

func TestGetActivity_Disabled(t *testing.T) {
	rt := newTestRouter(campaigning.NewService(), nil)

	rec := do(t, rt, http.MethodGet, "/v1/activity", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrActivityLogDisabled, decode[apiErrors.APIError](t, rec).Code)

	rec = do(t, rt, http.MethodGet, "/v1/activity?limit=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetActivity_Enabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockActivityRepository(ctrl)
	rt := newTestRouter(campaigning.NewService().WithActivityLog(repo), nil)

	entries := []*domain.ActivityEntry{{ID: "abc", Action: domain.ActivityUpload, Rows: 5, Columns: 11}}
	repo.EXPECT().List(gomock.Any(), 10).Return(entries, nil)

	rec := do(t, rt, http.MethodGet, "/v1/activity?limit=10", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	response := decode[map[string][]domain.ActivityEntry](t, rec)
	require.Len(t, response["entries"], 1)
	assert.Equal(t, domain.ActivityUpload, response["entries"][0].Action)

	repo.EXPECT().List(gomock.Any(), 50).Return(nil, errors.New("conexão recusada"))

	rec = do(t, rt, http.MethodGet, "/v1/activity", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, decode[apiErrors.APIError](t, rec).Code)
}

func TestCronJobs(t *testing.T) {
	retention := &fakeCronJob{available: true}
	rt := newTestRouter(campaigning.NewService(), CronJobServices{CronJobTypeActivityRetention: retention})

	rec := do(t, rt, http.MethodPost, "/v1/cron/activity-retention/run", nil, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = do(t, rt, http.MethodPost, "/v1/cron/all/run", nil, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, int32(2), retention.triggered.Load())

	rec = do(t, rt, http.MethodPost, "/v1/cron/outra/run", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, rt, http.MethodGet, "/v1/cron/status", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[map[string]map[string]any](t, rec)
	assert.Equal(t, true, status[CronJobTypeActivityRetention]["sync_enabled"])
}

func TestCronJobs_Unavailable(t *testing.T) {
	retention := &fakeCronJob{}
	rt := newTestRouter(campaigning.NewService(), CronJobServices{CronJobTypeActivityRetention: retention})

	rec := do(t, rt, http.MethodPost, "/v1/cron/activity-retention/run", nil, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Zero(t, retention.triggered.Load())
}
