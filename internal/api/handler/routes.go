package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-analytics-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Campaigns são as rotas da planilha de campanhas. Rotas que recebem corpo ficam
// limitadas a uploadMaxBytes.
func Campaigns(session campaigning.Campaigner, uploadMaxBytes int64) []router.Route {
	bodyLimit := []func(http.Handler) http.Handler{middleware.BodyLimit(uploadMaxBytes)}

	return []router.Route{
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodGet,
			Handler: GetCampaigns(session),
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPut,
			Handler:     ReplaceCampaigns(session),
			Middlewares: bodyLimit,
		},
		{
			Path:        "/v1/campaigns/upload",
			Method:      http.MethodPost,
			Handler:     UploadCampaigns(session),
			Middlewares: bodyLimit,
		},
		{
			Path:    "/v1/campaigns/reset",
			Method:  http.MethodPost,
			Handler: ResetCampaigns(session),
		},
		{
			Path:    "/v1/campaigns/clear",
			Method:  http.MethodPost,
			Handler: ClearCampaigns(session),
		},
		{
			Path:    "/v1/campaigns/metrics",
			Method:  http.MethodPost,
			Handler: RecomputeMetrics(session),
		},
		{
			Path:    "/v1/campaigns/export",
			Method:  http.MethodGet,
			Handler: ExportCampaigns(session),
		},
	}
}

func Analysis(session campaigning.Campaigner) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analysis",
			Method:  http.MethodGet,
			Handler: GetAnalysis(session),
		},
		{
			Path:    "/v1/analysis/options",
			Method:  http.MethodGet,
			Handler: GetAnalysisOptions(session),
		},
		{
			Path:    "/v1/analysis/charts/:chart",
			Method:  http.MethodGet,
			Handler: GetAnalysisChart(session),
		},
	}
}

func Dashboard(session campaigning.Campaigner) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard/columns",
			Method:  http.MethodGet,
			Handler: GetDashboardColumns(session),
		},
		{
			Path:    "/v1/dashboard/scatter",
			Method:  http.MethodGet,
			Handler: GetScatter(session),
		},
		{
			Path:    "/v1/dashboard/scatter.png",
			Method:  http.MethodGet,
			Handler: GetScatterPNG(session),
		},
		{
			Path:    "/v1/dashboard/correlation",
			Method:  http.MethodGet,
			Handler: GetCorrelation(session),
		},
		{
			Path:    "/v1/dashboard/describe",
			Method:  http.MethodGet,
			Handler: GetDescribe(session),
		},
	}
}

func Connections(connector connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/connections/:platform",
			Method:  http.MethodPost,
			Handler: ConnectPlatform(connector),
		},
	}
}

func Activity(lister campaigning.ActivityLister) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/activity",
			Method:  http.MethodGet,
			Handler: GetActivity(lister),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
