package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-analytics-api/pkg/apiErrors"
)

func ConnectPlatform(connector connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		platform := domain.AdPlatform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))

		var req domain.ConnectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
			return
		}

		response, err := connector.Connect(r.Context(), platform, req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao conectar plataforma")
			return
		}

		writeJSON(w, http.StatusOK, response)
	})
}
