package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/charting"
	"github.com/vfg2006/marketing-analytics-api/infrastructure/spreadsheet"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/connecting"
	"github.com/vfg2006/marketing-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-analytics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON responde com o corpo serializado em JSON
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao codificar resposta")
	}
}

// errorMapping associa erros dos serviços aos códigos da API
var errorMapping = []struct {
	target error
	code   string
}{
	{spreadsheet.ErrUnsupportedFormat, apiErrors.ErrUnsupportedFile},
	{spreadsheet.ErrMalformedFile, apiErrors.ErrMalformedFile},
	{analyzing.ErrInsufficientData, apiErrors.ErrInsufficientData},
	{analyzing.ErrMissingColumns, apiErrors.ErrMissingColumns},
	{analyzing.ErrUnknownColumn, apiErrors.ErrUnknownColumn},
	{charting.ErrNothingToPlot, apiErrors.ErrNothingToPlot},
	{campaigning.ErrInvalidTable, apiErrors.ErrInvalidTable},
	{campaigning.ErrUploadNoFilename, apiErrors.ErrMissingRequiredData},
	{campaigning.ErrActivityLogDisabled, apiErrors.ErrActivityLogDisabled},
	{connecting.ErrMissingCredentials, apiErrors.ErrMissingCredentials},
	{connecting.ErrUnknownPlatform, apiErrors.ErrUnknownPlatform},
}

// writeServiceError traduz o erro para o código da API e registra o log no nível adequado
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	logger := log.ForContext(r.Context()).WithError(err)

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		logger.Warn("Arquivo acima do limite de upload")
		apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo acima do limite de upload", map[string]int64{"limit_bytes": maxBytesErr.Limit})
		return
	}

	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			logger.Warn(fallbackMessage)
			apiErr := apiErrors.FromError(err, m.code)
			apiErrors.WriteError(w, apiErr.Code, apiErr.Message, nil)
			return
		}
	}

	logger.Error(fallbackMessage)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
}
