package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/repository"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/marketing-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-analytics-api/pkg/log"
)

// GetActivity lista as operações mais recentes sobre a planilha
func GetActivity(lister campaigning.ActivityLister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := repository.DefaultActivityLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro 'limit' deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		entries, err := lister.Activity(r.Context(), limit)
		if errors.Is(err, campaigning.ErrActivityLogDisabled) {
			writeServiceError(w, r, err, "Histórico de atividades desabilitado")
			return
		}
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar histórico de atividades")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar histórico de atividades", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	})
}
