package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/marketing-analytics-api/infrastructure/spreadsheet"
	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/internal/usecases/campaigning"
	"github.com/vfg2006/marketing-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-analytics-api/pkg/log"
)

// Memória usada pelo multipart antes de recorrer a arquivos temporários
const multipartMemory = 8 << 20

// EditorOptions são as opções oferecidas nas colunas de seleção do editor
type EditorOptions struct {
	Statuses  []domain.Status `json:"status"`
	Platforms []string        `json:"platform"`
	Channels  []string        `json:"channel"`
}

type CampaignsResponse struct {
	Table  domain.CampaignTable `json:"table"`
	Editor EditorOptions        `json:"editor"`
}

func newCampaignsResponse(table domain.CampaignTable) CampaignsResponse {
	return CampaignsResponse{
		Table: table,
		Editor: EditorOptions{
			Statuses:  domain.KnownStatuses,
			Platforms: domain.Platforms,
			Channels:  domain.Channels,
		},
	}
}

func GetCampaigns(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newCampaignsResponse(session.Table()))
	})
}

func ReplaceCampaigns(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var table domain.CampaignTable
		if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeServiceError(w, r, err, "Planilha editada acima do limite")
				return
			}
			log.ForContext(r.Context()).WithError(err).Warn("Corpo da planilha editada inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
			return
		}

		updated, err := session.Replace(r.Context(), table)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao salvar planilha editada")
			return
		}

		writeJSON(w, http.StatusOK, newCampaignsResponse(updated))
	})
}

func UploadCampaigns(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			writeUploadError(w, r, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Envie a planilha no campo 'file'", nil)
			return
		}
		defer file.Close()

		table, err := session.Import(r.Context(), header.Filename, file)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao carregar arquivo")
			return
		}

		writeJSON(w, http.StatusOK, newCampaignsResponse(table))
	})
}

// writeUploadError diferencia arquivo grande demais de formulário malformado
func writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeServiceError(w, r, err, "Arquivo acima do limite de upload")
		return
	}
	// o multipart nem sempre preserva o *http.MaxBytesError na cadeia
	if strings.Contains(err.Error(), "request body too large") {
		log.ForContext(r.Context()).WithError(err).Warn("Arquivo acima do limite de upload")
		apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo acima do limite de upload", nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Warn("Formulário de upload inválido")
	apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário de upload inválido", err.Error())
}

func ResetCampaigns(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newCampaignsResponse(session.Reset(r.Context())))
	})
}

func ClearCampaigns(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newCampaignsResponse(session.Clear(r.Context())))
	})
}

func RecomputeMetrics(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table, err := session.RecomputeMetrics(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar métricas")
			return
		}

		writeJSON(w, http.StatusOK, newCampaignsResponse(table))
	})
}

// ExportCampaigns entrega a planilha como xlsx (padrão) ou csv (?format=csv)
func ExportCampaigns(session campaigning.Campaigner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filename := spreadsheet.ExportFileName
		contentType := spreadsheet.XLSXContentType
		if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
			filename = strings.TrimSuffix(filename, ".xlsx") + ".csv"
			contentType = "text/csv; charset=utf-8"
		}

		var buf bytes.Buffer
		if err := session.Export(r.Context(), filename, &buf); err != nil {
			writeServiceError(w, r, err, "Erro ao exportar planilha")
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar planilha exportada")
		}
	})
}
