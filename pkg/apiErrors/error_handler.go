package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidTable        = "VAL_004" // Planilha editada inválida

	// Erros de importação de planilhas
	ErrUnsupportedFile = "IMP_001" // Extensão de arquivo não suportada
	ErrMalformedFile   = "IMP_002" // Conteúdo ilegível ou sem cabeçalho
	ErrFileTooLarge    = "IMP_003" // Arquivo acima do limite de upload

	// Avisos de dados insuficientes (nenhum cálculo é feito)
	ErrInsufficientData = "DATA_001" // Dados insuficientes para a análise
	ErrMissingColumns   = "DATA_002" // Colunas obrigatórias ausentes
	ErrUnknownColumn    = "DATA_003" // Coluna inexistente ou de tipo incompatível
	ErrNothingToPlot    = "DATA_004" // Nada a exibir no gráfico

	// Conexões com plataformas de anúncios
	ErrMissingCredentials = "CONN_001" // Campos do formulário não preenchidos
	ErrUnknownPlatform    = "CONN_002" // Plataforma desconhecida

	// Recursos
	ErrNotFound            = "RES_001" // Recurso não encontrado
	ErrActivityLogDisabled = "RES_002" // Histórico de atividades desabilitado

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidTable:        http.StatusBadRequest,
	ErrUnsupportedFile:     http.StatusBadRequest,
	ErrMalformedFile:       http.StatusBadRequest,
	ErrFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrInsufficientData:    http.StatusUnprocessableEntity,
	ErrMissingColumns:      http.StatusUnprocessableEntity,
	ErrUnknownColumn:       http.StatusUnprocessableEntity,
	ErrNothingToPlot:       http.StatusUnprocessableEntity,
	ErrMissingCredentials:  http.StatusBadRequest,
	ErrUnknownPlatform:     http.StatusNotFound,
	ErrNotFound:            http.StatusNotFound,
	ErrActivityLogDisabled: http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrCommunication:       http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
