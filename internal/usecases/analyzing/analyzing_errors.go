package analyzing

import (
	"errors"
)

// Erros do motor de métricas
var (
	// ErrMissingColumns indica que colunas obrigatórias para o cálculo não existem na planilha
	ErrMissingColumns = errors.New("colunas obrigatórias ausentes")
	// ErrInsufficientData indica que não há dados suficientes para a análise pedida
	ErrInsufficientData = errors.New("dados insuficientes para a análise")
	// ErrUnknownColumn indica uma coluna inexistente ou de tipo incompatível
	ErrUnknownColumn = errors.New("coluna desconhecida")
)
