package campaigning

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação da planilha editada
	ErrInvalidTable     = errors.New("planilha inválida")
	ErrDuplicateHeader  = errors.New("cabeçalho repetido")
	ErrDuplicateField   = errors.New("campo associado a mais de uma coluna")
	ErrUnknownField     = errors.New("campo desconhecido")
	ErrMissingHeader    = errors.New("coluna sem cabeçalho")
	ErrColumnsRequired  = errors.New("a planilha precisa de ao menos uma coluna")
	ErrNegativeValue    = errors.New("valor negativo não permitido")
	ErrUploadNoFilename = errors.New("nome do arquivo é obrigatório")

	// Histórico de atividades
	ErrActivityLogDisabled = errors.New("histórico de atividades desabilitado")
)

// TableError é um erro de validação com a coluna envolvida
type TableError struct {
	Err    error  // Erro base
	Column string // Cabeçalho da coluna envolvida (quando aplicável)
}

// Error implementa a interface error
func (e *TableError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (coluna %q)", ErrInvalidTable.Error(), e.Err.Error(), e.Column)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTable.Error(), e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *TableError) Unwrap() []error {
	return []error{ErrInvalidTable, e.Err}
}

func newTableError(err error, column string) *TableError {
	return &TableError{Err: err, Column: column}
}
