package spreadsheet

import (
	"errors"
)

// Erros de importação e exportação de planilhas
var (
	// ErrUnsupportedFormat indica extensão de arquivo não suportada
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")
	// ErrMalformedFile indica conteúdo que não pôde ser interpretado como planilha
	ErrMalformedFile = errors.New("arquivo de planilha inválido")
)
