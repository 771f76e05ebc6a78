package connecting

import "errors"

var (
	ErrMissingCredentials = errors.New("preencha todos os campos")
	ErrUnknownPlatform    = errors.New("plataforma de anúncios desconhecida")
	ErrGenerateReference  = errors.New("erro ao gerar referência da conexão")
)
