package aprovacao

import "errors"

var (
	// ErrEstadoInvalido indica uma transição fora do workflow.
	ErrEstadoInvalido = errors.New("transição de status inválida")

	// ErrMotivoObrigatorio indica rejeição sem motivo informado.
	ErrMotivoObrigatorio = errors.New("motivo é obrigatório para rejeição")

	// ErrPermissaoNegada indica que o perfil do usuário não autoriza a ação.
	ErrPermissaoNegada = errors.New("perfil sem permissão para esta ação")
)
