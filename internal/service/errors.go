package service

import "errors"

// Domain error kinds. Services wrap these with entity context via fmt.Errorf
// ("%w: …"); handlers map them to HTTP status with errors.Is. Errors are
// always returned to the caller, never logged and swallowed here.
var (
	// ErrEstadoInvalido: the operation is illegal for the entity's current
	// state (abrir um caixa já aberto, pagar um lançamento cancelado…).
	ErrEstadoInvalido = errors.New("estado inválido para a operação")

	// ErrValorInvalido: a positive monetary value was required.
	ErrValorInvalido = errors.New("valor deve ser maior que zero")

	// ErrNaoEncontrado: the referenced entity does not exist.
	ErrNaoEncontrado = errors.New("registro não encontrado")
)
