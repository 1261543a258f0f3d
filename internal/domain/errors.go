package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
)

// FieldError é um erro de validação que identifica o campo ofensor.
// Nunca coagimos valores inválidos silenciosamente: a operação falha e o
// chamador recebe o nome do campo.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, domain.ErrInvalidInput) para qualquer FieldError.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewFieldError constrói um erro de validação de campo.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// CategoryInUseError sinaliza que a categoria não pode ser excluída porque há
// produtos ativos vinculados. Carrega a contagem para a mensagem ao usuário.
type CategoryInUseError struct {
	Count int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("categoria em uso por %d produto(s) ativo(s)", e.Count)
}

// Is permite errors.Is(err, domain.ErrConflict).
func (e *CategoryInUseError) Is(target error) bool {
	return target == ErrConflict
}
