package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
)

// ExpenseCategory é o conjunto fechado de categorias de despesa.
// Modelado como enum nomeado (não texto livre) para manter o agrupamento
// exato nos relatórios.
type ExpenseCategory string

const (
	ExpenseOperational    ExpenseCategory = "operacional"
	ExpenseMarketing      ExpenseCategory = "marketing"
	ExpenseAdministrative ExpenseCategory = "administrativo"
	ExpenseTechnology     ExpenseCategory = "tecnologia"
	ExpenseHumanResources ExpenseCategory = "recursos_humanos"
	ExpenseFinancial      ExpenseCategory = "financeiro"
	ExpenseLegal          ExpenseCategory = "juridico"
	ExpenseInfrastructure ExpenseCategory = "infraestrutura"
	ExpenseOther          ExpenseCategory = "outros"
)

var expenseCategoryLabels = map[ExpenseCategory]string{
	ExpenseOperational:    "Operacional",
	ExpenseMarketing:      "Marketing",
	ExpenseAdministrative: "Administrativo",
	ExpenseTechnology:     "Tecnologia",
	ExpenseHumanResources: "Recursos Humanos",
	ExpenseFinancial:      "Financeiro",
	ExpenseLegal:          "Jurídico",
	ExpenseInfrastructure: "Infraestrutura",
	ExpenseOther:          "Outros",
}

// ExpenseCategories devolve todas as categorias válidas, em ordem estável.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseOperational, ExpenseMarketing, ExpenseAdministrative,
		ExpenseTechnology, ExpenseHumanResources, ExpenseFinancial,
		ExpenseLegal, ExpenseInfrastructure, ExpenseOther,
	}
}

// Valid informa se a categoria pertence ao conjunto fechado.
func (c ExpenseCategory) Valid() bool {
	_, ok := expenseCategoryLabels[c]
	return ok
}

// Label devolve o nome de exibição da categoria.
func (c ExpenseCategory) Label() string {
	if label, ok := expenseCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Status de pagamento derivado (nunca armazenado).
const (
	ExpenseStatusPaid    = "Pago"
	ExpenseStatusOverdue = "Vencido"
	ExpenseStatusPending = "Pendente"
)

// Expense registra uma despesa do negócio.
type Expense struct {
	ID          string
	Description string
	Category    ExpenseCategory
	Value       decimal.Decimal // > 0
	IncurredAt  time.Time       // data/hora da despesa, definida na criação
	DueDate     *time.Time      // vencimento opcional (somente data)
	Paid        bool
	PaidAt      *time.Time // obrigatório quando Paid, proibido quando não
	Recurring   bool
	Notes       string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status deriva o estado de pagamento para exibição:
// "Pago" se paga; senão "Vencido" se o vencimento já passou; senão "Pendente".
func (e *Expense) Status(now time.Time) string {
	if e.Paid {
		return ExpenseStatusPaid
	}
	if e.DueDate != nil && e.DueDate.Before(truncateToDay(now)) {
		return ExpenseStatusOverdue
	}
	return ExpenseStatusPending
}

// Validate aplica os invariantes de gravação:
//   - pago sem data de pagamento → carimba now (conveniência do fluxo original);
//   - não pago com data de pagamento → falha de validação.
//
// Deve ser chamado antes de qualquer persistência.
func (e *Expense) Validate(now time.Time) error {
	if e.Paid && e.PaidAt == nil {
		t := now
		e.PaidAt = &t
	}
	if !e.Paid && e.PaidAt != nil {
		return domain.NewFieldError("paid_at", "não é possível ter data de pagamento sem marcar como pago")
	}
	return nil
}

// MarkPaid marca a despesa como paga, carimbando o momento do pagamento.
func (e *Expense) MarkPaid(now time.Time) {
	e.Paid = true
	t := now
	e.PaidAt = &t
}

// MarkPending reverte a despesa para pendente, limpando a data de pagamento.
// Caminho de reversão usado pela ação administrativa em lote.
func (e *Expense) MarkPending() {
	e.Paid = false
	e.PaidAt = nil
}

// truncateToDay zera a parte de hora, preservando o fuso.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
