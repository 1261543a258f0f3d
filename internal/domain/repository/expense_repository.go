package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
)

// Filtros de status de pagamento na listagem de despesas.
const (
	ExpenseStatusFilterPaid    = "pago"
	ExpenseStatusFilterPending = "pendente"
	ExpenseStatusFilterOverdue = "vencido"
)

// ExpenseFilter filtros de listagem de despesas.
type ExpenseFilter struct {
	Category entity.ExpenseCategory
	Status   string // pago | pendente | vencido (vazio = todos)
	From     *time.Time
	To       *time.Time
	Search   string // busca em descrição/observações
	Limit    int
	Offset   int
	// Now é o instante de referência para o filtro "vencido".
	Now time.Time
}

// ExpenseTotals agregados da listagem de despesas.
type ExpenseTotals struct {
	Count   int
	Total   decimal.Decimal
	Paid    decimal.Decimal
	Pending decimal.Decimal
}

// ExpenseRepository define o porto de persistência para Expense (DIP).
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)
	Totals(ctx context.Context, filter ExpenseFilter) (*ExpenseTotals, error)
	Delete(ctx context.Context, id string) error
	// MarkPending reverte em lote despesas pagas para pendentes,
	// limpando a data de pagamento. Devolve quantas foram revertidas.
	MarkPending(ctx context.Context, ids []string) (int, error)
}
