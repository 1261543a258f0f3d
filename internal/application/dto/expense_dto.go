package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar uma despesa.
type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=200"`
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
	DueDate     *time.Time      `json:"due_date"`
	Paid        bool            `json:"paid"`
	Recurring   bool            `json:"recurring"`
	Notes       string          `json:"notes"`
}

// UpdateExpenseRequest entrada para atualizar uma despesa. Campos nil
// permanecem inalterados; ClearDueDate remove o vencimento (DueDate nil
// sozinho não consegue distinguir "não mexer" de "limpar").
type UpdateExpenseRequest struct {
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Value        *decimal.Decimal `json:"value"`
	DueDate      *time.Time       `json:"due_date"`
	ClearDueDate bool             `json:"clear_due_date"`
	Paid         *bool            `json:"paid"`
	Recurring    *bool            `json:"recurring"`
	Notes        *string          `json:"notes"`
}

// ExpenseResponse saída de uma despesa. Status é derivado, nunca armazenado.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Value         decimal.Decimal `json:"value"`
	IncurredAt    time.Time       `json:"incurred_at"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Paid          bool            `json:"paid"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	Recurring     bool            `json:"recurring"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	UserID        string          `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpenseTotalsResponse agregados do conjunto filtrado.
type ExpenseTotalsResponse struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

// ExpenseListResponse lista paginada de despesas com totais do filtro.
type ExpenseListResponse struct {
	Items  []ExpenseResponse     `json:"items"`
	Totals ExpenseTotalsResponse `json:"totals"`
	Page   PageResponse          `json:"page"`
}

// MarkPendingRequest ação administrativa em lote: reverte despesas pagas
// para pendentes.
type MarkPendingRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// MarkPendingResponse quantas despesas foram revertidas.
type MarkPendingResponse struct {
	Reverted int `json:"reverted"`
}
