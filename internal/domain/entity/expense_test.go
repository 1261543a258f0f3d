package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
)

var baseNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newExpense(paid bool, dueDate *time.Time) *entity.Expense {
	return &entity.Expense{
		ID:          "exp-1",
		Description: "Aluguel do ponto",
		Category:    entity.ExpenseOperational,
		Value:       decimal.RequireFromString("1200.00"),
		IncurredAt:  baseNow,
		DueDate:     dueDate,
		Paid:        paid,
	}
}

func datePtr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// Status — sempre derivado, nunca armazenado
// ──────────────────────────────────────────────────────────────────────────────

func TestStatus_PagaSempreGanha(t *testing.T) {
	// Mesmo com vencimento no passado, paga é paga.
	e := newExpense(true, datePtr(baseNow.AddDate(0, 0, -10)))
	e.PaidAt = datePtr(baseNow)
	assert.Equal(t, entity.ExpenseStatusPaid, e.Status(baseNow))
}

func TestStatus_VencidaQuandoDueDateNoPassado(t *testing.T) {
	e := newExpense(false, datePtr(baseNow.AddDate(0, 0, -1)))
	assert.Equal(t, entity.ExpenseStatusOverdue, e.Status(baseNow))
}

func TestStatus_PendenteQuandoVenceHoje(t *testing.T) {
	// Vencimento hoje (meia-noite) ainda não passou: pendente, não vencida.
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	e := newExpense(false, &today)
	assert.Equal(t, entity.ExpenseStatusPending, e.Status(baseNow))
}

func TestStatus_PendenteSemVencimento(t *testing.T) {
	e := newExpense(false, nil)
	assert.Equal(t, entity.ExpenseStatusPending, e.Status(baseNow))
}

func TestStatus_PendenteComVencimentoFuturo(t *testing.T) {
	e := newExpense(false, datePtr(baseNow.AddDate(0, 0, 5)))
	assert.Equal(t, entity.ExpenseStatusPending, e.Status(baseNow))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante pago ⇔ data de pagamento
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_PagaSemDataCarimbaAgora(t *testing.T) {
	e := newExpense(true, nil)
	require.Nil(t, e.PaidAt)

	require.NoError(t, e.Validate(baseNow))
	require.NotNil(t, e.PaidAt)
	assert.True(t, e.PaidAt.Equal(baseNow))
}

func TestValidate_NaoPagaComDataRejeitada(t *testing.T) {
	e := newExpense(false, nil)
	e.PaidAt = datePtr(baseNow)

	err := e.Validate(baseNow)
	require.Error(t, err)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "paid_at", fieldErr.Field)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidate_PagaComDataPreservada(t *testing.T) {
	paidAt := baseNow.AddDate(0, 0, -3)
	e := newExpense(true, nil)
	e.PaidAt = &paidAt

	require.NoError(t, e.Validate(baseNow))
	assert.True(t, e.PaidAt.Equal(paidAt), "data de pagamento existente não deve ser sobrescrita")
}

func TestMarkPaid_CarimbaDataEStatus(t *testing.T) {
	e := newExpense(false, datePtr(baseNow.AddDate(0, 0, -1)))
	require.Equal(t, entity.ExpenseStatusOverdue, e.Status(baseNow))

	e.MarkPaid(baseNow)
	require.True(t, e.Paid)
	require.NotNil(t, e.PaidAt)
	assert.Equal(t, entity.ExpenseStatusPaid, e.Status(baseNow))
}

func TestMarkPending_LimpaDataDePagamento(t *testing.T) {
	e := newExpense(true, nil)
	e.PaidAt = datePtr(baseNow)

	e.MarkPending()
	assert.False(t, e.Paid)
	assert.Nil(t, e.PaidAt)
	assert.Equal(t, entity.ExpenseStatusPending, e.Status(baseNow))
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorias — conjunto fechado
// ──────────────────────────────────────────────────────────────────────────────

func TestExpenseCategory_ConjuntoFechado(t *testing.T) {
	for _, c := range entity.ExpenseCategories() {
		assert.True(t, c.Valid(), "categoria %q deve ser válida", c)
		assert.NotEmpty(t, c.Label())
	}
	assert.Len(t, entity.ExpenseCategories(), 9)
	assert.False(t, entity.ExpenseCategory("viagens").Valid())
	assert.False(t, entity.ExpenseCategory("").Valid())
}
