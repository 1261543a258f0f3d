package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/application/usecase"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

type fakeExpenseRepo struct {
	expenses map[string]*entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: map[string]*entity.Expense{}}
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) List(_ context.Context, _ repository.ExpenseFilter) ([]*entity.Expense, error) {
	out := make([]*entity.Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeExpenseRepo) Totals(_ context.Context, _ repository.ExpenseFilter) (*repository.ExpenseTotals, error) {
	totals := &repository.ExpenseTotals{
		Total:   decimal.Zero,
		Paid:    decimal.Zero,
		Pending: decimal.Zero,
	}
	for _, e := range r.expenses {
		totals.Count++
		totals.Total = totals.Total.Add(e.Value)
		if e.Paid {
			totals.Paid = totals.Paid.Add(e.Value)
		} else {
			totals.Pending = totals.Pending.Add(e.Value)
		}
	}
	return totals, nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id string) error {
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) MarkPending(_ context.Context, ids []string) (int, error) {
	reverted := 0
	for _, id := range ids {
		if e, ok := r.expenses[id]; ok && e.Paid {
			e.MarkPending()
			reverted++
		}
	}
	return reverted, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — categoria padrão, invariante de pagamento
// ──────────────────────────────────────────────────────────────────────────────

func TestExpenseCreate_CategoriaPadraoOperacional(t *testing.T) {
	uc := usecase.NewExpenseUseCase(newFakeExpenseRepo())

	out, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Aluguel",
		Value:       decimal.RequireFromString("1200.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ExpenseOperational), out.Category)
	assert.Equal(t, "Operacional", out.CategoryLabel)
	assert.Equal(t, entity.ExpenseStatusPending, out.Status)
}

func TestExpenseCreate_CategoriaDesconhecidaRejeitada(t *testing.T) {
	uc := usecase.NewExpenseUseCase(newFakeExpenseRepo())

	_, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Passagens",
		Category:    "viagens",
		Value:       decimal.RequireFromString("300.00"),
	})
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "category", fieldErr.Field)
}

func TestExpenseCreate_ValorNaoPositivoRejeitado(t *testing.T) {
	uc := usecase.NewExpenseUseCase(newFakeExpenseRepo())

	_, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Aluguel",
		Value:       decimal.Zero,
	})
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "value", fieldErr.Field)
}

func TestExpenseCreate_PagaCarimbaPaidAt(t *testing.T) {
	uc := usecase.NewExpenseUseCase(newFakeExpenseRepo())

	out, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Hospedagem do site",
		Category:    string(entity.ExpenseTechnology),
		Value:       decimal.RequireFromString("49.90"),
		Paid:        true,
	})
	require.NoError(t, err)
	assert.True(t, out.Paid)
	require.NotNil(t, out.PaidAt, "criar já paga deve carimbar a data de pagamento")
	assert.Equal(t, entity.ExpenseStatusPaid, out.Status)
}

func TestExpenseCreate_PreservaQuatroCasasDecimais(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := usecase.NewExpenseUseCase(repo)

	created, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Combustível rateado",
		Value:       decimal.RequireFromString("10.1234"),
	})
	require.NoError(t, err)

	// O valor volta do armazenamento exatamente como entrou; nenhum
	// arredondamento acontece antes da exibição.
	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.Value.Equal(decimal.RequireFromString("10.1234")), "valor persistido: %s", got.Value)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / MarkPaid / MarkPending — transições de pagamento
// ──────────────────────────────────────────────────────────────────────────────

func TestExpenseUpdate_MarcarPagaViaUpdate(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := usecase.NewExpenseUseCase(repo)
	created, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Energia",
		Value:       decimal.RequireFromString("380.00"),
	})
	require.NoError(t, err)

	paid := true
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateExpenseRequest{Paid: &paid})
	require.NoError(t, err)
	assert.True(t, out.Paid)
	assert.NotNil(t, out.PaidAt)
}

func TestExpenseUpdate_LimparVencimento(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := usecase.NewExpenseUseCase(repo)

	due := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	created, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Internet",
		Value:       decimal.RequireFromString("120.00"),
		DueDate:     &due,
	})
	require.NoError(t, err)
	require.NotNil(t, created.DueDate)

	// DueDate nil sozinho significa "não mexer": o vencimento permanece.
	notes := "plano renegociado"
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateExpenseRequest{Notes: &notes})
	require.NoError(t, err)
	require.NotNil(t, out.DueDate)

	// ClearDueDate remove o vencimento; sem vencimento a despesa volta a
	// ser apenas pendente, nunca vencida.
	out, err = uc.Update(context.Background(), created.ID, dto.UpdateExpenseRequest{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, out.DueDate)
	assert.Equal(t, entity.ExpenseStatusPending, out.Status)
}

func TestExpenseMarkPaid_Direto(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := usecase.NewExpenseUseCase(repo)
	created, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Energia",
		Value:       decimal.RequireFromString("380.00"),
	})
	require.NoError(t, err)

	out, err := uc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, out.Paid)
	require.NotNil(t, out.PaidAt)
	assert.Equal(t, entity.ExpenseStatusPaid, out.Status)
}

func TestExpenseMarkPending_LoteRevertemSoPagas(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := usecase.NewExpenseUseCase(repo)

	paid, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Energia", Value: decimal.RequireFromString("380.00"), Paid: true,
	})
	require.NoError(t, err)
	pending, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Água", Value: decimal.RequireFromString("90.00"),
	})
	require.NoError(t, err)

	out, err := uc.MarkPending(context.Background(), dto.MarkPendingRequest{
		IDs: []string{paid.ID, pending.ID, "nao-existe"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Reverted, "só a despesa paga conta como revertida")

	got, err := uc.GetByID(context.Background(), paid.ID)
	require.NoError(t, err)
	assert.False(t, got.Paid)
	assert.Nil(t, got.PaidAt)
}

func TestExpenseMarkPending_SemIDs(t *testing.T) {
	uc := usecase.NewExpenseUseCase(newFakeExpenseRepo())
	_, err := uc.MarkPending(context.Background(), dto.MarkPendingRequest{})
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "ids", fieldErr.Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// List — totais do conjunto filtrado e status derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestExpenseList_TotaisPagoPendente(t *testing.T) {
	repo := newFakeExpenseRepo()
	uc := usecase.NewExpenseUseCase(repo)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Energia", Value: decimal.RequireFromString("380.00"), Paid: true,
	})
	require.NoError(t, err)
	due := time.Now().AddDate(0, 0, 7)
	_, err = uc.Create(context.Background(), "user-1", dto.CreateExpenseRequest{
		Description: "Água", Value: decimal.RequireFromString("90.00"), DueDate: &due,
	})
	require.NoError(t, err)

	out, err := uc.List(context.Background(), repository.ExpenseFilter{Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Totals.Count)
	assert.True(t, out.Totals.Total.Equal(decimal.RequireFromString("470.00")))
	assert.True(t, out.Totals.Paid.Equal(decimal.RequireFromString("380.00")))
	assert.True(t, out.Totals.Pending.Equal(decimal.RequireFromString("90.00")))
}
