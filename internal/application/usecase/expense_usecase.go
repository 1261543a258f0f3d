package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

// ExpenseUseCase casos de uso do ciclo de vida de despesas.
// O invariante pago⇔data-de-pagamento é aplicado em toda gravação.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
	now  func() time.Time
}

// NewExpenseUseCase constrói o caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, now: time.Now}
}

// Create registra uma despesa pertencente ao usuário autenticado.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Description == "" {
		return nil, domain.NewFieldError("description", "a descrição é obrigatória")
	}
	if !in.Value.GreaterThan(decimal.Zero) {
		return nil, domain.NewFieldError("value", "o valor deve ser maior que zero")
	}
	category := entity.ExpenseCategory(in.Category)
	if in.Category == "" {
		category = entity.ExpenseOperational
	}
	if !category.Valid() {
		return nil, domain.NewFieldError("category", "categoria de despesa desconhecida")
	}
	now := uc.now().UTC()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Description: in.Description,
		Category:    category,
		Value:       in.Value,
		IncurredAt:  now,
		DueDate:     in.DueDate,
		Paid:        in.Paid,
		Recurring:   in.Recurring,
		Notes:       in.Notes,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := expense.Validate(now); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return uc.toExpenseResponse(expense), nil
}

// GetByID obtém uma despesa por ID.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	return uc.toExpenseResponse(expense), nil
}

// Update atualiza uma despesa, reaplicando o invariante de pagamento.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, domain.NewFieldError("description", "a descrição é obrigatória")
		}
		expense.Description = *in.Description
	}
	if in.Category != nil {
		category := entity.ExpenseCategory(*in.Category)
		if !category.Valid() {
			return nil, domain.NewFieldError("category", "categoria de despesa desconhecida")
		}
		expense.Category = category
	}
	if in.Value != nil {
		if !in.Value.GreaterThan(decimal.Zero) {
			return nil, domain.NewFieldError("value", "o valor deve ser maior que zero")
		}
		expense.Value = *in.Value
	}
	if in.ClearDueDate {
		expense.DueDate = nil
	} else if in.DueDate != nil {
		expense.DueDate = in.DueDate
	}
	if in.Paid != nil && *in.Paid != expense.Paid {
		if *in.Paid {
			expense.MarkPaid(uc.now().UTC())
		} else {
			expense.MarkPending()
		}
	}
	if in.Recurring != nil {
		expense.Recurring = *in.Recurring
	}
	if in.Notes != nil {
		expense.Notes = *in.Notes
	}
	now := uc.now().UTC()
	if err := expense.Validate(now); err != nil {
		return nil, err
	}
	expense.UpdatedAt = now
	if err := uc.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return uc.toExpenseResponse(expense), nil
}

// List lista despesas com filtros e totais do conjunto filtrado.
func (uc *ExpenseUseCase) List(ctx context.Context, filter repository.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	filter.Now = uc.now()
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	totals, err := uc.repo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *uc.toExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Totals: dto.ExpenseTotalsResponse{
			Count:   totals.Count,
			Total:   totals.Total,
			Paid:    totals.Paid,
			Pending: totals.Pending,
		},
		Page: dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// MarkPaid marca a despesa como paga, carimbando o momento do pagamento.
func (uc *ExpenseUseCase) MarkPaid(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	now := uc.now().UTC()
	expense.MarkPaid(now)
	expense.UpdatedAt = now
	if err := uc.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return uc.toExpenseResponse(expense), nil
}

// MarkPending reverte em lote despesas pagas para pendentes (ação administrativa).
func (uc *ExpenseUseCase) MarkPending(ctx context.Context, in dto.MarkPendingRequest) (*dto.MarkPendingResponse, error) {
	if len(in.IDs) == 0 {
		return nil, domain.NewFieldError("ids", "informe ao menos uma despesa")
	}
	reverted, err := uc.repo.MarkPending(ctx, in.IDs)
	if err != nil {
		return nil, err
	}
	return &dto.MarkPendingResponse{Reverted: reverted}, nil
}

// Delete remove uma despesa.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ExpenseUseCase) toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Category:      string(e.Category),
		CategoryLabel: e.Category.Label(),
		Value:         e.Value,
		IncurredAt:    e.IncurredAt,
		DueDate:       e.DueDate,
		Paid:          e.Paid,
		PaidAt:        e.PaidAt,
		Recurring:     e.Recurring,
		Status:        e.Status(uc.now()),
		Notes:         e.Notes,
		UserID:        e.UserID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
