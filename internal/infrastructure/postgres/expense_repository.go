package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementação do porto ExpenseRepository sobre PostgreSQL.
// O status (pago/vencido/pendente) nunca é armazenado; o filtro de status
// reproduz a mesma derivação em SQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository constrói o adaptador de persistência de despesas. Aceita pool ou tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, description, category, value, incurred_at, due_date, paid, paid_at, recurring, notes, user_id, created_at, updated_at`

// Create persiste uma nova despesa.
func (r *ExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, description, category, value, incurred_at, due_date, paid, paid_at, recurring, notes, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		expense.ID, expense.Description, string(expense.Category), expense.Value,
		expense.IncurredAt, expense.DueDate, expense.Paid, expense.PaidAt,
		expense.Recurring, expense.Notes, expense.UserID, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtém uma despesa por ID. Devolve (nil, nil) quando não existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	var e entity.Expense
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Description, &e.Category, &e.Value, &e.IncurredAt, &e.DueDate,
		&e.Paid, &e.PaidAt, &e.Recurring, &e.Notes, &e.UserID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// Update atualiza uma despesa existente.
func (r *ExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	query := `
		UPDATE expenses SET description = $2, category = $3, value = $4, due_date = $5,
			paid = $6, paid_at = $7, recurring = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		expense.ID, expense.Description, string(expense.Category), expense.Value,
		expense.DueDate, expense.Paid, expense.PaidAt, expense.Recurring,
		expense.Notes, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// expenseFilterClause monta o WHERE compartilhado entre List e Totals.
func expenseFilterClause(filter repository.ExpenseFilter) (string, []any) {
	clause := " WHERE TRUE"
	args := []any{}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		clause += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clause += fmt.Sprintf(" AND incurred_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clause += fmt.Sprintf(" AND incurred_at < $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clause += fmt.Sprintf(" AND (description ILIKE $%d OR notes ILIKE $%d)", len(args), len(args))
	}
	// Mesma derivação de status da entidade, em SQL.
	switch filter.Status {
	case repository.ExpenseStatusFilterPaid:
		clause += " AND paid"
	case repository.ExpenseStatusFilterOverdue:
		args = append(args, filter.Now)
		clause += fmt.Sprintf(" AND NOT paid AND due_date IS NOT NULL AND due_date < ($%d)::date", len(args))
	case repository.ExpenseStatusFilterPending:
		args = append(args, filter.Now)
		clause += fmt.Sprintf(" AND NOT paid AND (due_date IS NULL OR due_date >= ($%d)::date)", len(args))
	}
	return clause, args
}

// List lista despesas com filtros e paginação, da mais recente à mais antiga.
func (r *ExpenseRepo) List(ctx context.Context, filter repository.ExpenseFilter) ([]*entity.Expense, error) {
	clause, args := expenseFilterClause(filter)
	query := `SELECT ` + expenseColumns + ` FROM expenses` + clause
	query += " ORDER BY incurred_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Value, &e.IncurredAt,
			&e.DueDate, &e.Paid, &e.PaidAt, &e.Recurring, &e.Notes, &e.UserID,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Totals agrega o conjunto filtrado inteiro: total geral, pago e pendente.
func (r *ExpenseRepo) Totals(ctx context.Context, filter repository.ExpenseFilter) (*repository.ExpenseTotals, error) {
	clause, args := expenseFilterClause(filter)
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(value), 0),
			COALESCE(SUM(value) FILTER (WHERE paid), 0),
			COALESCE(SUM(value) FILTER (WHERE NOT paid), 0)
		FROM expenses` + clause

	var t repository.ExpenseTotals
	err := r.q.QueryRow(ctx, query, args...).Scan(&t.Count, &t.Total, &t.Paid, &t.Pending)
	if err != nil {
		return nil, fmt.Errorf("expense totals: %w", err)
	}
	return &t, nil
}

// Delete remove uma despesa (exclusão física).
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// MarkPending reverte em lote despesas pagas para pendentes, limpando a data
// de pagamento. Despesas já pendentes não contam no retorno.
func (r *ExpenseRepo) MarkPending(ctx context.Context, ids []string) (int, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE expenses SET paid = FALSE, paid_at = NULL, updated_at = now()
		 WHERE id = ANY($1) AND paid`,
		ids,
	)
	if err != nil {
		return 0, fmt.Errorf("mark expenses pending: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}
