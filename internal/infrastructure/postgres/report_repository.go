package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas somente leitura para relatórios e dashboards.
// Toda soma acontece no banco (SUM + COALESCE); divisões de margem ficam na
// aplicação para garantir soma-antes-divide.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository constrói o adaptador de relatórios.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// windowClause monta o WHERE das consultas de vendas a partir da janela.
// Pressupõe os aliases s (sales) e p (products).
func windowClause(w repository.ReportWindow) (string, []any) {
	clause := " WHERE TRUE"
	args := []any{}
	if w.From != nil {
		args = append(args, *w.From)
		clause += fmt.Sprintf(" AND s.sold_at >= $%d", len(args))
	}
	if w.To != nil {
		args = append(args, *w.To)
		clause += fmt.Sprintf(" AND s.sold_at < $%d", len(args))
	}
	if w.CategoryID != "" {
		args = append(args, w.CategoryID)
		clause += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	if w.ProductID != "" {
		args = append(args, w.ProductID)
		clause += fmt.Sprintf(" AND s.product_id = $%d", len(args))
	}
	return clause, args
}

// SalesStats devolve os agregados gerais de vendas da janela.
// COALESCE garante zero quando a janela não tem vendas.
func (r *ReportRepo) SalesStats(ctx context.Context, w repository.ReportWindow) (*repository.SalesStats, error) {
	clause, args := windowClause(w)
	query := `
	SELECT
	    COUNT(*)                             AS sale_count,
	    COALESCE(SUM(s.total), 0)            AS revenue,
	    COALESCE(SUM(s.cost_total), 0)       AS cost,
	    COALESCE(SUM(s.profit_total), 0)     AS profit
	FROM sales s
	JOIN products p ON p.id = s.product_id` + clause

	var stats repository.SalesStats
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&stats.Count, &stats.Revenue, &stats.Cost, &stats.Profit)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesStats: %w", err)
	}
	return &stats, nil
}

// SalesByCategory agrupa os agregados de vendas por categoria do produto,
// da maior receita para a menor.
func (r *ReportRepo) SalesByCategory(ctx context.Context, w repository.ReportWindow) ([]repository.CategorySales, error) {
	clause, args := windowClause(w)
	query := `
	SELECT
	    c.id                                 AS category_id,
	    c.name                               AS category_name,
	    COUNT(*)                             AS sale_count,
	    COUNT(DISTINCT s.product_id)         AS product_count,
	    COALESCE(SUM(s.quantity), 0)         AS quantity_sold,
	    COALESCE(SUM(s.total), 0)            AS revenue,
	    COALESCE(SUM(s.cost_total), 0)       AS cost,
	    COALESCE(SUM(s.profit_total), 0)     AS profit
	FROM sales s
	JOIN products p  ON p.id = s.product_id
	JOIN categories c ON c.id = p.category_id` + clause + `
	GROUP BY c.id, c.name
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategorySales
	for rows.Next() {
		var row repository.CategorySales
		if err := rows.Scan(
			&row.CategoryID,
			&row.CategoryName,
			&row.SaleCount,
			&row.ProductCount,
			&row.QuantitySold,
			&row.Revenue,
			&row.Cost,
			&row.Profit,
		); err != nil {
			return nil, fmt.Errorf("reports.SalesByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesByProduct agrupa os agregados de vendas por produto, da maior receita
// para a menor. limit > 0 corta o resultado (top N).
func (r *ReportRepo) SalesByProduct(ctx context.Context, w repository.ReportWindow, limit int) ([]repository.ProductSales, error) {
	clause, args := windowClause(w)
	query := `
	SELECT
	    p.id                                 AS product_id,
	    p.name                               AS product_name,
	    c.name                               AS category_name,
	    p.base_cost,
	    p.margin,
	    COUNT(*)                             AS sale_count,
	    COALESCE(SUM(s.quantity), 0)         AS quantity_sold,
	    COALESCE(SUM(s.total), 0)            AS revenue,
	    COALESCE(SUM(s.cost_total), 0)       AS cost,
	    COALESCE(SUM(s.profit_total), 0)     AS profit
	FROM sales s
	JOIN products p  ON p.id = s.product_id
	JOIN categories c ON c.id = p.category_id` + clause + `
	GROUP BY p.id, p.name, c.name, p.base_cost, p.margin
	ORDER BY revenue DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByProduct: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSales
	for rows.Next() {
		var row repository.ProductSales
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.CategoryName,
			&row.BaseCost,
			&row.Margin,
			&row.SaleCount,
			&row.QuantitySold,
			&row.Revenue,
			&row.Cost,
			&row.Profit,
		); err != nil {
			return nil, fmt.Errorf("reports.SalesByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DailySales agrupa receita e lucro por dia-calendário no fuso informado.
// Devolve somente dias com vendas; o caso de uso preenche os vazios.
func (r *ReportRepo) DailySales(ctx context.Context, from, to time.Time, tz string) ([]repository.DayBucket, error) {
	const query = `
	SELECT
	    date_trunc('day', s.sold_at AT TIME ZONE $3) AS day,
	    SUM(s.total)                                 AS revenue,
	    SUM(s.profit_total)                          AS profit
	FROM sales s
	WHERE s.sold_at >= $1 AND s.sold_at < $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, from, to, tz)
	if err != nil {
		return nil, fmt.Errorf("reports.DailySales: %w", err)
	}
	defer rows.Close()

	var results []repository.DayBucket
	for rows.Next() {
		var row repository.DayBucket
		if err := rows.Scan(&row.Day, &row.Revenue, &row.Profit); err != nil {
			return nil, fmt.Errorf("reports.DailySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlySales agrupa receita e lucro por mês-calendário no fuso informado.
func (r *ReportRepo) MonthlySales(ctx context.Context, from, to time.Time, tz string) ([]repository.MonthBucket, error) {
	const query = `
	SELECT
	    date_trunc('month', s.sold_at AT TIME ZONE $3) AS month,
	    SUM(s.total)                                   AS revenue,
	    SUM(s.profit_total)                            AS profit
	FROM sales s
	WHERE s.sold_at >= $1 AND s.sold_at < $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, from, to, tz)
	if err != nil {
		return nil, fmt.Errorf("reports.MonthlySales: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthBucket
	for rows.Next() {
		var row repository.MonthBucket
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Profit); err != nil {
			return nil, fmt.Errorf("reports.MonthlySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// expenseWindowClause monta o WHERE das consultas de despesas sobre incurred_at.
func expenseWindowClause(from, to *time.Time) (string, []any) {
	clause := " WHERE TRUE"
	args := []any{}
	if from != nil {
		args = append(args, *from)
		clause += fmt.Sprintf(" AND incurred_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		clause += fmt.Sprintf(" AND incurred_at < $%d", len(args))
	}
	return clause, args
}

// ExpenseStats devolve os agregados gerais de despesas da janela.
func (r *ReportRepo) ExpenseStats(ctx context.Context, from, to *time.Time) (*repository.ExpenseStats, error) {
	clause, args := expenseWindowClause(from, to)
	query := `
	SELECT
	    COUNT(*)                                             AS expense_count,
	    COALESCE(SUM(value), 0)                              AS total,
	    COALESCE(SUM(value) FILTER (WHERE paid), 0)          AS paid,
	    COALESCE(SUM(value) FILTER (WHERE NOT paid), 0)      AS pending
	FROM expenses` + clause

	var stats repository.ExpenseStats
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&stats.Count, &stats.Total, &stats.Paid, &stats.Pending)
	if err != nil {
		return nil, fmt.Errorf("reports.ExpenseStats: %w", err)
	}
	return &stats, nil
}

// ExpensesByCategory agrupa as despesas da janela por categoria, da maior
// para a menor.
func (r *ReportRepo) ExpensesByCategory(ctx context.Context, from, to *time.Time) ([]repository.ExpenseCategoryTotal, error) {
	clause, args := expenseWindowClause(from, to)
	query := `
	SELECT category, COALESCE(SUM(value), 0) AS total, COUNT(*) AS expense_count
	FROM expenses` + clause + `
	GROUP BY category
	ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports.ExpensesByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.ExpenseCategoryTotal
	for rows.Next() {
		var row repository.ExpenseCategoryTotal
		if err := rows.Scan(&row.Category, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("reports.ExpensesByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DailyPaidExpenses agrupa por dia de pagamento as despesas pagas, no fuso
// informado. Alimenta o fluxo de caixa (saída = dinheiro que de fato saiu).
func (r *ReportRepo) DailyPaidExpenses(ctx context.Context, from, to time.Time, tz string) ([]repository.ExpenseDayBucket, error) {
	const query = `
	SELECT
	    date_trunc('day', paid_at AT TIME ZONE $3) AS day,
	    SUM(value)                                 AS total
	FROM expenses
	WHERE paid AND paid_at >= $1 AND paid_at < $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, from, to, tz)
	if err != nil {
		return nil, fmt.Errorf("reports.DailyPaidExpenses: %w", err)
	}
	defer rows.Close()

	var results []repository.ExpenseDayBucket
	for rows.Next() {
		var row repository.ExpenseDayBucket
		if err := rows.Scan(&row.Day, &row.Total); err != nil {
			return nil, fmt.Errorf("reports.DailyPaidExpenses scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlyPaidExpenses agrupa por mês de pagamento as despesas pagas, no fuso
// informado.
func (r *ReportRepo) MonthlyPaidExpenses(ctx context.Context, from, to time.Time, tz string) ([]repository.ExpenseMonthBucket, error) {
	const query = `
	SELECT
	    date_trunc('month', paid_at AT TIME ZONE $3) AS month,
	    SUM(value)                                   AS total
	FROM expenses
	WHERE paid AND paid_at >= $1 AND paid_at < $2
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, from, to, tz)
	if err != nil {
		return nil, fmt.Errorf("reports.MonthlyPaidExpenses: %w", err)
	}
	defer rows.Close()

	var results []repository.ExpenseMonthBucket
	for rows.Next() {
		var row repository.ExpenseMonthBucket
		if err := rows.Scan(&row.Month, &row.Total); err != nil {
			return nil, fmt.Errorf("reports.MonthlyPaidExpenses scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// OverdueExpenseCount conta despesas não pagas com vencimento anterior a ref.
func (r *ReportRepo) OverdueExpenseCount(ctx context.Context, ref time.Time) (int64, error) {
	const query = `
	SELECT COUNT(*)
	FROM expenses
	WHERE NOT paid AND due_date IS NOT NULL AND due_date < ($1)::date`

	var count int64
	if err := r.pool.QueryRow(ctx, query, ref).Scan(&count); err != nil {
		return 0, fmt.Errorf("reports.OverdueExpenseCount: %w", err)
	}
	return count, nil
}

// Counts devolve as contagens gerais exibidas no resumo inicial.
func (r *ReportRepo) Counts(ctx context.Context) (*repository.EntityCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products WHERE active)   AS active_products,
	    (SELECT COUNT(*) FROM categories WHERE active) AS active_categories,
	    (SELECT COUNT(*) FROM sales)                   AS sales,
	    (SELECT COUNT(*) FROM expenses)                AS expenses`

	var counts repository.EntityCounts
	err := r.pool.QueryRow(ctx, query).Scan(
		&counts.ActiveProducts,
		&counts.ActiveCategories,
		&counts.Sales,
		&counts.Expenses,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.Counts: %w", err)
	}
	return &counts, nil
}
