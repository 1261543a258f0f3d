package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
)

// ReportWindow janela de tempo e filtros opcionais das consultas de relatório.
// From/To nil significam sem limite naquele extremo ([From, To)).
type ReportWindow struct {
	From       *time.Time
	To         *time.Time
	CategoryID string
	ProductID  string
}

// SalesStats agregados gerais de vendas de uma janela.
type SalesStats struct {
	Count   int64
	Revenue decimal.Decimal // soma de total
	Cost    decimal.Decimal // soma de custo total
	Profit  decimal.Decimal // soma de lucro total
}

// CategorySales agregados de vendas agrupados por categoria do produto.
type CategorySales struct {
	CategoryID   string
	CategoryName string
	SaleCount    int64
	ProductCount int64
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
	Profit       decimal.Decimal
}

// ProductSales agregados de vendas agrupados por produto.
type ProductSales struct {
	ProductID    string
	ProductName  string
	CategoryName string
	BaseCost     decimal.Decimal
	Margin       decimal.Decimal
	SaleCount    int64
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
	Profit       decimal.Decimal
}

// DayBucket agregados de um dia-calendário (somente dias com atividade;
// o caso de uso preenche os dias vazios com zero).
type DayBucket struct {
	Day     time.Time
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// MonthBucket agregados de um mês-calendário (somente meses com atividade).
type MonthBucket struct {
	Month   time.Time
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// ExpenseDayBucket despesas pagas por dia-calendário.
type ExpenseDayBucket struct {
	Day   time.Time
	Total decimal.Decimal
}

// ExpenseMonthBucket despesas pagas por mês-calendário.
type ExpenseMonthBucket struct {
	Month time.Time
	Total decimal.Decimal
}

// ExpenseCategoryTotal total de despesas por categoria.
type ExpenseCategoryTotal struct {
	Category entity.ExpenseCategory
	Total    decimal.Decimal
	Count    int64
}

// ExpenseStats agregados gerais de despesas de uma janela.
type ExpenseStats struct {
	Count   int64
	Total   decimal.Decimal
	Paid    decimal.Decimal
	Pending decimal.Decimal
}

// EntityCounts contagens para o resumo inicial.
type EntityCounts struct {
	ActiveProducts   int64
	ActiveCategories int64
	Sales            int64
	Expenses         int64
}

// ReportRepository consultas de agregação somente leitura para dashboards e
// relatórios. Todas usam SUM no banco e devolvem zero (via COALESCE) quando
// a janela não tem linhas.
type ReportRepository interface {
	SalesStats(ctx context.Context, w ReportWindow) (*SalesStats, error)
	SalesByCategory(ctx context.Context, w ReportWindow) ([]CategorySales, error)
	SalesByProduct(ctx context.Context, w ReportWindow, limit int) ([]ProductSales, error)
	// DailySales agrupa por dia-calendário no fuso informado.
	DailySales(ctx context.Context, from, to time.Time, tz string) ([]DayBucket, error)
	// MonthlySales agrupa por mês-calendário no fuso informado.
	MonthlySales(ctx context.Context, from, to time.Time, tz string) ([]MonthBucket, error)

	ExpenseStats(ctx context.Context, from, to *time.Time) (*ExpenseStats, error)
	ExpensesByCategory(ctx context.Context, from, to *time.Time) ([]ExpenseCategoryTotal, error)
	DailyPaidExpenses(ctx context.Context, from, to time.Time, tz string) ([]ExpenseDayBucket, error)
	MonthlyPaidExpenses(ctx context.Context, from, to time.Time, tz string) ([]ExpenseMonthBucket, error)
	// OverdueExpenseCount conta despesas não pagas com vencimento anterior a ref.
	OverdueExpenseCount(ctx context.Context, ref time.Time) (int64, error)

	Counts(ctx context.Context) (*EntityCounts, error)
}
