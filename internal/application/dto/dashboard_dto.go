package dto

import "github.com/shopspring/decimal"

// HomeSummaryResponse resumo da tela inicial: contagens e números do mês corrente.
type HomeSummaryResponse struct {
	ActiveProducts   int64 `json:"active_products"`
	ActiveCategories int64 `json:"active_categories"`
	SaleCount        int64 `json:"sale_count"`
	ExpenseCount     int64 `json:"expense_count"`

	MonthRevenue         decimal.Decimal `json:"month_revenue"`
	MonthProfit          decimal.Decimal `json:"month_profit"`
	MonthExpenses        decimal.Decimal `json:"month_expenses"`
	MonthExpensesPaid    decimal.Decimal `json:"month_expenses_paid"`
	MonthExpensesPending decimal.Decimal `json:"month_expenses_pending"`
	// Lucro líquido do mês = lucro bruto - despesas pagas.
	MonthNetProfit decimal.Decimal `json:"month_net_profit"`

	RecentProducts []ProductResponse `json:"recent_products"`
	RecentSales    []SaleResponse    `json:"recent_sales"`
	RecentExpenses []ExpenseResponse `json:"recent_expenses"`
}

// DashboardKPIs indicadores principais do dashboard financeiro.
type DashboardKPIs struct {
	Revenue       decimal.Decimal `json:"revenue"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	ExpensesPaid  decimal.Decimal `json:"expenses_paid"`
	SaleCount     int64           `json:"sale_count"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	// Margem média sobre a receita: lucro bruto / receita * 100.
	AverageMargin decimal.Decimal `json:"average_margin"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// MonthlyPointDTO ponto da evolução mensal (meses sem atividade aparecem com zero).
type MonthlyPointDTO struct {
	Month       string          `json:"month"` // mmm/aaaa
	Revenue     decimal.Decimal `json:"revenue"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"net_profit"`
}

// CashFlowPointDTO fluxo de caixa diário: receita vs despesas pagas.
type CashFlowPointDTO struct {
	Date     string          `json:"date"` // dd/mm
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// ExpenseCategoryTotalDTO total de despesas por categoria.
type ExpenseCategoryTotalDTO struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// TrendsDTO crescimento percentual frente ao período anterior de mesmo tamanho.
type TrendsDTO struct {
	RevenueGrowth  decimal.Decimal `json:"revenue_growth"`
	ExpensesGrowth decimal.Decimal `json:"expenses_growth"`
	ProfitGrowth   decimal.Decimal `json:"profit_growth"`
}

// AlertDTO alerta acionável exibido no dashboard.
type AlertDTO struct {
	Type    string `json:"type"` // danger | warning
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// FinancialDashboardResponse dashboard executivo com KPIs e análises.
type FinancialDashboardResponse struct {
	Period             string                    `json:"period"`
	PeriodLabel        string                    `json:"period_label"`
	KPIs               DashboardKPIs             `json:"kpis"`
	MonthlyEvolution   []MonthlyPointDTO         `json:"monthly_evolution"`
	TopProducts        []ProductSalesDTO         `json:"top_products"`
	ExpensesByCategory []ExpenseCategoryTotalDTO `json:"expenses_by_category"`
	CashFlow           []CashFlowPointDTO        `json:"cash_flow"`
	Trends             TrendsDTO                 `json:"trends"`
	Alerts             []AlertDTO                `json:"alerts"`
}
