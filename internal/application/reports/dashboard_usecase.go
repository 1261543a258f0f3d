package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

const (
	dashboardTopProducts = 5
	recentItemsLimit     = 5
	evolutionMonths      = 12
	cashFlowDays         = 30
)

// Períodos pré-definidos do dashboard financeiro (janelas móveis).
const (
	Window30Days   = "30_dias"
	Window90Days   = "90_dias"
	Window6Months  = "6_meses"
	Window12Months = "12_meses"
)

// DashboardUseCase gera o resumo da tela inicial e o dashboard financeiro.
//
// Fonte de dados: ReportRepository (consultas read-only) mais os repositórios
// das entidades para as listas de itens recentes.
type DashboardUseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository

	loc *time.Location
	// Limiares de alerta, em pontos percentuais.
	lowMarginAlert   decimal.Decimal
	revenueDropAlert decimal.Decimal

	now func() time.Time
}

// NewDashboardUseCase constrói o caso de uso com os limiares de alerta
// vindos da configuração.
func NewDashboardUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	loc *time.Location,
	lowMarginAlert, revenueDropAlert int,
) *DashboardUseCase {
	return &DashboardUseCase{
		reportRepo:       reportRepo,
		productRepo:      productRepo,
		saleRepo:         saleRepo,
		expenseRepo:      expenseRepo,
		loc:              loc,
		lowMarginAlert:   decimal.NewFromInt(int64(lowMarginAlert)),
		revenueDropAlert: decimal.NewFromInt(int64(revenueDropAlert)),
		now:              time.Now,
	}
}

// HomeSummary constrói o resumo da tela inicial: contagens gerais, números do
// mês corrente e os itens mais recentes de cada entidade.
//
// Seis consultas em paralelo:
//  1. Counts                     → contagens gerais
//  2. SalesStats(mês)            → receita e lucro bruto do mês
//  3. ExpenseStats(mês)          → despesas do mês (total/pagas/pendentes)
//  4. ListActive(produtos, 5)    → produtos recentes
//  5. List(vendas, 5)            → vendas recentes
//  6. List(despesas, 5)          → despesas recentes
func (uc *DashboardUseCase) HomeSummary(ctx context.Context) (*dto.HomeSummaryResponse, error) {
	now := uc.now().In(uc.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	monthEnd := now

	type countsResult struct {
		counts *repository.EntityCounts
		err    error
	}
	type salesResult struct {
		stats *repository.SalesStats
		err   error
	}
	type expensesResult struct {
		stats *repository.ExpenseStats
		err   error
	}
	type productsResult struct {
		items []*entity.Product
		err   error
	}
	type saleListResult struct {
		items []*entity.Sale
		err   error
	}
	type expenseListResult struct {
		items []*entity.Expense
		err   error
	}

	countsCh := make(chan countsResult, 1)
	salesCh := make(chan salesResult, 1)
	expensesCh := make(chan expensesResult, 1)
	productsCh := make(chan productsResult, 1)
	recentSalesCh := make(chan saleListResult, 1)
	recentExpensesCh := make(chan expenseListResult, 1)

	go func() {
		counts, err := uc.reportRepo.Counts(ctx)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		stats, err := uc.reportRepo.SalesStats(ctx, repository.ReportWindow{From: &monthStart, To: &monthEnd})
		salesCh <- salesResult{stats, err}
	}()
	go func() {
		stats, err := uc.reportRepo.ExpenseStats(ctx, &monthStart, &monthEnd)
		expensesCh <- expensesResult{stats, err}
	}()
	go func() {
		items, err := uc.productRepo.ListActive(ctx, repository.ProductFilter{Limit: recentItemsLimit})
		productsCh <- productsResult{items, err}
	}()
	go func() {
		items, err := uc.saleRepo.List(ctx, repository.SaleFilter{Limit: recentItemsLimit})
		recentSalesCh <- saleListResult{items, err}
	}()
	go func() {
		items, err := uc.expenseRepo.List(ctx, repository.ExpenseFilter{Limit: recentItemsLimit, Now: now})
		recentExpensesCh <- expenseListResult{items, err}
	}()

	counts := <-countsCh
	sales := <-salesCh
	expenses := <-expensesCh
	products := <-productsCh
	recentSales := <-recentSalesCh
	recentExpenses := <-recentExpensesCh

	if counts.err != nil {
		return nil, fmt.Errorf("resumo inicial: contagens: %w", counts.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("resumo inicial: vendas do mês: %w", sales.err)
	}
	if expenses.err != nil {
		return nil, fmt.Errorf("resumo inicial: despesas do mês: %w", expenses.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("resumo inicial: produtos recentes: %w", products.err)
	}
	if recentSales.err != nil {
		return nil, fmt.Errorf("resumo inicial: vendas recentes: %w", recentSales.err)
	}
	if recentExpenses.err != nil {
		return nil, fmt.Errorf("resumo inicial: despesas recentes: %w", recentExpenses.err)
	}

	return &dto.HomeSummaryResponse{
		ActiveProducts:   counts.counts.ActiveProducts,
		ActiveCategories: counts.counts.ActiveCategories,
		SaleCount:        counts.counts.Sales,
		ExpenseCount:     counts.counts.Expenses,

		MonthRevenue:         sales.stats.Revenue.Round(2),
		MonthProfit:          sales.stats.Profit.Round(2),
		MonthExpenses:        expenses.stats.Total.Round(2),
		MonthExpensesPaid:    expenses.stats.Paid.Round(2),
		MonthExpensesPending: expenses.stats.Pending.Round(2),
		MonthNetProfit:       sales.stats.Profit.Sub(expenses.stats.Paid).Round(2),

		RecentProducts: toProductDTOs(products.items),
		RecentSales:    toSaleDTOs(recentSales.items),
		RecentExpenses: toExpenseDTOs(recentExpenses.items, now),
	}, nil
}

// dashboardWindow traduz o período móvel em [from, now].
func (uc *DashboardUseCase) dashboardWindow(period string, now time.Time) (from time.Time, label string) {
	switch period {
	case Window90Days:
		return now.AddDate(0, 0, -90), "Últimos 90 dias"
	case Window6Months:
		return now.AddDate(0, -6, 0), "Últimos 6 meses"
	case Window12Months:
		return now.AddDate(0, -12, 0), "Últimos 12 meses"
	default:
		return now.AddDate(0, 0, -30), "Últimos 30 dias"
	}
}

// Financial constrói o dashboard financeiro executivo: KPIs da janela móvel,
// evolução mensal de 12 meses, top produtos, despesas por categoria, fluxo de
// caixa de 30 dias, tendências frente ao período anterior e alertas.
func (uc *DashboardUseCase) Financial(ctx context.Context, period string) (*dto.FinancialDashboardResponse, error) {
	now := uc.now().In(uc.loc)
	from, label := uc.dashboardWindow(period, now)
	window := repository.ReportWindow{From: &from, To: &now}

	// Período anterior de mesma duração, para as tendências.
	prevFrom := from.Add(-now.Sub(from))
	prevWindow := repository.ReportWindow{From: &prevFrom, To: &from}

	// Evolução mensal: últimos 12 meses-calendário, sempre fixos.
	evolutionStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc).
		AddDate(0, -(evolutionMonths - 1), 0)

	// Fluxo de caixa: últimos 30 dias, sempre fixos.
	cashStart := startOfDay(now).AddDate(0, 0, -(cashFlowDays - 1))
	cashEnd := endOfDay(now)

	type salesResult struct {
		stats *repository.SalesStats
		err   error
	}
	type expensesResult struct {
		stats *repository.ExpenseStats
		err   error
	}
	type topResult struct {
		rows []repository.ProductSales
		err  error
	}
	type expCatResult struct {
		rows []repository.ExpenseCategoryTotal
		err  error
	}
	type salesMonthsResult struct {
		rows []repository.MonthBucket
		err  error
	}
	type expMonthsResult struct {
		rows []repository.ExpenseMonthBucket
		err  error
	}
	type salesDaysResult struct {
		rows []repository.DayBucket
		err  error
	}
	type expDaysResult struct {
		rows []repository.ExpenseDayBucket
		err  error
	}
	type overdueResult struct {
		count int64
		err   error
	}

	salesCh := make(chan salesResult, 1)
	prevSalesCh := make(chan salesResult, 1)
	expensesCh := make(chan expensesResult, 1)
	prevExpensesCh := make(chan expensesResult, 1)
	topCh := make(chan topResult, 1)
	expCatCh := make(chan expCatResult, 1)
	salesMonthsCh := make(chan salesMonthsResult, 1)
	expMonthsCh := make(chan expMonthsResult, 1)
	salesDaysCh := make(chan salesDaysResult, 1)
	expDaysCh := make(chan expDaysResult, 1)
	overdueCh := make(chan overdueResult, 1)

	go func() {
		stats, err := uc.reportRepo.SalesStats(ctx, window)
		salesCh <- salesResult{stats, err}
	}()
	go func() {
		stats, err := uc.reportRepo.SalesStats(ctx, prevWindow)
		prevSalesCh <- salesResult{stats, err}
	}()
	go func() {
		stats, err := uc.reportRepo.ExpenseStats(ctx, &from, &now)
		expensesCh <- expensesResult{stats, err}
	}()
	go func() {
		stats, err := uc.reportRepo.ExpenseStats(ctx, &prevFrom, &from)
		prevExpensesCh <- expensesResult{stats, err}
	}()
	go func() {
		rows, err := uc.reportRepo.SalesByProduct(ctx, window, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.ExpensesByCategory(ctx, &from, &now)
		expCatCh <- expCatResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.MonthlySales(ctx, evolutionStart, now, uc.loc.String())
		salesMonthsCh <- salesMonthsResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.MonthlyPaidExpenses(ctx, evolutionStart, now, uc.loc.String())
		expMonthsCh <- expMonthsResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.DailySales(ctx, cashStart, cashEnd, uc.loc.String())
		salesDaysCh <- salesDaysResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.DailyPaidExpenses(ctx, cashStart, cashEnd, uc.loc.String())
		expDaysCh <- expDaysResult{rows, err}
	}()
	go func() {
		count, err := uc.reportRepo.OverdueExpenseCount(ctx, now)
		overdueCh <- overdueResult{count, err}
	}()

	sales := <-salesCh
	prevSales := <-prevSalesCh
	expenses := <-expensesCh
	prevExpenses := <-prevExpensesCh
	top := <-topCh
	expCat := <-expCatCh
	salesMonths := <-salesMonthsCh
	expMonths := <-expMonthsCh
	salesDays := <-salesDaysCh
	expDays := <-expDaysCh
	overdue := <-overdueCh

	for _, step := range []struct {
		name string
		err  error
	}{
		{"vendas do período", sales.err},
		{"vendas do período anterior", prevSales.err},
		{"despesas do período", expenses.err},
		{"despesas do período anterior", prevExpenses.err},
		{"top produtos", top.err},
		{"despesas por categoria", expCat.err},
		{"evolução mensal de vendas", salesMonths.err},
		{"evolução mensal de despesas", expMonths.err},
		{"fluxo de caixa: vendas", salesDays.err},
		{"fluxo de caixa: despesas", expDays.err},
		{"despesas vencidas", overdue.err},
	} {
		if step.err != nil {
			return nil, fmt.Errorf("dashboard financeiro: %s: %w", step.name, step.err)
		}
	}

	kpis := buildKPIs(sales.stats, expenses.stats)
	trends := buildTrends(sales.stats, prevSales.stats, expenses.stats, prevExpenses.stats)

	return &dto.FinancialDashboardResponse{
		Period:             period,
		PeriodLabel:        label,
		KPIs:               kpis,
		MonthlyEvolution:   fillMonthlyEvolution(salesMonths.rows, expMonths.rows, evolutionStart, evolutionMonths),
		TopProducts:        toProductSalesDTOs(top.rows),
		ExpensesByCategory: toExpenseCategoryDTOs(expCat.rows),
		CashFlow:           fillCashFlow(salesDays.rows, expDays.rows, cashStart, cashFlowDays),
		Trends:             trends,
		Alerts:             uc.buildAlerts(overdue.count, kpis, trends),
	}, nil
}

// ── KPIs, tendências e alertas ──────────────────────────────────────────────

var oneHundred = decimal.NewFromInt(100)

func buildKPIs(sales *repository.SalesStats, expenses *repository.ExpenseStats) dto.DashboardKPIs {
	kpis := dto.DashboardKPIs{
		Revenue:       sales.Revenue.Round(2),
		GrossProfit:   sales.Profit.Round(2),
		ExpensesTotal: expenses.Total.Round(2),
		ExpensesPaid:  expenses.Paid.Round(2),
		SaleCount:     sales.Count,
		AverageTicket: decimal.Zero,
		AverageMargin: decimal.Zero,
		NetProfit:     sales.Profit.Sub(expenses.Paid).Round(2),
	}
	if sales.Count > 0 {
		kpis.AverageTicket = sales.Revenue.Div(decimal.NewFromInt(sales.Count)).Round(2)
	}
	// Margem média do dashboard é sobre a receita, não sobre o custo.
	if sales.Revenue.GreaterThan(decimal.Zero) {
		kpis.AverageMargin = sales.Profit.Div(sales.Revenue).Mul(oneHundred).Round(2)
	}
	return kpis
}

func buildTrends(sales, prevSales *repository.SalesStats, expenses, prevExpenses *repository.ExpenseStats) dto.TrendsDTO {
	profit := sales.Profit.Sub(expenses.Paid)
	prevProfit := prevSales.Profit.Sub(prevExpenses.Paid)
	return dto.TrendsDTO{
		RevenueGrowth:  growthPercent(sales.Revenue, prevSales.Revenue),
		ExpensesGrowth: growthPercent(expenses.Total, prevExpenses.Total),
		ProfitGrowth:   signedGrowthPercent(profit, prevProfit),
	}
}

// growthPercent calcula (atual - anterior)/anterior * 100 para grandezas
// não negativas; 0 quando o período anterior é 0.
func growthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(oneHundred).Round(2)
}

// signedGrowthPercent calcula o crescimento de grandezas que podem ser
// negativas (lucro líquido), dividindo pelo valor absoluto do anterior.
func signedGrowthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(oneHundred).Round(2)
}

func (uc *DashboardUseCase) buildAlerts(overdueCount int64, kpis dto.DashboardKPIs, trends dto.TrendsDTO) []dto.AlertDTO {
	alerts := make([]dto.AlertDTO, 0, 3)
	if overdueCount > 0 {
		alerts = append(alerts, dto.AlertDTO{
			Type:    "danger",
			Title:   "Despesas Vencidas",
			Message: fmt.Sprintf("Você tem %d despesa(s) vencida(s)", overdueCount),
			Link:    "/expenses?status=vencido",
		})
	}
	if kpis.Revenue.GreaterThan(decimal.Zero) && kpis.AverageMargin.LessThan(uc.lowMarginAlert) {
		alerts = append(alerts, dto.AlertDTO{
			Type:    "warning",
			Title:   "Margem Baixa",
			Message: fmt.Sprintf("Margem média de %s%% está abaixo de %s%%", kpis.AverageMargin.String(), uc.lowMarginAlert.String()),
			Link:    "/products",
		})
	}
	if trends.RevenueGrowth.LessThan(uc.revenueDropAlert.Neg()) {
		alerts = append(alerts, dto.AlertDTO{
			Type:    "warning",
			Title:   "Queda na Receita",
			Message: fmt.Sprintf("Receita caiu %s%% frente ao período anterior", trends.RevenueGrowth.Abs().String()),
			Link:    "/reports/revenue",
		})
	}
	return alerts
}

// ── Séries zero-preenchidas ─────────────────────────────────────────────────

// fillMonthlyEvolution materializa `months` meses-calendário a partir de
// start, combinando vendas e despesas pagas; meses sem atividade entram com
// zero.
func fillMonthlyEvolution(sales []repository.MonthBucket, expenses []repository.ExpenseMonthBucket, start time.Time, months int) []dto.MonthlyPointDTO {
	salesByMonth := make(map[string]repository.MonthBucket, len(sales))
	for _, r := range sales {
		salesByMonth[r.Month.Format("2006-01")] = r
	}
	expensesByMonth := make(map[string]decimal.Decimal, len(expenses))
	for _, r := range expenses {
		expensesByMonth[r.Month.Format("2006-01")] = r.Total
	}

	out := make([]dto.MonthlyPointDTO, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		key := month.Format("2006-01")
		point := dto.MonthlyPointDTO{
			Month:       monthLabel(month),
			Revenue:     decimal.Zero,
			GrossProfit: decimal.Zero,
			Expenses:    decimal.Zero,
		}
		if r, ok := salesByMonth[key]; ok {
			point.Revenue = r.Revenue.Round(2)
			point.GrossProfit = r.Profit.Round(2)
		}
		if total, ok := expensesByMonth[key]; ok {
			point.Expenses = total.Round(2)
		}
		point.NetProfit = point.GrossProfit.Sub(point.Expenses)
		out = append(out, point)
	}
	return out
}

// fillCashFlow materializa `days` dias a partir de start, combinando receita
// e despesas pagas; dias sem atividade entram com zero.
func fillCashFlow(sales []repository.DayBucket, expenses []repository.ExpenseDayBucket, start time.Time, days int) []dto.CashFlowPointDTO {
	salesByDay := make(map[string]decimal.Decimal, len(sales))
	for _, r := range sales {
		salesByDay[r.Day.Format("2006-01-02")] = r.Revenue
	}
	expensesByDay := make(map[string]decimal.Decimal, len(expenses))
	for _, r := range expenses {
		expensesByDay[r.Day.Format("2006-01-02")] = r.Total
	}

	out := make([]dto.CashFlowPointDTO, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		point := dto.CashFlowPointDTO{
			Date:     day.Format("02/01"),
			Revenue:  decimal.Zero,
			Expenses: decimal.Zero,
		}
		if v, ok := salesByDay[key]; ok {
			point.Revenue = v.Round(2)
		}
		if v, ok := expensesByDay[key]; ok {
			point.Expenses = v.Round(2)
		}
		point.Balance = point.Revenue.Sub(point.Expenses)
		out = append(out, point)
	}
	return out
}

// monthLabel devolve o rótulo curto do mês, ex: "fev/2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"jan", "fev", "mar", "abr", "mai", "jun",
		"jul", "ago", "set", "out", "nov", "dez",
	}
	return fmt.Sprintf("%s/%d", months[t.Month()-1], t.Year())
}

// ── Conversões das listas recentes ──────────────────────────────────────────

func toProductDTOs(items []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			BaseCost:    p.BaseCost,
			Margin:      p.Margin,
			FinalPrice:  p.FinalPrice().Round(2),
			ProfitValue: p.ProfitValue().Round(2),
			CategoryID:  p.CategoryID,
			UserID:      p.UserID,
			Active:      p.Active,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return out
}

func toSaleDTOs(items []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.SaleResponse{
			ID:             s.ID,
			ProductID:      s.ProductID,
			Quantity:       s.Quantity,
			UnitPrice:      s.UnitPrice,
			Total:          s.Total,
			CostTotal:      s.CostTotal,
			ProfitTotal:    s.ProfitTotal,
			RealizedMargin: s.RealizedMargin().Round(2),
			Notes:          s.Notes,
			UserID:         s.UserID,
			SoldAt:         s.SoldAt,
		})
	}
	return out
}

func toExpenseDTOs(items []*entity.Expense, now time.Time) []dto.ExpenseResponse {
	out := make([]dto.ExpenseResponse, 0, len(items))
	for _, e := range items {
		out = append(out, dto.ExpenseResponse{
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
			Status:        e.Status(now),
			Notes:         e.Notes,
			UserID:        e.UserID,
			CreatedAt:     e.CreatedAt,
			UpdatedAt:     e.UpdatedAt,
		})
	}
	return out
}

func toExpenseCategoryDTOs(rows []repository.ExpenseCategoryTotal) []dto.ExpenseCategoryTotalDTO {
	out := make([]dto.ExpenseCategoryTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ExpenseCategoryTotalDTO{
			Category: string(r.Category),
			Label:    r.Category.Label(),
			Total:    r.Total.Round(2),
			Count:    r.Count,
		})
	}
	return out
}
