// Package reports contém os casos de uso de relatórios e dashboards
// financeiros. Todas as margens agregadas somam primeiro e dividem depois;
// séries temporais devolvem zero (não ausência) para janelas sem atividade.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/pricing"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

const (
	topProductsLimit = 10
	dailySeriesDays  = 30
)

// Períodos pré-definidos do relatório de receita e lucro.
const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodMonth = "mes"
	PeriodYear  = "ano"
	PeriodAll   = "todos"
)

// ReportUseCase gera os relatórios de receita/lucro e o relatório detalhado.
// Delega toda a agregação ao ReportRepository (consultas somente leitura).
type ReportUseCase struct {
	repo repository.ReportRepository
	pdf  ReportPDFGenerator
	loc  *time.Location
	now  func() time.Time
}

// NewReportUseCase constrói o caso de uso. loc é o fuso de relatório usado
// para agrupar por dia/mês-calendário.
func NewReportUseCase(repo repository.ReportRepository, pdf ReportPDFGenerator, loc *time.Location) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf, loc: loc, now: time.Now}
}

// periodWindow traduz o período pré-definido em [from, to) no fuso de relatório.
// Devolve ponteiros nil para "todos".
func (uc *ReportUseCase) periodWindow(period string, now time.Time) (from, to *time.Time, label string) {
	now = now.In(uc.loc)
	switch period {
	case PeriodDay:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
		end := start.AddDate(0, 0, 1)
		return &start, &end, "Hoje"
	case PeriodWeek:
		// Semana iniciando na segunda-feira, como o relatório original.
		weekday := int(now.Weekday()+6) % 7
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc).AddDate(0, 0, -weekday)
		end := start.AddDate(0, 0, 7)
		return &start, &end, "Esta Semana"
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
		end := start.AddDate(0, 1, 0)
		return &start, &end, "Este Mês"
	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, uc.loc)
		end := start.AddDate(1, 0, 0)
		return &start, &end, "Este Ano"
	default:
		return nil, nil, "Todos os Períodos"
	}
}

// Revenue monta o relatório de receita e lucro para um período pré-definido:
// estatísticas gerais, análise por categoria, top produtos e série diária
// dos últimos 30 dias (dias sem venda entram com zero).
func (uc *ReportUseCase) Revenue(ctx context.Context, period string) (*dto.RevenueReportResponse, error) {
	now := uc.now()
	from, to, label := uc.periodWindow(period, now)
	window := repository.ReportWindow{From: from, To: to}

	stats, err := uc.repo.SalesStats(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("relatório de receita: estatísticas: %w", err)
	}
	byCategory, err := uc.repo.SalesByCategory(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("relatório de receita: por categoria: %w", err)
	}
	topProducts, err := uc.repo.SalesByProduct(ctx, window, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("relatório de receita: top produtos: %w", err)
	}

	seriesEnd := endOfDay(now.In(uc.loc))
	seriesStart := startOfDay(now.In(uc.loc)).AddDate(0, 0, -(dailySeriesDays - 1))
	daily, err := uc.repo.DailySales(ctx, seriesStart, seriesEnd, uc.loc.String())
	if err != nil {
		return nil, fmt.Errorf("relatório de receita: série diária: %w", err)
	}

	return &dto.RevenueReportResponse{
		Period:      period,
		PeriodLabel: label,
		Stats:       toSalesStatsDTO(stats),
		ByCategory:  toCategorySalesDTOs(byCategory),
		TopProducts: toProductSalesDTOs(topProducts),
		DailySeries: fillDailySeries(daily, seriesStart, dailySeriesDays),
	}, nil
}

// Detailed monta o relatório detalhado com janela arbitrária e filtros de
// categoria/produto: estatísticas, análise por produto e por categoria.
func (uc *ReportUseCase) Detailed(ctx context.Context, w repository.ReportWindow) (*dto.DetailedReportResponse, error) {
	stats, err := uc.repo.SalesStats(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("relatório detalhado: estatísticas: %w", err)
	}
	byProduct, err := uc.repo.SalesByProduct(ctx, w, 0)
	if err != nil {
		return nil, fmt.Errorf("relatório detalhado: por produto: %w", err)
	}
	byCategory, err := uc.repo.SalesByCategory(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("relatório detalhado: por categoria: %w", err)
	}

	out := &dto.DetailedReportResponse{
		Stats:      toSalesStatsDTO(stats),
		ByProduct:  toProductSalesDTOs(byProduct),
		ByCategory: toCategorySalesDTOs(byCategory),
		CategoryID: w.CategoryID,
		ProductID:  w.ProductID,
	}
	if w.From != nil {
		out.From = w.From.In(uc.loc).Format("2006-01-02")
	}
	if w.To != nil {
		out.To = w.To.In(uc.loc).Format("2006-01-02")
	}
	return out, nil
}

// DetailedPDF gera a versão PDF do relatório detalhado, com os mesmos
// filtros da versão JSON.
func (uc *ReportUseCase) DetailedPDF(ctx context.Context, w repository.ReportWindow) ([]byte, error) {
	report, err := uc.Detailed(ctx, w)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.GenerateDetailedReport(ctx, report, uc.now().In(uc.loc))
	if err != nil {
		return nil, fmt.Errorf("relatório detalhado: PDF: %w", err)
	}
	return data, nil
}

// ── Conversões e preenchimento de séries ────────────────────────────────────

func toSalesStatsDTO(s *repository.SalesStats) dto.SalesStatsDTO {
	return dto.SalesStatsDTO{
		SaleCount: s.Count,
		Revenue:   s.Revenue.Round(2),
		Cost:      s.Cost.Round(2),
		Profit:    s.Profit.Round(2),
		// Margem sobre o custo: sum(lucro)/sum(custo)*100.
		OverallMargin: pricing.OverallMargin(s.Profit, s.Cost).Round(2),
	}
}

func toCategorySalesDTOs(rows []repository.CategorySales) []dto.CategorySalesDTO {
	out := make([]dto.CategorySalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategorySalesDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			SaleCount:    r.SaleCount,
			ProductCount: r.ProductCount,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.Round(2),
			Cost:         r.Cost.Round(2),
			Profit:       r.Profit.Round(2),
			Margin:       pricing.OverallMargin(r.Profit, r.Cost).Round(2),
		})
	}
	return out
}

func toProductSalesDTOs(rows []repository.ProductSales) []dto.ProductSalesDTO {
	out := make([]dto.ProductSalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductSalesDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			CategoryName: r.CategoryName,
			BaseCost:     r.BaseCost,
			TargetMargin: r.Margin,
			SaleCount:    r.SaleCount,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.Round(2),
			Cost:         r.Cost.Round(2),
			Profit:       r.Profit.Round(2),
			Margin:       pricing.OverallMargin(r.Profit, r.Cost).Round(2),
		})
	}
	return out
}

// fillDailySeries materializa uma série de `days` dias a partir de start,
// preenchendo com zero os dias sem linhas no banco.
func fillDailySeries(rows []repository.DayBucket, start time.Time, days int) []dto.DailyPointDTO {
	byDay := make(map[string]repository.DayBucket, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format("2006-01-02")] = r
	}
	out := make([]dto.DailyPointDTO, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		point := dto.DailyPointDTO{
			Date:    day.Format("02/01"),
			Revenue: decimal.Zero,
			Profit:  decimal.Zero,
		}
		if r, ok := byDay[day.Format("2006-01-02")]; ok {
			point.Revenue = r.Revenue.Round(2)
			point.Profit = r.Profit.Round(2)
		}
		out = append(out, point)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1)
}
