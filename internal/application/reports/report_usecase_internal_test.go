package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

// quarta-feira, 2024-06-12 15:30 em São Paulo
var testNow = time.Date(2024, 6, 12, 15, 30, 0, 0, saoPaulo())

func saoPaulo() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return loc
}

func testReportUC() *ReportUseCase {
	return &ReportUseCase{loc: saoPaulo(), now: func() time.Time { return testNow }}
}

// ──────────────────────────────────────────────────────────────────────────────
// periodWindow — tradução dos períodos pré-definidos
// ──────────────────────────────────────────────────────────────────────────────

func TestPeriodWindow_Dia(t *testing.T) {
	uc := testReportUC()
	from, to, label := uc.periodWindow(PeriodDay, testNow)

	require.NotNil(t, from)
	require.NotNil(t, to)
	assert.Equal(t, "Hoje", label)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, saoPaulo()), *from)
	assert.Equal(t, time.Date(2024, 6, 13, 0, 0, 0, 0, saoPaulo()), *to)
}

func TestPeriodWindow_SemanaComecaNaSegunda(t *testing.T) {
	uc := testReportUC()
	from, to, label := uc.periodWindow(PeriodWeek, testNow)

	require.NotNil(t, from)
	assert.Equal(t, "Esta Semana", label)
	// 2024-06-12 é quarta; a semana começa na segunda 2024-06-10.
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, saoPaulo()), *from)
	assert.Equal(t, time.Date(2024, 6, 17, 0, 0, 0, 0, saoPaulo()), *to)
	assert.Equal(t, time.Monday, from.Weekday())
}

func TestPeriodWindow_SemanaNoDomingo(t *testing.T) {
	// Domingo pertence à semana iniciada na segunda anterior.
	uc := testReportUC()
	sunday := time.Date(2024, 6, 16, 10, 0, 0, 0, saoPaulo())
	from, _, _ := uc.periodWindow(PeriodWeek, sunday)

	require.NotNil(t, from)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, saoPaulo()), *from)
}

func TestPeriodWindow_Mes(t *testing.T) {
	uc := testReportUC()
	from, to, label := uc.periodWindow(PeriodMonth, testNow)

	assert.Equal(t, "Este Mês", label)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, saoPaulo()), *from)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, saoPaulo()), *to)
}

func TestPeriodWindow_Ano(t *testing.T) {
	uc := testReportUC()
	from, to, label := uc.periodWindow(PeriodYear, testNow)

	assert.Equal(t, "Este Ano", label)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, saoPaulo()), *from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, saoPaulo()), *to)
}

func TestPeriodWindow_TodosSemLimites(t *testing.T) {
	uc := testReportUC()
	from, to, label := uc.periodWindow(PeriodAll, testNow)

	assert.Nil(t, from)
	assert.Nil(t, to)
	assert.Equal(t, "Todos os Períodos", label)
}

func TestPeriodWindow_DesconhecidoCaiEmTodos(t *testing.T) {
	uc := testReportUC()
	from, to, _ := uc.periodWindow("trimestre", testNow)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

// ──────────────────────────────────────────────────────────────────────────────
// fillDailySeries — séries com zero, nunca com buracos
// ──────────────────────────────────────────────────────────────────────────────

func TestFillDailySeries_PreencheDiasVazios(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, saoPaulo())
	rows := []repository.DayBucket{
		{Day: time.Date(2024, 6, 2, 0, 0, 0, 0, saoPaulo()), Revenue: decimal.RequireFromString("150.00"), Profit: decimal.RequireFromString("50.00")},
		{Day: time.Date(2024, 6, 5, 0, 0, 0, 0, saoPaulo()), Revenue: decimal.RequireFromString("80.00"), Profit: decimal.RequireFromString("20.00")},
	}

	series := fillDailySeries(rows, start, 7)
	require.Len(t, series, 7, "a série deve ter exatamente um ponto por dia")

	assert.Equal(t, "01/06", series[0].Date)
	assert.True(t, series[0].Revenue.IsZero(), "dia sem venda entra com zero")

	assert.Equal(t, "02/06", series[1].Date)
	assert.True(t, series[1].Revenue.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, series[1].Profit.Equal(decimal.RequireFromString("50.00")))

	assert.True(t, series[2].Revenue.IsZero())
	assert.True(t, series[3].Revenue.IsZero())
	assert.True(t, series[4].Revenue.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, series[5].Revenue.IsZero())
	assert.True(t, series[6].Revenue.IsZero())
}

func TestFillDailySeries_SemLinhasTodaZerada(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, saoPaulo())
	series := fillDailySeries(nil, start, 30)
	require.Len(t, series, 30)
	for _, p := range series {
		assert.True(t, p.Revenue.IsZero())
		assert.True(t, p.Profit.IsZero())
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// toSalesStatsDTO — margem agregada sobre custo
// ──────────────────────────────────────────────────────────────────────────────

func TestToSalesStatsDTO_MargemSobreCusto(t *testing.T) {
	stats := toSalesStatsDTO(&repository.SalesStats{
		Count:   2,
		Revenue: decimal.RequireFromString("480.00"),
		Cost:    decimal.RequireFromString("400.00"),
		Profit:  decimal.RequireFromString("80.00"),
	})
	assert.True(t, stats.OverallMargin.Equal(decimal.RequireFromString("20")), "80/400 → 20%%, obtido %s", stats.OverallMargin)
}

func TestToSalesStatsDTO_CustoZero(t *testing.T) {
	stats := toSalesStatsDTO(&repository.SalesStats{
		Revenue: decimal.RequireFromString("100.00"),
		Cost:    decimal.Zero,
		Profit:  decimal.RequireFromString("100.00"),
	})
	assert.True(t, stats.OverallMargin.IsZero())
}
