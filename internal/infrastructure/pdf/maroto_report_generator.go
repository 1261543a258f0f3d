// Package pdf implementa a geração do relatório detalhado de vendas em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + janela de datas + data de geração          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: Vendas | Receita | Custo | Lucro | Margem           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Análise por produto                                 │
//	│  TABELA: Análise por categoria                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: observação sobre os números congelados              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/application/reports"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 62}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDetailedReport gera o PDF e devolve seus bytes.
func (g *MarotoReportGenerator) GenerateDetailedReport(
	_ context.Context,
	report *dto.DetailedReportResponse,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório Detalhado de Vendas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Análise por produto
	m.AddRows(sectionTitleRow("ANÁLISE POR PRODUTO"))
	m.AddRows(productTableHeaderRow())
	for _, r := range productTableRows(report.ByProduct) {
		m.AddRows(r)
	}

	// Análise por categoria
	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow("ANÁLISE POR CATEGORIA"))
	m.AddRows(categoryTableHeaderRow())
	for _, r := range categoryTableRows(report.ByCategory) {
		m.AddRows(r)
	}

	// Rodapé
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: título (esq) e janela + data de geração (dir).
func headerRow(report *dto.DetailedReportResponse, generatedAt time.Time) core.Row {
	window := "Todo o histórico"
	if report.From != "" || report.To != "" {
		window = fmt.Sprintf("%s a %s",
			nonEmpty(formatDateBR(report.From), "início"),
			nonEmpty(formatDateBR(report.To), "hoje"),
		)
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("Relatório Detalhado de Vendas", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Receita, custo e lucro congelados no momento de cada venda", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+window, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Gerado em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: bloco de indicadores gerais da janela.
func summaryRow(stats dto.SalesStatsDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center,
				Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
				Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		col.New(1),
		cell("VENDAS", fmt.Sprintf("%d", stats.SaleCount)),
		cell("RECEITA", "R$ "+formatMoney(stats.Revenue)),
		cell("CUSTO", "R$ "+formatMoney(stats.Cost)),
		cell("LUCRO", "R$ "+formatMoney(stats.Profit)),
		cell("MARGEM", stats.OverallMargin.StringFixed(2)+"%"),
		col.New(1),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func productTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 4, align.Left),
		h("Categoria", 2, align.Left),
		h("Qtd.", 1, align.Center),
		h("Receita", 2, align.Right),
		h("Lucro", 2, align.Right),
		h("Margem", 1, align.Right),
	)
}

func productTableRows(items []dto.ProductSalesDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, p := range items {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(p.ProductName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(p.CategoryName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray,
			})),
			col.New(1).Add(text.New(p.QuantitySold.StringFixed(0), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New("R$ "+formatMoney(p.Revenue), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("R$ "+formatMoney(p.Profit), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(p.Margin.StringFixed(1)+"%", props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func categoryTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoria", 4, align.Left),
		h("Vendas", 2, align.Center),
		h("Receita", 2, align.Right),
		h("Lucro", 2, align.Right),
		h("Margem", 2, align.Right),
	)
}

func categoryTableRows(items []dto.CategorySalesDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, c := range items {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(c.CategoryName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", c.SaleCount), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New("R$ "+formatMoney(c.Revenue), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("R$ "+formatMoney(c.Profit), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(c.Margin.StringFixed(1)+"%", props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Os valores de custo e lucro refletem o custo base de cada produto no momento "+
				"da venda. Alterações posteriores de preço não afetam este relatório.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formata um decimal no padrão brasileiro: 1234567.80 → "1.234.567,80".
func formatMoney(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}

	out := string(buf) + "," + decPart
	if neg {
		return "-" + out
	}
	return out
}

// formatDateBR converte "2006-01-02" para "02/01/2006"; devolve vazio se
// a entrada não estiver nesse formato.
func formatDateBR(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return ""
	}
	return t.Format("02/01/2006")
}
