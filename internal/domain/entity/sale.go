package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/pricing"
)

// Sale registra a venda de um produto. Total, CostTotal e ProfitTotal são
// congelados no momento da venda contra o custo base vigente do produto
// (snapshot): alterações posteriores no custo não afetam vendas históricas.
type Sale struct {
	ID         string
	ProductID  string
	Quantity   decimal.Decimal // > 0
	UnitPrice  decimal.Decimal // > 0, valor unitário no momento da venda
	Notes      string
	UserID     string
	SoldAt     time.Time // imutável, definido na criação

	// Campos calculados e persistidos na gravação (snapshot).
	Total       decimal.Decimal // quantidade × valor unitário
	CostTotal   decimal.Decimal // quantidade × custo base do produto na venda
	ProfitTotal decimal.Decimal // total - custo total
}

// RealizedMargin devolve a margem realizada (lucro/custo * 100); sempre
// derivada na leitura, nunca persistida. 0 quando o custo total é 0.
func (s *Sale) RealizedMargin() decimal.Decimal {
	return pricing.RealizedMargin(s.ProfitTotal, s.CostTotal)
}

// Freeze calcula e congela os totais da venda contra o custo unitário informado.
func (s *Sale) Freeze(unitCost decimal.Decimal) {
	s.Total = s.Quantity.Mul(s.UnitPrice)
	s.CostTotal = s.Quantity.Mul(unitCost)
	s.ProfitTotal = s.Total.Sub(s.CostTotal)
}

// FrozenUnitCost devolve o custo unitário congelado na venda
// (custo total / quantidade). Usado em edições para não reler o custo vivo
// do produto.
func (s *Sale) FrozenUnitCost() decimal.Decimal {
	if !s.Quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return s.CostTotal.Div(s.Quantity)
}
