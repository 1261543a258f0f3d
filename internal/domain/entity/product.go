package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/pricing"
)

// Product representa um produto ou serviço precificado por custo + margem.
// FinalPrice e ProfitValue são sempre derivados, nunca persistidos.
type Product struct {
	ID          string
	Name        string
	Description string
	BaseCost    decimal.Decimal // custo base (>= 0)
	Margin      decimal.Decimal // margem de lucro em percentual (0 a 999.99, padrão 30.00)
	CategoryID  string
	UserID      string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FinalPrice devolve o preço final: base_cost * (1 + margem/100).
func (p *Product) FinalPrice() decimal.Decimal {
	return pricing.FinalPrice(p.BaseCost, p.Margin)
}

// ProfitValue devolve o valor absoluto do lucro sobre o custo base.
func (p *Product) ProfitValue() decimal.Decimal {
	return pricing.ProfitValue(p.BaseCost, p.Margin)
}
