package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
)

// SaleFilter filtros de listagem de vendas. From/To delimitam a janela de
// tempo (inclusivo/exclusivo); nil significa sem limite.
type SaleFilter struct {
	ProductID  string
	CategoryID string
	From       *time.Time
	To         *time.Time
	Search     string // busca em nome do produto/observações
	Limit      int
	Offset     int
}

// SaleTotals agregados da listagem (soma sobre o conjunto filtrado inteiro,
// não só a página).
type SaleTotals struct {
	Count       int
	Total       decimal.Decimal
	CostTotal   decimal.Decimal
	ProfitTotal decimal.Decimal
}

// SaleRepository define o porto de persistência para Sale (DIP).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	Totals(ctx context.Context, filter SaleFilter) (*SaleTotals, error)
	Delete(ctx context.Context, id string) error
}
