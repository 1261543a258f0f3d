package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada para registrar uma venda.
type RecordSaleRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes"`
}

// UpdateSaleRequest entrada para editar uma venda. Os totais são recalculados
// a partir do custo unitário congelado na venda, nunca do produto vivo.
type UpdateSaleRequest struct {
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Notes     *string          `json:"notes"`
}

// SaleResponse saída de uma venda. RealizedMargin é sempre derivada na leitura.
type SaleResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Total          decimal.Decimal `json:"total"`
	CostTotal      decimal.Decimal `json:"cost_total"`
	ProfitTotal    decimal.Decimal `json:"profit_total"`
	RealizedMargin decimal.Decimal `json:"realized_margin"`
	Notes          string          `json:"notes"`
	UserID         string          `json:"user_id"`
	SoldAt         time.Time       `json:"sold_at"`
}

// SaleTotalsResponse agregados do conjunto filtrado (soma antes, divide depois).
type SaleTotalsResponse struct {
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
	CostTotal     decimal.Decimal `json:"cost_total"`
	ProfitTotal   decimal.Decimal `json:"profit_total"`
	OverallMargin decimal.Decimal `json:"overall_margin"`
}

// SaleListResponse lista paginada de vendas com totais do filtro.
type SaleListResponse struct {
	Items  []SaleResponse     `json:"items"`
	Totals SaleTotalsResponse `json:"totals"`
	Page   PageResponse       `json:"page"`
}
