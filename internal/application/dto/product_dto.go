package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para criar um produto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	BaseCost    decimal.Decimal `json:"base_cost"`
	Margin      *decimal.Decimal `json:"margin"` // nil = padrão 30.00
	CategoryID  string          `json:"category_id" validate:"required"`
}

// UpdateProductRequest entrada para atualizar um produto.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	BaseCost    *decimal.Decimal `json:"base_cost"`
	Margin      *decimal.Decimal `json:"margin"`
	CategoryID  *string          `json:"category_id"`
	Active      *bool            `json:"active"`
}

// ProductResponse saída de um produto. FinalPrice e ProfitValue são derivados.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BaseCost    decimal.Decimal `json:"base_cost"`
	Margin      decimal.Decimal `json:"margin"`
	FinalPrice  decimal.Decimal `json:"final_price"`
	ProfitValue decimal.Decimal `json:"profit_value"`
	CategoryID  string          `json:"category_id"`
	UserID      string          `json:"user_id"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SimulatePriceRequest entrada da simulação de precificação ("e se").
type SimulatePriceRequest struct {
	Margin decimal.Decimal `json:"margin"`
}

// SimulatePriceResponse resultado da simulação; nada é persistido.
type SimulatePriceResponse struct {
	ProductID string          `json:"product_id"`
	BaseCost  decimal.Decimal `json:"base_cost"`
	Margin    decimal.Decimal `json:"margin"`
	NewPrice  decimal.Decimal `json:"new_price"`
	NewProfit decimal.Decimal `json:"new_profit"`
}

// ProductPriceResponse snapshot de preço para formulários de venda.
type ProductPriceResponse struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	BaseCost   decimal.Decimal `json:"base_cost"`
	Margin     decimal.Decimal `json:"margin"`
	FinalPrice decimal.Decimal `json:"final_price"`
}
