package dto

import "github.com/shopspring/decimal"

// SalesStatsDTO agregados gerais de vendas de uma janela.
// OverallMargin = sum(lucro)/sum(custo)*100 (soma antes, divide depois).
type SalesStatsDTO struct {
	SaleCount     int64           `json:"sale_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	Profit        decimal.Decimal `json:"profit"`
	OverallMargin decimal.Decimal `json:"overall_margin"`
}

// CategorySalesDTO análise de vendas por categoria.
type CategorySalesDTO struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	SaleCount    int64           `json:"sale_count"`
	ProductCount int64           `json:"product_count,omitempty"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	Margin       decimal.Decimal `json:"margin"`
}

// ProductSalesDTO análise de vendas por produto.
type ProductSalesDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	BaseCost     decimal.Decimal `json:"base_cost"`
	TargetMargin decimal.Decimal `json:"target_margin"`
	SaleCount    int64           `json:"sale_count"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	Margin       decimal.Decimal `json:"margin"`
}

// DailyPointDTO ponto da série diária (dias sem atividade aparecem com zero).
type DailyPointDTO struct {
	Date    string          `json:"date"` // dd/mm
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// RevenueReportResponse relatório de receita e lucro por período pré-definido.
type RevenueReportResponse struct {
	Period      string             `json:"period"`
	PeriodLabel string             `json:"period_label"`
	Stats       SalesStatsDTO      `json:"stats"`
	ByCategory  []CategorySalesDTO `json:"by_category"`
	TopProducts []ProductSalesDTO  `json:"top_products"`
	DailySeries []DailyPointDTO    `json:"daily_series"`
}

// DetailedReportResponse relatório detalhado com filtros arbitrários.
type DetailedReportResponse struct {
	Stats      SalesStatsDTO      `json:"stats"`
	ByProduct  []ProductSalesDTO  `json:"by_product"`
	ByCategory []CategorySalesDTO `json:"by_category"`
	From       string             `json:"from,omitempty"`
	To         string             `json:"to,omitempty"`
	CategoryID string             `json:"category_id,omitempty"`
	ProductID  string             `json:"product_id,omitempty"`
}
