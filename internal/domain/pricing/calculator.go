// Package pricing implementa o cálculo de precificação por custo + margem
// (serviço de domínio, funções puras sobre decimais de ponto fixo).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
)

// MaxMargin limite superior da margem de lucro em percentual.
var MaxMargin = decimal.RequireFromString("999.99")

var oneHundred = decimal.NewFromInt(100)

// FinalPrice calcula o preço final: baseCost * (1 + margin/100).
// Assume entradas já validadas (ver Validate).
func FinalPrice(baseCost, margin decimal.Decimal) decimal.Decimal {
	return baseCost.Mul(decimal.NewFromInt(1).Add(margin.Div(oneHundred)))
}

// ProfitValue calcula o valor absoluto do lucro: FinalPrice - baseCost.
func ProfitValue(baseCost, margin decimal.Decimal) decimal.Decimal {
	return FinalPrice(baseCost, margin).Sub(baseCost)
}

// Simulate calcula o preço final com uma margem hipotética, sem alterar estado.
// Usado pelo simulador de precificação ("e se a margem fosse X?").
func Simulate(baseCost, hypotheticalMargin decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateMargin(hypotheticalMargin); err != nil {
		return decimal.Zero, err
	}
	return FinalPrice(baseCost, hypotheticalMargin), nil
}

// RealizedMargin calcula a margem realizada de uma venda:
// lucro/custo * 100, ou 0 quando o custo total é 0 (proteção contra divisão por zero).
func RealizedMargin(profitTotal, costTotal decimal.Decimal) decimal.Decimal {
	if !costTotal.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return profitTotal.Div(costTotal).Mul(oneHundred)
}

// OverallMargin calcula a margem agregada de um conjunto de vendas:
// sum(lucro)/sum(custo) * 100. Soma primeiro, divide depois — nunca a média
// das margens individuais, que distorceria a ponderação.
func OverallMargin(sumProfit, sumCost decimal.Decimal) decimal.Decimal {
	return RealizedMargin(sumProfit, sumCost)
}

// ValidateBaseCost rejeita custo base negativo.
func ValidateBaseCost(baseCost decimal.Decimal) error {
	if baseCost.IsNegative() {
		return domain.NewFieldError("base_cost", "o custo base deve ser maior ou igual a zero")
	}
	return nil
}

// ValidateMargin rejeita margem negativa ou acima de MaxMargin.
func ValidateMargin(margin decimal.Decimal) error {
	if margin.IsNegative() {
		return domain.NewFieldError("margin", "a margem de lucro deve ser maior ou igual a zero")
	}
	if margin.GreaterThan(MaxMargin) {
		return domain.NewFieldError("margin", "a margem de lucro não pode exceder 999.99")
	}
	return nil
}

// Validate valida o par custo/margem de um produto.
func Validate(baseCost, margin decimal.Decimal) error {
	if err := ValidateBaseCost(baseCost); err != nil {
		return err
	}
	return ValidateMargin(margin)
}
