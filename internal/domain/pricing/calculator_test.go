package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/pricing"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// FinalPrice / ProfitValue — o cálculo central de precificação.
// Custo 100.00 com margem 30% deve dar exatamente 130.00 e lucro 30.00,
// sem resíduo de ponto flutuante.
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalPrice_CustoCemMargemTrinta(t *testing.T) {
	price := pricing.FinalPrice(dec(t, "100.00"), dec(t, "30.00"))
	assert.True(t, price.Equal(dec(t, "130.00")), "esperado 130.00, obtido %s", price)

	profit := pricing.ProfitValue(dec(t, "100.00"), dec(t, "30.00"))
	assert.True(t, profit.Equal(dec(t, "30.00")), "esperado 30.00, obtido %s", profit)
}

func TestFinalPrice_MargemZero(t *testing.T) {
	price := pricing.FinalPrice(dec(t, "50.00"), decimal.Zero)
	assert.True(t, price.Equal(dec(t, "50.00")), "margem 0 deve devolver o próprio custo")
}

func TestFinalPrice_CustoZero(t *testing.T) {
	price := pricing.FinalPrice(decimal.Zero, dec(t, "30.00"))
	assert.True(t, price.IsZero(), "custo 0 deve dar preço 0 independente da margem")
}

func TestFinalPrice_CasaDecimal(t *testing.T) {
	// 19.90 * 1.155 = 22.9845 — sem arredondar no cálculo, o chamador decide.
	price := pricing.FinalPrice(dec(t, "19.90"), dec(t, "15.50"))
	assert.True(t, price.Equal(dec(t, "22.9845")), "esperado 22.9845, obtido %s", price)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validações de custo e margem
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_CustoNegativoRejeitado(t *testing.T) {
	err := pricing.Validate(dec(t, "-1"), dec(t, "30"))
	require.Error(t, err)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "base_cost", fieldErr.Field)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidate_MargemNegativaRejeitada(t *testing.T) {
	err := pricing.Validate(dec(t, "10"), dec(t, "-0.01"))
	require.Error(t, err)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "margin", fieldErr.Field)
}

func TestValidate_MargemNoLimiteAceita(t *testing.T) {
	assert.NoError(t, pricing.Validate(dec(t, "10"), dec(t, "999.99")))
}

func TestValidate_MargemAcimaDoLimiteRejeitada(t *testing.T) {
	err := pricing.Validate(dec(t, "10"), dec(t, "1000.00"))
	require.Error(t, err)

	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "margin", fieldErr.Field)
}

func TestValidate_ZerosAceitos(t *testing.T) {
	assert.NoError(t, pricing.Validate(decimal.Zero, decimal.Zero))
}

// ──────────────────────────────────────────────────────────────────────────────
// Simulate — cálculo hipotético sem persistência
// ──────────────────────────────────────────────────────────────────────────────

func TestSimulate_MargemHipotetica(t *testing.T) {
	price, err := pricing.Simulate(dec(t, "100.00"), dec(t, "45.00"))
	require.NoError(t, err)
	assert.True(t, price.Equal(dec(t, "145.00")), "esperado 145.00, obtido %s", price)
}

func TestSimulate_MargemInvalidaFalha(t *testing.T) {
	_, err := pricing.Simulate(dec(t, "100.00"), dec(t, "-5"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// RealizedMargin / OverallMargin — margem sobre custo, soma antes de dividir
// ──────────────────────────────────────────────────────────────────────────────

func TestRealizedMargin_LucroSobreCusto(t *testing.T) {
	// lucro 60 sobre custo 100 → 60%
	m := pricing.RealizedMargin(dec(t, "60.00"), dec(t, "100.00"))
	assert.True(t, m.Equal(dec(t, "60")), "esperado 60, obtido %s", m)
}

func TestRealizedMargin_CustoZeroDevolveZero(t *testing.T) {
	m := pricing.RealizedMargin(dec(t, "50.00"), decimal.Zero)
	assert.True(t, m.IsZero(), "custo zero não pode dividir; margem deve ser 0")
}

func TestRealizedMargin_CustoNegativoDevolveZero(t *testing.T) {
	m := pricing.RealizedMargin(dec(t, "50.00"), dec(t, "-10.00"))
	assert.True(t, m.IsZero())
}

func TestOverallMargin_SomaAntesDeDividir(t *testing.T) {
	// Duas vendas: lucros 60 + 20 = 80, custos 100 + 300 = 400 → 20%.
	// A média das margens individuais (60% e 6.67%) daria ~33%, que seria errado.
	sumProfit := dec(t, "60.00").Add(dec(t, "20.00"))
	sumCost := dec(t, "100.00").Add(dec(t, "300.00"))
	m := pricing.OverallMargin(sumProfit, sumCost)
	assert.True(t, m.Equal(dec(t, "20")), "esperado 20, obtido %s", m)
}
