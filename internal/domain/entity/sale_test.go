package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestFreeze_CongelaTotais(t *testing.T) {
	// Venda de 2 unidades a 80.00 com custo unitário 50.00:
	// total 160.00, custo 100.00, lucro 60.00, margem realizada 60%.
	sale := &entity.Sale{
		Quantity:  mustDec(t, "2"),
		UnitPrice: mustDec(t, "80.00"),
	}
	sale.Freeze(mustDec(t, "50.00"))

	assert.True(t, sale.Total.Equal(mustDec(t, "160.00")), "total: %s", sale.Total)
	assert.True(t, sale.CostTotal.Equal(mustDec(t, "100.00")), "custo: %s", sale.CostTotal)
	assert.True(t, sale.ProfitTotal.Equal(mustDec(t, "60.00")), "lucro: %s", sale.ProfitTotal)
	assert.True(t, sale.RealizedMargin().Equal(mustDec(t, "60")), "margem: %s", sale.RealizedMargin())
}

func TestFreeze_QuantidadeFracionada(t *testing.T) {
	// 1.5 kg a 12.00 com custo 8.00/kg.
	sale := &entity.Sale{
		Quantity:  mustDec(t, "1.5"),
		UnitPrice: mustDec(t, "12.00"),
	}
	sale.Freeze(mustDec(t, "8.00"))

	assert.True(t, sale.Total.Equal(mustDec(t, "18.00")))
	assert.True(t, sale.CostTotal.Equal(mustDec(t, "12.00")))
	assert.True(t, sale.ProfitTotal.Equal(mustDec(t, "6.00")))
}

func TestRealizedMargin_CustoZero(t *testing.T) {
	sale := &entity.Sale{
		Quantity:  mustDec(t, "3"),
		UnitPrice: mustDec(t, "10.00"),
	}
	sale.Freeze(decimal.Zero)

	assert.True(t, sale.ProfitTotal.Equal(mustDec(t, "30.00")))
	assert.True(t, sale.RealizedMargin().IsZero(), "custo zero deve dar margem 0, nunca divisão por zero")
}

func TestFrozenUnitCost_RecuperaCustoDaVenda(t *testing.T) {
	sale := &entity.Sale{
		Quantity:  mustDec(t, "4"),
		UnitPrice: mustDec(t, "25.00"),
	}
	sale.Freeze(mustDec(t, "15.00"))

	assert.True(t, sale.FrozenUnitCost().Equal(mustDec(t, "15.00")))
}

func TestFrozenUnitCost_QuantidadeZeraSeguro(t *testing.T) {
	sale := &entity.Sale{Quantity: decimal.Zero, CostTotal: mustDec(t, "10.00")}
	assert.True(t, sale.FrozenUnitCost().IsZero())
}

func TestFreeze_EdicaoPreservaSnapshot(t *testing.T) {
	// Editar a quantidade recalcula contra o custo congelado da venda,
	// não contra o custo vivo do produto.
	sale := &entity.Sale{
		Quantity:  mustDec(t, "2"),
		UnitPrice: mustDec(t, "80.00"),
	}
	sale.Freeze(mustDec(t, "50.00"))

	frozen := sale.FrozenUnitCost()
	sale.Quantity = mustDec(t, "3")
	sale.Freeze(frozen)

	assert.True(t, sale.Total.Equal(mustDec(t, "240.00")))
	assert.True(t, sale.CostTotal.Equal(mustDec(t, "150.00")))
	assert.True(t, sale.ProfitTotal.Equal(mustDec(t, "90.00")))
}
