package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/application/sales"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória — suficientes para exercitar o fluxo transacional
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[string]*entity.Sale{}}
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) Update(_ context.Context, s *entity.Sale) error {
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) List(_ context.Context, _ repository.SaleFilter) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSaleRepo) Totals(_ context.Context, _ repository.SaleFilter) (*repository.SaleTotals, error) {
	totals := &repository.SaleTotals{
		Total:       decimal.Zero,
		CostTotal:   decimal.Zero,
		ProfitTotal: decimal.Zero,
	}
	for _, s := range r.sales {
		totals.Count++
		totals.Total = totals.Total.Add(s.Total)
		totals.CostTotal = totals.CostTotal.Add(s.CostTotal)
		totals.ProfitTotal = totals.ProfitTotal.Add(s.ProfitTotal)
	}
	return totals, nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id string) error {
	delete(r.sales, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) ListActive(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, id string) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

// fakeTxRunner executa a função diretamente contra os fakes (sem transação real).
type fakeTxRunner struct {
	saleRepo    *fakeSaleRepo
	productRepo *fakeProductRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	return fn(tr.saleRepo, tr.productRepo)
}

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func setup(t *testing.T) (*sales.SaleUseCase, *fakeSaleRepo, *fakeProductRepo) {
	t.Helper()
	saleRepo := newFakeSaleRepo()
	productRepo := newFakeProductRepo()
	uc := sales.NewSaleUseCase(&fakeTxRunner{saleRepo: saleRepo, productRepo: productRepo}, saleRepo)
	return uc, saleRepo, productRepo
}

func seedProduct(t *testing.T, repo *fakeProductRepo, baseCost string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:       "prod-1",
		Name:     "Camiseta",
		BaseCost: d(t, baseCost),
		Margin:   d(t, "30.00"),
		Active:   true,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Record — congelamento dos totais
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_CongelaTotaisContraCustoVigente(t *testing.T) {
	uc, _, productRepo := setup(t)
	seedProduct(t, productRepo, "50.00")

	out, err := uc.Record(context.Background(), "user-1", dto.RecordSaleRequest{
		ProductID: "prod-1",
		Quantity:  d(t, "2"),
		UnitPrice: d(t, "80.00"),
	})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(d(t, "160.00")), "total: %s", out.Total)
	assert.True(t, out.CostTotal.Equal(d(t, "100.00")), "custo: %s", out.CostTotal)
	assert.True(t, out.ProfitTotal.Equal(d(t, "60.00")), "lucro: %s", out.ProfitTotal)
	assert.True(t, out.RealizedMargin.Equal(d(t, "60")), "margem: %s", out.RealizedMargin)
	assert.Equal(t, "user-1", out.UserID)
}

func TestRecord_SnapshotImuneAMudancaDeCusto(t *testing.T) {
	uc, _, productRepo := setup(t)
	product := seedProduct(t, productRepo, "50.00")

	out, err := uc.Record(context.Background(), "user-1", dto.RecordSaleRequest{
		ProductID: "prod-1",
		Quantity:  d(t, "2"),
		UnitPrice: d(t, "80.00"),
	})
	require.NoError(t, err)

	// O custo do produto dobra depois da venda.
	product.BaseCost = d(t, "100.00")
	require.NoError(t, productRepo.Update(context.Background(), product))

	got, err := uc.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.True(t, got.CostTotal.Equal(d(t, "100.00")), "custo congelado não deve acompanhar o produto")
	assert.True(t, got.ProfitTotal.Equal(d(t, "60.00")))
}

func TestRecord_ProdutoInexistente(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.Record(context.Background(), "user-1", dto.RecordSaleRequest{
		ProductID: "nao-existe",
		Quantity:  d(t, "1"),
		UnitPrice: d(t, "10.00"),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecord_ProdutoInativoRejeitado(t *testing.T) {
	uc, _, productRepo := setup(t)
	p := seedProduct(t, productRepo, "50.00")
	p.Active = false
	require.NoError(t, productRepo.Update(context.Background(), p))

	_, err := uc.Record(context.Background(), "user-1", dto.RecordSaleRequest{
		ProductID: "prod-1",
		Quantity:  d(t, "1"),
		UnitPrice: d(t, "65.00"),
	})
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "product_id", fieldErr.Field)
}

func TestRecord_ValidaQuantidadeEValor(t *testing.T) {
	uc, _, productRepo := setup(t)
	seedProduct(t, productRepo, "50.00")

	cases := []struct {
		name      string
		quantity  string
		unitPrice string
		field     string
	}{
		{"quantidade zero", "0", "10.00", "quantity"},
		{"quantidade negativa", "-1", "10.00", "quantity"},
		{"valor zero", "1", "0", "unit_price"},
		{"valor negativo", "1", "-5.00", "unit_price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Record(context.Background(), "user-1", dto.RecordSaleRequest{
				ProductID: "prod-1",
				Quantity:  d(t, tc.quantity),
				UnitPrice: d(t, tc.unitPrice),
			})
			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — recalcula com o custo congelado da própria venda
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_RecalculaComCustoCongelado(t *testing.T) {
	uc, _, productRepo := setup(t)
	product := seedProduct(t, productRepo, "50.00")

	out, err := uc.Record(context.Background(), "user-1", dto.RecordSaleRequest{
		ProductID: "prod-1",
		Quantity:  d(t, "2"),
		UnitPrice: d(t, "80.00"),
	})
	require.NoError(t, err)

	// Custo do produto muda; a edição deve ignorar o custo vivo.
	product.BaseCost = d(t, "999.00")
	require.NoError(t, productRepo.Update(context.Background(), product))

	qty := d(t, "3")
	updated, err := uc.Update(context.Background(), out.ID, dto.UpdateSaleRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.True(t, updated.Total.Equal(d(t, "240.00")))
	assert.True(t, updated.CostTotal.Equal(d(t, "150.00")), "3 × custo congelado 50.00")
	assert.True(t, updated.ProfitTotal.Equal(d(t, "90.00")))
}

func TestUpdate_VendaInexistenteDevolveNil(t *testing.T) {
	uc, _, _ := setup(t)
	qty := d(t, "2")
	out, err := uc.Update(context.Background(), "nao-existe", dto.UpdateSaleRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// List — agregados soma-antes-divide
// ──────────────────────────────────────────────────────────────────────────────

func TestList_MargemGeralPonderada(t *testing.T) {
	uc, _, productRepo := setup(t)
	seedProduct(t, productRepo, "50.00")
	cheap := &entity.Product{ID: "prod-2", Name: "Caneca", BaseCost: d(t, "300.00"), Margin: d(t, "10.00"), Active: true}
	require.NoError(t, productRepo.Create(context.Background(), cheap))

	// Venda 1: lucro 60, custo 100. Venda 2: lucro 20, custo 300.
	_, err := uc.Record(context.Background(), "user-1", dto.RecordSaleRequest{
		ProductID: "prod-1", Quantity: d(t, "2"), UnitPrice: d(t, "80.00"),
	})
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "user-1", dto.RecordSaleRequest{
		ProductID: "prod-2", Quantity: d(t, "1"), UnitPrice: d(t, "320.00"),
	})
	require.NoError(t, err)

	out, err := uc.List(context.Background(), repository.SaleFilter{Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Totals.Count)
	assert.True(t, out.Totals.Total.Equal(d(t, "480.00")))
	assert.True(t, out.Totals.CostTotal.Equal(d(t, "400.00")))
	assert.True(t, out.Totals.ProfitTotal.Equal(d(t, "80.00")))
	// 80/400 = 20% — nunca a média das margens individuais (60% e ~6.67%).
	assert.True(t, out.Totals.OverallMargin.Equal(d(t, "20")), "margem geral: %s", out.Totals.OverallMargin)
}

func TestDelete_VendaInexistente(t *testing.T) {
	uc, _, _ := setup(t)
	err := uc.Delete(context.Background(), "nao-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
