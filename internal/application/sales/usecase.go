package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/pricing"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

// SaleUseCase registra e consulta vendas. Total, custo e lucro são congelados
// contra o custo base vigente do produto no momento da venda (snapshot):
// alterações posteriores no custo não tocam vendas históricas.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewSaleUseCase constrói o caso de uso.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo, now: time.Now}
}

// Record valida, calcula os campos derivados e persiste a venda em uma única
// transação. Falha com FieldError identificando o campo ofensor.
func (uc *SaleUseCase) Record(ctx context.Context, userID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductID == "" {
		return nil, domain.NewFieldError("product_id", "o produto é obrigatório")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.NewFieldError("quantity", "a quantidade deve ser maior que zero")
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, domain.NewFieldError("unit_price", "o valor unitário deve ser maior que zero")
	}

	sale := &entity.Sale{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Notes:     in.Notes,
		UserID:    userID,
		SoldAt:    uc.now().UTC(),
	}

	// A leitura do produto e a gravação da venda compartilham a transação:
	// o custo congelado é exatamente o custo visto dentro dela.
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.Active {
			return domain.NewFieldError("product_id", "não é possível vender um produto inativo")
		}
		sale.Freeze(product.BaseCost)
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetByID obtém uma venda por ID.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// Update edita quantidade/valor/observações de uma venda. Os totais são
// recalculados a partir do custo unitário congelado na própria venda — nunca
// do custo vivo do produto, preservando o snapshot.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	frozenUnitCost := sale.FrozenUnitCost()
	if in.Quantity != nil {
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.NewFieldError("quantity", "a quantidade deve ser maior que zero")
		}
		sale.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		if !in.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.NewFieldError("unit_price", "o valor unitário deve ser maior que zero")
		}
		sale.UnitPrice = *in.UnitPrice
	}
	if in.Notes != nil {
		sale.Notes = *in.Notes
	}
	sale.Freeze(frozenUnitCost)
	if err := uc.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List lista vendas com filtros, devolvendo também os agregados do conjunto
// filtrado (soma antes, divide depois para a margem geral).
func (uc *SaleUseCase) List(ctx context.Context, filter repository.SaleFilter) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	totals, err := uc.saleRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Totals: dto.SaleTotalsResponse{
			Count:         totals.Count,
			Total:         totals.Total,
			CostTotal:     totals.CostTotal,
			ProfitTotal:   totals.ProfitTotal,
			OverallMargin: pricing.OverallMargin(totals.ProfitTotal, totals.CostTotal).Round(2),
		},
		Page: dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Delete remove uma venda.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return uc.saleRepo.Delete(ctx, id)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:             s.ID,
		ProductID:      s.ProductID,
		Quantity:       s.Quantity,
		UnitPrice:      s.UnitPrice,
		Total:          s.Total,
		CostTotal:      s.CostTotal,
		ProfitTotal:    s.ProfitTotal,
		RealizedMargin: s.RealizedMargin().Round(2),
		Notes:          s.Notes,
		UserID:         s.UserID,
		SoldAt:         s.SoldAt,
	}
}
