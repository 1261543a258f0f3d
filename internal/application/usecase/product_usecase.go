package usecase

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

// Margem padrão quando o produto é criado sem margem explícita.
var defaultMargin = decimal.RequireFromString("30.00")

// ProductUseCase casos de uso CRUD e de precificação para produtos.
// Preço final e valor do lucro são sempre derivados, nunca persistidos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create cria um produto pertencente ao usuário autenticado. Valida custo e
// margem e exige categoria ativa no momento da gravação.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.NewFieldError("name", "o nome é obrigatório")
	}
	margin := defaultMargin
	if in.Margin != nil {
		margin = *in.Margin
	}
	if err := pricing.Validate(in.BaseCost, margin); err != nil {
		return nil, err
	}
	if err := uc.requireActiveCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		BaseCost:    in.BaseCost,
		Margin:      margin,
		CategoryID:  in.CategoryID,
		UserID:      userID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtém um produto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update atualiza um produto, revalidando custo/margem e categoria.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.NewFieldError("name", "o nome é obrigatório")
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.BaseCost != nil {
		product.BaseCost = *in.BaseCost
	}
	if in.Margin != nil {
		product.Margin = *in.Margin
	}
	if err := pricing.Validate(product.BaseCost, product.Margin); err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		if err := uc.requireActiveCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista produtos ativos com filtros e paginação.
func (uc *ProductUseCase) List(ctx context.Context, categoryID, search string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListActive(ctx, repository.ProductFilter{
		CategoryID: categoryID,
		Search:     search,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete desativa um produto (soft-delete).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(ctx, id)
}

// Simulate calcula o preço com uma margem hipotética, sem alterar o produto.
func (uc *ProductUseCase) Simulate(ctx context.Context, id string, in dto.SimulatePriceRequest) (*dto.SimulatePriceResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	newPrice, err := pricing.Simulate(product.BaseCost, in.Margin)
	if err != nil {
		return nil, err
	}
	return &dto.SimulatePriceResponse{
		ProductID: product.ID,
		BaseCost:  product.BaseCost,
		Margin:    in.Margin,
		NewPrice:  newPrice,
		NewProfit: newPrice.Sub(product.BaseCost),
	}, nil
}

// Price devolve o snapshot de preço do produto ativo (para formulários de venda).
func (uc *ProductUseCase) Price(ctx context.Context, id string) (*dto.ProductPriceResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, nil
	}
	var categoryName string
	if category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID); err == nil && category != nil {
		categoryName = category.Name
	}
	return &dto.ProductPriceResponse{
		ProductID:  product.ID,
		Name:       product.Name,
		Category:   categoryName,
		BaseCost:   product.BaseCost,
		Margin:     product.Margin,
		FinalPrice: product.FinalPrice(),
	}, nil
}

func (uc *ProductUseCase) requireActiveCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return domain.NewFieldError("category_id", "a categoria é obrigatória")
	}
	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil || !category.Active {
		return domain.NewFieldError("category_id", "a categoria deve existir e estar ativa")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		BaseCost:    p.BaseCost,
		Margin:      p.Margin,
		FinalPrice:  p.FinalPrice(),
		ProfitValue: p.ProfitValue(),
		CategoryID:  p.CategoryID,
		UserID:      p.UserID,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
