package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

var titleCaser = cases.Title(language.BrazilianPortuguese)

// CategoryUseCase casos de uso CRUD para categorias. Nome único
// (case-insensitive); exclusão é soft-delete guardada por produtos ativos.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase constrói o caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// normalizeName apara espaços e aplica Title Case, como o formulário original.
func normalizeName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}

// Create cria uma categoria. Falha com ErrDuplicate se o nome já existir
// (comparação case-insensitive).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := normalizeName(in.Name)
	if name == "" {
		return nil, domain.NewFieldError("name", "o nome é obrigatório")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtém uma categoria por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Update atualiza uma categoria, mantendo a unicidade do nome.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := normalizeName(*in.Name)
		if name == "" {
			return nil, domain.NewFieldError("name", "o nome é obrigatório")
		}
		if !strings.EqualFold(name, category.Name) {
			existing, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != category.ID {
				return nil, domain.ErrDuplicate
			}
		}
		category.Name = name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Active != nil {
		category.Active = *in.Active
	}
	category.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista categorias ativas com busca e paginação.
func (uc *CategoryUseCase) List(ctx context.Context, search string, limit, offset int) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.ListActive(ctx, repository.CategoryFilter{
		Search: search,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete desativa uma categoria (soft-delete). Falha com CategoryInUseError
// — incluindo a contagem de dependentes — se houver produtos ativos vinculados.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.repo.CountActiveProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.CategoryInUseError{Count: count}
	}
	return uc.repo.SoftDelete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
