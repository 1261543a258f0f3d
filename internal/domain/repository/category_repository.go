package repository

import (
	"context"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
)

// CategoryFilter filtros de listagem de categorias.
type CategoryFilter struct {
	Search string // busca em nome/descrição
	Limit  int
	Offset int
}

// CategoryRepository define o porto de persistência para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByName busca por nome ignorando maiúsculas/minúsculas (unicidade).
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListActive(ctx context.Context, filter CategoryFilter) ([]*entity.Category, error)
	// CountActiveProducts conta produtos ativos vinculados (guarda referencial).
	CountActiveProducts(ctx context.Context, categoryID string) (int, error)
	// SoftDelete marca a categoria como inativa.
	SoftDelete(ctx context.Context, id string) error
}
