package repository

import (
	"context"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
)

// ProductFilter filtros de listagem de produtos.
type ProductFilter struct {
	CategoryID string
	Search     string // busca em nome/descrição
	Limit      int
	Offset     int
}

// ProductRepository define o porto de persistência para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListActive(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// SoftDelete marca o produto como inativo.
	SoftDelete(ctx context.Context, id string) error
}
