package sales

import (
	"context"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados àquela tx. Garante que validar → calcular → persistir
// seja atômico: nenhuma venda parcialmente calculada fica visível.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}
