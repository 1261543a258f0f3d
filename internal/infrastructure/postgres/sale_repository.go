package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação do porto SaleRepository sobre PostgreSQL.
// Total, custo e lucro são gravados congelados; nunca recalculados em leitura.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de persistência de vendas. Aceita pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `s.id, s.product_id, s.quantity, s.unit_price, s.total, s.cost_total, s.profit_total, s.notes, s.user_id, s.sold_at`

// Create persiste uma nova venda com os totais congelados.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, quantity, unit_price, total, cost_total, profit_total, notes, user_id, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ProductID, sale.Quantity, sale.UnitPrice,
		sale.Total, sale.CostTotal, sale.ProfitTotal,
		sale.Notes, sale.UserID, sale.SoldAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtém uma venda por ID. Devolve (nil, nil) quando não existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales s WHERE s.id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice,
		&s.Total, &s.CostTotal, &s.ProfitTotal, &s.Notes, &s.UserID, &s.SoldAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Update atualiza quantidade, valor unitário, observações e os totais
// recongelados de uma venda. SoldAt é imutável.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	query := `
		UPDATE sales SET quantity = $2, unit_price = $3, total = $4, cost_total = $5,
			profit_total = $6, notes = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.Quantity, sale.UnitPrice,
		sale.Total, sale.CostTotal, sale.ProfitTotal, sale.Notes,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// saleFilterClause monta o WHERE compartilhado entre List e Totals.
// A junção com products serve aos filtros de categoria e busca por nome.
func saleFilterClause(filter repository.SaleFilter) (string, []any) {
	clause := " WHERE TRUE"
	args := []any{}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		clause += fmt.Sprintf(" AND s.product_id = $%d", len(args))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		clause += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clause += fmt.Sprintf(" AND s.sold_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clause += fmt.Sprintf(" AND s.sold_at < $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clause += fmt.Sprintf(" AND (p.name ILIKE $%d OR s.notes ILIKE $%d)", len(args), len(args))
	}
	return clause, args
}

// List lista vendas com filtros e paginação, da mais recente à mais antiga.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	clause, args := saleFilterClause(filter)
	query := `SELECT ` + saleColumns + ` FROM sales s JOIN products p ON p.id = s.product_id` + clause
	query += " ORDER BY s.sold_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice,
			&s.Total, &s.CostTotal, &s.ProfitTotal, &s.Notes, &s.UserID, &s.SoldAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Totals agrega o conjunto filtrado inteiro (não só a página): soma no banco,
// divide na aplicação.
func (r *SaleRepo) Totals(ctx context.Context, filter repository.SaleFilter) (*repository.SaleTotals, error) {
	clause, args := saleFilterClause(filter)
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(s.total), 0),
			COALESCE(SUM(s.cost_total), 0),
			COALESCE(SUM(s.profit_total), 0)
		FROM sales s JOIN products p ON p.id = s.product_id` + clause

	var t repository.SaleTotals
	err := r.q.QueryRow(ctx, query, args...).Scan(&t.Count, &t.Total, &t.CostTotal, &t.ProfitTotal)
	if err != nil {
		return nil, fmt.Errorf("sale totals: %w", err)
	}
	return &t, nil
}

// Delete remove uma venda (exclusão física; vendas corrigem-se apagando).
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}
