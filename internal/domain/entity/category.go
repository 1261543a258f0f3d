package entity

import "time"

// Category categoriza produtos/serviços. Nome único (case-insensitive).
// "Excluir" é soft-delete (Active=false); categorias referenciadas por
// produtos ativos não podem ser excluídas.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
