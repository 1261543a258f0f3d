package entity

import "time"

// User representa um usuário do sistema. Produtos, vendas e despesas pertencem
// a exatamente um usuário (exclusão em cascata no banco).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
