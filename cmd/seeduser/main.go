// seeduser cria (ou atualiza a senha de) um usuário administrador direto no banco.
// Útil para o primeiro acesso em instalações novas.
//
// Uso: go run ./cmd/seeduser -email admin@exemplo.com -password segredo [-name "Admin"]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/CordeiroLucas/gerenciador-fin/internal/infrastructure/postgres"
	"github.com/CordeiroLucas/gerenciador-fin/pkg/config"
)

func main() {
	email := flag.String("email", "", "e-mail do usuário a criar")
	password := flag.String("password", "", "senha em texto plano (será hasheada)")
	name := flag.String("name", "Administrador", "nome de exibição")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "uso: seeduser -email <email> -password <senha> [-name <nome>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexão ao PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DB); err != nil {
		fmt.Fprintf(os.Stderr, "migrações do banco: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash da senha: %v\n", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    name          = EXCLUDED.name,
		    updated_at    = EXCLUDED.updated_at`,
		uuid.New().String(), *email, string(hash), *name, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gravar usuário: %v\n", err)
		os.Exit(1)
	}

	if tag.RowsAffected() > 0 {
		fmt.Printf("usuário %s pronto\n", *email)
	}
}
