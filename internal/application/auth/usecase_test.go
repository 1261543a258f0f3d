package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/auth"
	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	pkgjwt "github.com/CordeiroLucas/gerenciador-fin/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User // keyed por email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	key := strings.ToLower(u.Email)
	if _, exists := r.users[key]; exists {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.users[key] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func testAuthUC() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "unit-test-secret",
		ExpMinutes: 60,
		Issuer:     "gerenciador-fin-test",
	})
	return uc, repo
}

func TestRegister_HasheiaSenhaENaoAVaza(t *testing.T) {
	uc, repo := testAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "dona@loja.com",
		Password: "senha-super-secreta",
		Name:     "Dona da Loja",
	})
	require.NoError(t, err)
	assert.Equal(t, "dona@loja.com", out.Email)
	assert.Equal(t, "Dona da Loja", out.Name)

	stored, err := repo.GetByEmail(context.Background(), "dona@loja.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "senha-super-secreta", stored.PasswordHash, "a senha nunca é persistida em texto plano")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := testAuthUC()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dona@loja.com", Password: "senha-super-secreta",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dona@loja.com", Password: "outra-senha",
	})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestRegister_NomeVazioUsaEmail(t *testing.T) {
	uc, _ := testAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dona@loja.com", Password: "senha-super-secreta",
	})
	require.NoError(t, err)
	assert.Equal(t, "dona@loja.com", out.Name)
}

func TestLogin_TokenValidoComUserID(t *testing.T) {
	uc, _ := testAuthUC()
	created, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dona@loja.com", Password: "senha-super-secreta",
	})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "dona@loja.com", Password: "senha-super-secreta",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, created.ID, out.User.ID)

	userID, err := pkgjwt.Parse("unit-test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

func TestLogin_SenhaErrada(t *testing.T) {
	uc, _ := testAuthUC()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "dona@loja.com", Password: "senha-super-secreta",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "dona@loja.com", Password: "senha-errada",
	})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := testAuthUC()
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ninguem@loja.com", Password: "qualquer",
	})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
