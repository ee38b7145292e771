package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitakita/inventory-api/internal/application/auth"
	"github.com/kitakita/inventory-api/internal/application/dto"
	"github.com/kitakita/inventory-api/internal/domain"
	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del flujo de autenticación: signup, login y perfil. El repo falso
// en memoria reemplaza la capa Postgres; lo que se verifica es el hasheo
// bcrypt, la generación/validación del JWT y los errores de dominio.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateLastLogin(id string, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

var testJWTCfg = auth.JWTConfig{
	Secret:     "clave-de-prueba-no-usar-en-produccion",
	ExpMinutes: 60,
	Issuer:     "inventory-api-test",
}

func newAuthFixture() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return auth.NewAuthUseCase(repo, testJWTCfg), repo
}

func signupReq() dto.SignupRequest {
	return dto.SignupRequest{
		Email:    "ana@tienda.co",
		Password: "secreta123",
		FullName: "Ana Rodríguez",
	}
}

func TestSignup_CreaUsuarioYDevuelveSesion(t *testing.T) {
	uc, repo := newAuthFixture()

	resp, err := uc.Signup(signupReq())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token, "el signup devuelve sesión iniciada")
	assert.Equal(t, "ana@tienda.co", resp.User.Email)
	assert.Equal(t, entity.RoleUser, resp.User.Role, "los usuarios nuevos nacen ROLE_USER")

	stored := repo.users[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.True(t, stored.IsActive)

	userID, role, err := jwt.Parse(testJWTCfg.Secret, resp.Token)
	require.NoError(t, err, "el token emitido debe validar contra el mismo secret")
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, entity.RoleUser, role)
}

func TestSignup_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Signup(signupReq())
	require.NoError(t, err)

	req := signupReq()
	req.Email = "ANA@tienda.co " // mismo email, distinto casing y espacios
	_, err = uc.Signup(req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignup_ValidaEntrada(t *testing.T) {
	uc, _ := newAuthFixture()

	req := signupReq()
	req.Password = "corta"
	_, err := uc.Signup(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password de menos de 8 caracteres se rechaza")

	req = signupReq()
	req.Email = "no-es-un-email"
	_, err = uc.Signup(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc, repo := newAuthFixture()
	created, err := uc.Signup(signupReq())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, created.User.ID, resp.User.ID)
	require.NotNil(t, resp.User.LastLogin, "el login registra LastLogin")
	assert.NotNil(t, repo.users[created.User.ID].LastLogin)
}

func TestLogin_MismoErrorParaEmailYPasswordMalos(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.Signup(signupReq())
	require.NoError(t, err)

	_, errBadPass := uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "incorrecta"})
	_, errNoUser := uc.Login(dto.LoginRequest{Email: "nadie@tienda.co", Password: "secreta123"})

	// El login no debe revelar qué emails existen.
	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := newAuthFixture()
	created, err := uc.Signup(signupReq())
	require.NoError(t, err)
	repo.users[created.User.ID].IsActive = false

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe_DevuelvePerfil(t *testing.T) {
	uc, _ := newAuthFixture()
	created, err := uc.Signup(signupReq())
	require.NoError(t, err)

	me, err := uc.Me(created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Rodríguez", me.FullName)

	_, err = uc.Me("id-inexistente")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
