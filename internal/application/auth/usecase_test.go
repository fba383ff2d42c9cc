package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/pkg/jwt"
	"github.com/famadiop1025/Bokkdej/pkg/logger"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) FindByPhone(p string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Phone == p {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) ListStaff(restaurantID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		switch u.Role {
		case entity.RoleAdmin, entity.RolePersonnel, entity.RoleChef:
			if restaurantID == "" || u.RestaurantID == restaurantID {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateFCMToken(userID, token string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.FCMToken = token
	return nil
}

func newFixture() (*UseCase, *memUserRepo) {
	repo := &memUserRepo{users: map[string]*entity.User{}}
	uc := NewUseCase(repo, TokenConfig{Secret: "test-secret", Issuer: "test", ExpMinutes: 15}, "221",
		logger.New(logger.Config{Env: "production", Level: "error"}))
	return uc, repo
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// ─────────────────────────────────────────────
// Inscription et connexion classiques
// ─────────────────────────────────────────────

func TestRegister_PuisLogin(t *testing.T) {
	uc, _ := newFixture()

	reg, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "awa",
		Phone:    "77 123 45 67",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, reg.User.Role)
	assert.Equal(t, "221771234567", reg.User.Phone)

	// Le jeton émis porte bien l'identité du compte.
	userID, role, _, err := jwt.Parse("test-secret", reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)
	assert.Equal(t, entity.RoleClient, role)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Username: "awa", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegister_NumeroDuplique(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "awa", Phone: "771234567", Password: "secret"})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "moussa", Phone: "771234567", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_MauvaisMotDePasse(t *testing.T) {
	uc, repo := newFixture()
	repo.users["u1"] = &entity.User{ID: "u1", Username: "awa", PasswordHash: mustHash(t, "secret"), Role: entity.RoleClient, Actif: true}

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "awa", Password: "faux"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Identifiant inconnu : même erreur, pas d'oracle.
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "inconnu", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CompteInactifRefuse(t *testing.T) {
	uc, repo := newFixture()
	repo.users["u1"] = &entity.User{ID: "u1", Username: "awa", PasswordHash: mustHash(t, "secret"), Role: entity.RoleClient, Actif: false}

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "awa", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ─────────────────────────────────────────────
// Connexion du personnel par PIN
// ─────────────────────────────────────────────

func TestPinLogin_CodeDedie(t *testing.T) {
	uc, repo := newFixture()
	repo.users["c1"] = &entity.User{ID: "c1", Username: "chef", Phone: "221770001111", PinCode: "4321", Role: entity.RoleChef, RestaurantID: "r1", Actif: true}

	resp, err := uc.PinLogin(context.Background(), dto.PinLoginRequest{Pin: "4321"})
	require.NoError(t, err)
	assert.Equal(t, "c1", resp.User.ID)

	// Le jeton porte l'affiliation restaurant du personnel.
	_, role, restaurantID, err := jwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleChef, role)
	assert.Equal(t, "r1", restaurantID)
}

func TestPinLogin_RepliSurFinDeNumero(t *testing.T) {
	uc, repo := newFixture()
	repo.users["p1"] = &entity.User{ID: "p1", Username: "serveuse", Phone: "221770005678", Role: entity.RolePersonnel, Actif: true}

	resp, err := uc.PinLogin(context.Background(), dto.PinLoginRequest{Pin: "5678", Phone: "770005678"})
	require.NoError(t, err)
	assert.Equal(t, "p1", resp.User.ID)
}

func TestPinLogin_ClientRefuse(t *testing.T) {
	uc, repo := newFixture()
	repo.users["u1"] = &entity.User{ID: "u1", Username: "awa", Phone: "221771234567", PinCode: "4567", Role: entity.RoleClient, Actif: true}

	_, err := uc.PinLogin(context.Background(), dto.PinLoginRequest{Pin: "4567", Phone: "771234567"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPinLogin_InactifRefuse(t *testing.T) {
	uc, repo := newFixture()
	repo.users["c1"] = &entity.User{ID: "c1", Username: "chef", Phone: "221770001111", PinCode: "4321", Role: entity.RoleChef, Actif: false}

	_, err := uc.PinLogin(context.Background(), dto.PinLoginRequest{Pin: "4321"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPinLogin_FormatInvalide(t *testing.T) {
	uc, _ := newFixture()

	_, err := uc.PinLogin(context.Background(), dto.PinLoginRequest{Pin: "12"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetFCMToken(t *testing.T) {
	uc, repo := newFixture()
	repo.users["u1"] = &entity.User{ID: "u1", Role: entity.RoleClient, Actif: true}

	require.NoError(t, uc.SetFCMToken(context.Background(), "u1", dto.SetFCMTokenRequest{FCMToken: "tok"}))
	assert.Equal(t, "tok", repo.users["u1"].FCMToken)

	err := uc.SetFCMToken(context.Background(), "u1", dto.SetFCMTokenRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
