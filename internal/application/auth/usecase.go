// Package auth inscription et connexion des comptes : mot de passe pour les
// clients, PIN pour le personnel en cuisine.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
	"github.com/famadiop1025/Bokkdej/pkg/jwt"
	"github.com/famadiop1025/Bokkdej/pkg/logger"
	"github.com/famadiop1025/Bokkdej/pkg/phone"
)

// TokenConfig paramètres de génération des JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase cas d'usage d'authentification.
type UseCase struct {
	users       repository.UserRepository
	token       TokenConfig
	countryCode string
	log         *logger.Logger
}

// NewUseCase construit le cas d'usage.
func NewUseCase(users repository.UserRepository, token TokenConfig, countryCode string, log *logger.Logger) *UseCase {
	return &UseCase{users: users, token: token, countryCode: countryCode, log: log}
}

// Register crée un compte client. Le numéro est normalisé et doit être unique.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	if req.Username == "" {
		return nil, domain.NewValidationError("username", "identifiant requis")
	}
	if len(req.Password) < 4 {
		return nil, domain.NewValidationError("password", "mot de passe trop court")
	}
	normalized := phone.Normalize(req.Phone, uc.countryCode)
	if normalized == "" {
		return nil, domain.NewValidationError("phone", "numéro de téléphone requis")
	}
	if _, err := uc.users.FindByUsername(req.Username); err == nil {
		return nil, domain.ErrDuplicate
	}
	if _, err := uc.users.FindByPhone(normalized); err == nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Phone:        normalized,
		PasswordHash: string(hash),
		Role:         entity.RoleClient,
		Actif:        true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(u); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", u.ID).Msg("compte client créé")
	return uc.issueToken(u)
}

// Login connexion par identifiant et mot de passe. La même erreur couvre
// identifiant inconnu et mot de passe faux.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.users.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !u.Actif {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(u)
}

// PinLogin connexion rapide du personnel en cuisine. Le PIN dédié du compte
// prime ; à défaut, les quatre derniers chiffres du numéro font office de PIN
// de secours. Réservé aux rôles du personnel, comptes actifs seulement.
func (uc *UseCase) PinLogin(ctx context.Context, req dto.PinLoginRequest) (*dto.LoginResponse, error) {
	if len(req.Pin) != 4 {
		return nil, domain.NewValidationError("pin", "PIN à 4 chiffres requis")
	}

	var candidates []*entity.User
	if req.Phone != "" {
		normalized := phone.Normalize(req.Phone, uc.countryCode)
		u, err := uc.users.FindByPhone(normalized)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrUnauthorized
			}
			return nil, err
		}
		candidates = []*entity.User{u}
	} else {
		staff, err := uc.users.ListStaff("")
		if err != nil {
			return nil, err
		}
		candidates = staff
	}

	for _, u := range candidates {
		if !isStaffRole(u.Role) || !u.Actif {
			continue
		}
		if matchesPin(u, req.Pin) {
			uc.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("connexion du personnel par PIN")
			return uc.issueToken(u)
		}
	}
	return nil, domain.ErrUnauthorized
}

// SetFCMToken enregistre le jeton push du compte connecté.
func (uc *UseCase) SetFCMToken(ctx context.Context, userID string, req dto.SetFCMTokenRequest) error {
	if req.FCMToken == "" {
		return domain.NewValidationError("fcm_token", "jeton requis")
	}
	return uc.users.UpdateFCMToken(userID, req.FCMToken)
}

// Me retourne le compte connecté.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(u)
	return &resp, nil
}

func (uc *UseCase) issueToken(u *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.token.Secret, u.ID, u.Role, u.RestaurantID, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.ToUserResponse(u)}, nil
}

func isStaffRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RolePersonnel, entity.RoleChef:
		return true
	}
	return false
}

// matchesPin compare le PIN au code dédié du compte, sinon aux quatre
// derniers chiffres du numéro.
func matchesPin(u *entity.User, pin string) bool {
	if u.PinCode != "" {
		return u.PinCode == pin
	}
	if len(u.Phone) >= 4 {
		return u.Phone[len(u.Phone)-4:] == pin
	}
	return false
}
