package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/entity"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implémentation de UserRepository sur PostgreSQL (pool ou tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, coalesce(phone, ''), password_hash, coalesce(pin_code, ''), role, coalesce(restaurant_id, ''), coalesce(fcm_token, ''), actif, created_at, updated_at`

// Create persiste un nouveau compte.
func (r *UserRepo) Create(u *entity.User) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO users (id, username, phone, password_hash, pin_code, role, restaurant_id, fcm_token, actif, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Username, nullable(u.Phone), u.PasswordHash, nullable(u.PinCode),
		u.Role, nullable(u.RestaurantID), nullable(u.FCMToken), u.Actif, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID lit un compte par identifiant.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getWhere(`id = $1`, id)
}

// FindByUsername lit un compte par nom d'utilisateur.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	return r.getWhere(`username = $1`, username)
}

// FindByPhone lit un compte par numéro de téléphone normalisé.
func (r *UserRepo) FindByPhone(phone string) (*entity.User, error) {
	return r.getWhere(`phone = $1`, phone)
}

// ListStaff comptes du personnel, restreints au restaurant si renseigné.
func (r *UserRepo) ListStaff(restaurantID string) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+userColumns+` FROM users
		 WHERE role IN ('admin', 'personnel', 'chef')
		   AND ($1 = '' OR restaurant_id = $1)`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// UpdateFCMToken enregistre le jeton push du compte.
func (r *UserRepo) UpdateFCMToken(userID, token string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE users SET fcm_token = $2, updated_at = now() WHERE id = $1`,
		userID, token,
	)
	if err != nil {
		return fmt.Errorf("update fcm token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) getWhere(where string, arg any) (*entity.User, error) {
	var u entity.User
	err := scanUser(r.q.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE `+where, arg), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *entity.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Phone, &u.PasswordHash, &u.PinCode,
		&u.Role, &u.RestaurantID, &u.FCMToken, &u.Actif, &u.CreatedAt, &u.UpdatedAt,
	)
}
