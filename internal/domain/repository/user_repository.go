package repository

import "github.com/famadiop1025/Bokkdej/internal/domain/entity"

// UserRepository port de persistance des comptes.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	FindByPhone(phone string) (*entity.User, error)
	// ListStaff comptes du personnel (admin, personnel, chef), restreints au
	// restaurant si restaurantID est renseigné.
	ListStaff(restaurantID string) ([]*entity.User, error)
	UpdateFCMToken(userID, token string) error
}

// ComposedDishRepository port de persistance des plats composés (immuables :
// création et lecture seulement).
type ComposedDishRepository interface {
	Create(d *entity.ComposedDish) error
	GetByID(id string) (*entity.ComposedDish, error)
	GetByIDs(ids []string) ([]*entity.ComposedDish, error)
}
