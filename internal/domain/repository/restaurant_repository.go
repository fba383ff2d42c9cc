package repository

import "github.com/famadiop1025/Bokkdej/internal/domain/entity"

// RestaurantRepository port de persistance des restaurants. L'onboarding est
// externe : le cœur ne fait que lire.
type RestaurantRepository interface {
	GetByID(id string) (*entity.Restaurant, error)
	// ListVisible restaurants validés et actifs, visibles du public.
	ListVisible() ([]*entity.Restaurant, error)
}
