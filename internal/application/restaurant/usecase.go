// Package restaurant lectures publiques côté restaurants : liste visible,
// menu d'un restaurant et plat du jour.
package restaurant

import (
	"context"
	"errors"

	"github.com/famadiop1025/Bokkdej/internal/application/catalog"
	"github.com/famadiop1025/Bokkdej/internal/application/dto"
	"github.com/famadiop1025/Bokkdej/internal/domain"
	"github.com/famadiop1025/Bokkdej/internal/domain/identity"
	"github.com/famadiop1025/Bokkdej/internal/domain/repository"
)

// UseCase lectures publiques. Le menu passe par le résolveur de catalogue pour
// hériter de la chaîne de repli et du filtre de disponibilité.
type UseCase struct {
	restaurants repository.RestaurantRepository
	menus       repository.MenuItemRepository
	catalog     *catalog.UseCase
}

// NewUseCase construit le cas d'usage.
func NewUseCase(restaurants repository.RestaurantRepository, menus repository.MenuItemRepository, cat *catalog.UseCase) *UseCase {
	return &UseCase{restaurants: restaurants, menus: menus, catalog: cat}
}

// ListVisible restaurants validés et actifs.
func (uc *UseCase) ListVisible(ctx context.Context) ([]dto.RestaurantResponse, error) {
	list, err := uc.restaurants.ListVisible()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RestaurantResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ToRestaurantResponse(r))
	}
	return out, nil
}

// Menu menu commandable d'un restaurant donné.
func (uc *UseCase) Menu(ctx context.Context, restaurantID string, actor identity.Identity) (*dto.RestaurantMenuResponse, error) {
	r, err := uc.restaurants.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	menu, err := uc.catalog.ResolveMenu(ctx, restaurantID, actor)
	if err != nil {
		return nil, err
	}
	return &dto.RestaurantMenuResponse{
		Restaurant: dto.ToRestaurantResponse(r),
		Menu:       menu,
	}, nil
}

// PlatDuJour plat du jour d'un restaurant, message explicite si aucun.
func (uc *UseCase) PlatDuJour(ctx context.Context, restaurantID string) (*dto.PlatDuJourResponse, error) {
	r, err := uc.restaurants.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	resp := &dto.PlatDuJourResponse{Restaurant: dto.ToRestaurantResponse(r)}

	item, err := uc.menus.GetPlatDuJour(restaurantID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if item == nil {
		resp.Message = "Aucun plat du jour défini pour ce restaurant."
		return resp, nil
	}
	out := dto.ToMenuItemResponse(item)
	resp.PlatDuJour = &out
	return resp, nil
}
