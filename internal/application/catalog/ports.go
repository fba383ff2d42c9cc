package catalog

import "context"

// Cache port du cache des résolutions publiques du catalogue. Best-effort :
// toute erreur est consignée et la résolution continue sur la base.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, val any) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}
