// Package rediscache cache Redis des résolutions publiques du catalogue.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/famadiop1025/Bokkdej/internal/application/catalog"
)

var _ catalog.Cache = (*CatalogCache)(nil)

// CatalogCache implémente catalog.Cache avec des valeurs JSON et un TTL court :
// le cache absorbe les rafales de lecture, la base reste la source de vérité.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache construit le cache avec le TTL donné.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// GetJSON lit et désérialise la clé. (false, nil) si absente.
func (c *CatalogCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON sérialise et écrit la clé avec le TTL configuré.
func (c *CatalogCache) SetJSON(ctx context.Context, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// DeleteByPrefix supprime toutes les clés du préfixe (SCAN puis DEL, jamais
// KEYS qui bloque le serveur).
func (c *CatalogCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
