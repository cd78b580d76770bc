package db

import (
	"context"
	"errors"
	"fmt"

	"savoria/config"
)

// Well-known blob keys. These match the localStorage keys the web client
// used, so an exported blob is readable by the same frontend.
const (
	MenuKey   = "menuItems"
	CartKey   = "cartItems"
	UsersKey  = "users"
	OrdersKey = "orders"
)

// ErrKeyNotFound is returned by Get when no blob exists under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// BlobStore is the durable key-value store behind the catalog and cart.
// Every Set replaces the whole value under the key; there are no partial
// writes and no transactions, last writer wins.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open picks the storage driver named by the config.
func Open(cfg *config.Config) (BlobStore, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath)
	case "redis":
		return OpenRedis(cfg.RedisAddr, cfg.RedisPassword)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
	}
}
