package config

import (
	"context"
	"log"

	"cyber_portal/internal/store"
)

// OpenStore connects the configured backend. The returned close func releases
// the connection and is never nil.
func OpenStore(ctx context.Context, cfg *Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case BackendPostgres:
		pool, err := ConnectDB(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := AutoMigrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store.NewPostgresStore(pool), pool.Close, nil
	case BackendRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client), func() { _ = client.Close() }, nil
	default:
		log.Println("WARN: Using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}
}
