package api

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/Rorical/RoriHost/internal/config"
)

const scanBatch = 1000

// RedisStore serves keys from real Redis servers
type RedisStore struct {
	names   []string
	clients map[string]*redis.Client
}

func NewRedisStore(servers []config.RedisServer) *RedisStore {
	store := &RedisStore{clients: make(map[string]*redis.Client, len(servers))}
	for _, server := range servers {
		store.names = append(store.names, server.Name)
		store.clients[server.Name] = redis.NewClient(&redis.Options{
			Addr:     server.Addr(),
			Password: server.Password,
			DB:       server.DB,
		})
	}
	sort.Strings(store.names)
	return store
}

func (s *RedisStore) Servers() []string {
	return append([]string(nil), s.names...)
}

func (s *RedisStore) client(server string) (*redis.Client, error) {
	client, ok := s.clients[server]
	if !ok {
		return nil, ErrServerNotFound
	}
	return client, nil
}

// Keys walks the key space with SCAN so large databases do not block Redis
func (s *RedisStore) Keys(ctx context.Context, server, mask string) ([]string, error) {
	client, err := s.client(server)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0)
	iter := client.Scan(ctx, 0, mask, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", server, err)
	}

	sort.Strings(keys)
	return dedupe(keys), nil
}

func (s *RedisStore) Delete(ctx context.Context, server, key string) error {
	client, err := s.client(server)
	if err != nil {
		return err
	}

	removed, err := client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("delete %s on %s: %w", key, server, err)
	}
	if removed == 0 {
		return ErrKeyNotFound
	}
	return nil
}

// Ping checks every server and joins the failures
func (s *RedisStore) Ping(ctx context.Context) error {
	var errs []error
	for _, name := range s.names {
		if err := s.clients[name].Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *RedisStore) Close() error {
	var errs []error
	for _, client := range s.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// dedupe drops repeats from a sorted slice; SCAN may return a key twice
func dedupe(keys []string) []string {
	if len(keys) < 2 {
		return keys
	}
	out := keys[:1]
	for _, key := range keys[1:] {
		if key != out[len(out)-1] {
			out = append(out, key)
		}
	}
	return out
}
