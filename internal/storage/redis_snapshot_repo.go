package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/annel0/memory-isle/internal/logging"
)

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration // 0 — без срока жизни
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "isle:save:",
	}
}

// RedisSnapshotRepo хранит снимки в Redis под ключами <prefix><slot>
type RedisSnapshotRepo struct {
	client    redis.Cmdable
	closer    func() error
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSnapshotRepo подключается к Redis и проверяет соединение
func NewRedisSnapshotRepo(ctx context.Context, config *RedisConfig) (*RedisSnapshotRepo, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	logging.Info("🔴 Подключено к Redis %s", config.Addr)
	repo := newRedisSnapshotRepo(client, config)
	repo.closer = client.Close
	return repo, nil
}

func newRedisSnapshotRepo(client redis.Cmdable, config *RedisConfig) *RedisSnapshotRepo {
	return &RedisSnapshotRepo{
		client:    client,
		closer:    func() error { return nil },
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}
}

func (r *RedisSnapshotRepo) key(slot string) string {
	return r.keyPrefix + slot
}

// Save записывает слот с TTL из конфигурации
func (r *RedisSnapshotRepo) Save(ctx context.Context, slot string, data []byte) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(slot), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения %s в Redis: %w", slot, err)
	}
	return nil
}

// Load читает слот
func (r *RedisSnapshotRepo) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, r.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения %s из Redis: %w", slot, err)
	}
	return data, nil
}

// Delete удаляет слот
func (r *RedisSnapshotRepo) Delete(ctx context.Context, slot string) error {
	if err := r.client.Del(ctx, r.key(slot)).Err(); err != nil {
		return fmt.Errorf("ошибка удаления %s из Redis: %w", slot, err)
	}
	return nil
}

// Close закрывает клиент, если репозиторий им владеет
func (r *RedisSnapshotRepo) Close() error {
	return r.closer()
}
