package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrSnapshotNotFound возвращается, если слот сохранения пуст
var ErrSnapshotNotFound = errors.New("сохранение не найдено")

// SnapshotRepo хранит сериализованные снимки игрока по имени слота.
// Формат данных репозиторию безразличен: кодированием занимается codec.go.
type SnapshotRepo interface {
	// Save перезаписывает слот.
	Save(ctx context.Context, slot string, data []byte) error

	// Load возвращает содержимое слота или ErrSnapshotNotFound.
	Load(ctx context.Context, slot string) ([]byte, error)

	// Delete очищает слот; пустой слот ошибкой не считается.
	Delete(ctx context.Context, slot string) error

	Close() error
}

func validateSlot(slot string) error {
	if slot == "" {
		return fmt.Errorf("пустое имя слота")
	}
	return nil
}
