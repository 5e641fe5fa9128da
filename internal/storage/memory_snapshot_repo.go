package storage

import (
	"context"
	"sync"
)

// MemorySnapshotRepo реализует SnapshotRepo в памяти.
// Используется в тестах и для запуска без внешнего хранилища.
// ВНИМАНИЕ: Данные теряются при перезапуске!
type MemorySnapshotRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySnapshotRepo создает пустой репозиторий
func NewMemorySnapshotRepo() *MemorySnapshotRepo {
	return &MemorySnapshotRepo{data: make(map[string][]byte)}
}

// Save копирует данные в слот
func (r *MemorySnapshotRepo) Save(ctx context.Context, slot string, data []byte) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[slot] = append([]byte(nil), data...)
	return nil
}

// Load возвращает копию содержимого слота
func (r *MemorySnapshotRepo) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.data[slot]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

// Delete очищает слот
func (r *MemorySnapshotRepo) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.data, slot)
	r.mu.Unlock()
	return nil
}

// Count возвращает число занятых слотов (для тестов)
func (r *MemorySnapshotRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Close ничего не делает
func (r *MemorySnapshotRepo) Close() error { return nil }
