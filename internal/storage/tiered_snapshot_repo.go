package storage

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/annel0/memory-isle/internal/logging"
)

// TieredSnapshotRepo — двухуровневое хранилище: Hot (Redis) + Cold (MariaDB/Badger).
// Чтение сначала из hot, промах догружается из cold и прогревает hot.
// Запись идёт в cold, затем в hot; сбой hot только логируется.
type TieredSnapshotRepo struct {
	hot  SnapshotRepo
	cold SnapshotRepo

	hits   atomic.Int64
	misses atomic.Int64
}

// TierStats — счётчики попаданий в hot
type TierStats struct {
	Hits   int64
	Misses int64
}

// NewTieredSnapshotRepo объединяет два репозитория
func NewTieredSnapshotRepo(hot, cold SnapshotRepo) *TieredSnapshotRepo {
	return &TieredSnapshotRepo{hot: hot, cold: cold}
}

// Save пишет в cold, затем в hot
func (r *TieredSnapshotRepo) Save(ctx context.Context, slot string, data []byte) error {
	if err := r.cold.Save(ctx, slot, data); err != nil {
		return err
	}
	if err := r.hot.Save(ctx, slot, data); err != nil {
		logging.Warn("Hot-хранилище не обновлено для %s: %v", slot, err)
	}
	return nil
}

// Load читает hot, при промахе — cold
func (r *TieredSnapshotRepo) Load(ctx context.Context, slot string) ([]byte, error) {
	data, err := r.hot.Load(ctx, slot)
	if err == nil {
		r.hits.Add(1)
		return data, nil
	}
	if !errors.Is(err, ErrSnapshotNotFound) {
		logging.Warn("Hot-хранилище недоступно для %s: %v", slot, err)
	}
	r.misses.Add(1)

	data, err = r.cold.Load(ctx, slot)
	if err != nil {
		return nil, err
	}
	if err := r.hot.Save(ctx, slot, data); err != nil {
		logging.Warn("Прогрев hot-хранилища для %s: %v", slot, err)
	}
	return data, nil
}

// Delete очищает оба уровня
func (r *TieredSnapshotRepo) Delete(ctx context.Context, slot string) error {
	hotErr := r.hot.Delete(ctx, slot)
	if err := r.cold.Delete(ctx, slot); err != nil {
		return err
	}
	return hotErr
}

// Stats возвращает счётчики попаданий
func (r *TieredSnapshotRepo) Stats() TierStats {
	return TierStats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}

// Close закрывает оба уровня
func (r *TieredSnapshotRepo) Close() error {
	hotErr := r.hot.Close()
	if err := r.cold.Close(); err != nil {
		return fmt.Errorf("cold: %w", err)
	}
	if hotErr != nil {
		return fmt.Errorf("hot: %w", hotErr)
	}
	return nil
}
