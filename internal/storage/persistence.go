package storage

import (
	"context"
	"errors"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/logging"
)

// SavePlayer кодирует снимок и пишет его в слот
func SavePlayer(ctx context.Context, repo SnapshotRepo, slot string, s entity.PlayerSnapshot) error {
	data, err := EncodeSnapshot(s)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, slot, data); err != nil {
		return err
	}
	logging.Debug("💾 Сохранение %s записано (%d байт)", slot, len(data))
	return nil
}

// LoadPlayer читает снимок из слота.
// Пустой или повреждённый слот даёт (нулевой снимок, false, nil): вызывающий
// остаётся со стартовым состоянием. Ошибка возвращается только при сбое хранилища.
func LoadPlayer(ctx context.Context, repo SnapshotRepo, slot string) (entity.PlayerSnapshot, bool, error) {
	data, err := repo.Load(ctx, slot)
	if errors.Is(err, ErrSnapshotNotFound) {
		return entity.PlayerSnapshot{}, false, nil
	}
	if err != nil {
		return entity.PlayerSnapshot{}, false, err
	}

	rec, err := DecodeSnapshot(data)
	if err != nil {
		logging.Warn("Сохранение %s повреждено, используется новая игра: %v", slot, err)
		return entity.PlayerSnapshot{}, false, nil
	}
	if !rec.Player.Valid() {
		logging.Warn("Сохранение %s несогласованно, используется новая игра", slot)
		return entity.PlayerSnapshot{}, false, nil
	}
	return rec.Player, true, nil
}
