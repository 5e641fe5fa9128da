package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/memory-isle/internal/entity"
)

// SnapshotVersion — версия формата сохранения
const SnapshotVersion = 1

// SaveRecord — то, что реально лежит в слоте
type SaveRecord struct {
	ID      string                `json:"id"`
	Version int                   `json:"version"`
	SavedAt time.Time             `json:"saved_at"`
	Player  entity.PlayerSnapshot `json:"player"`
}

// EncodeSnapshot упаковывает снимок в JSON-запись с новым идентификатором
func EncodeSnapshot(s entity.PlayerSnapshot) ([]byte, error) {
	rec := SaveRecord{
		ID:      uuid.NewString(),
		Version: SnapshotVersion,
		SavedAt: time.Now().UTC(),
		Player:  s,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации сохранения: %w", err)
	}
	return data, nil
}

// DecodeSnapshot разбирает запись и проверяет версию
func DecodeSnapshot(data []byte) (SaveRecord, error) {
	var rec SaveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return SaveRecord{}, fmt.Errorf("ошибка десериализации сохранения: %w", err)
	}
	if rec.Version != SnapshotVersion {
		return SaveRecord{}, fmt.Errorf("неподдерживаемая версия сохранения: %d", rec.Version)
	}
	return rec, nil
}
