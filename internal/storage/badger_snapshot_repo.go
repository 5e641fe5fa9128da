package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

const badgerKeyPrefix = "save:"

// BadgerSnapshotRepo хранит снимки во встроенной BadgerDB, сжимая их zstd
type BadgerSnapshotRepo struct {
	db      *badger.DB
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	mu      sync.RWMutex
	isReady bool
}

// NewBadgerSnapshotRepo открывает базу в каталоге path.
// Пустой path открывает базу в памяти.
func NewBadgerSnapshotRepo(path string) (*BadgerSnapshotRepo, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return &BadgerSnapshotRepo{db: db, enc: enc, dec: dec, isReady: true}, nil
}

func badgerKey(slot string) []byte {
	return []byte(badgerKeyPrefix + slot)
}

// Save сжимает данные и записывает слот
func (r *BadgerSnapshotRepo) Save(ctx context.Context, slot string, data []byte) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	packed := r.enc.EncodeAll(data, nil)
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(slot), packed)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}
	return nil
}

// Load читает и распаковывает слот
func (r *BadgerSnapshotRepo) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var packed []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(slot))
		if err != nil {
			return err
		}
		packed, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	data, err := r.dec.DecodeAll(packed, nil)
	if err != nil {
		return nil, fmt.Errorf("распаковка сохранения %s: %w", slot, err)
	}
	return data, nil
}

// Delete удаляет слот
func (r *BadgerSnapshotRepo) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(slot))
	})
}

// Close закрывает базу; повторный вызов безопасен
func (r *BadgerSnapshotRepo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isReady {
		return nil
	}
	r.isReady = false
	r.enc.Close()
	r.dec.Close()
	return r.db.Close()
}
