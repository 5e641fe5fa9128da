package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MariaSnapshotRepo хранит снимки в таблице player_saves MariaDB/MySQL
type MariaSnapshotRepo struct {
	db *sql.DB
}

// NewMariaSnapshotRepo подключается к базе и создаёт таблицу при необходимости.
//
// Параметры:
//
//	dsn - строка подключения к базе данных (user:pass@tcp(host:port)/dbname)
func NewMariaSnapshotRepo(ctx context.Context, dsn string) (*MariaSnapshotRepo, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MariaDB: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось проверить соединение с MariaDB: %w", err)
	}

	repo := &MariaSnapshotRepo{db: db}
	if err := repo.createTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать таблицу: %w", err)
	}
	return repo, nil
}

func (r *MariaSnapshotRepo) createTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS player_saves (
			slot       VARCHAR(64)  PRIMARY KEY,
			data       MEDIUMBLOB   NOT NULL,
			updated_at TIMESTAMP    DEFAULT CURRENT_TIMESTAMP
			           ON UPDATE    CURRENT_TIMESTAMP
		) ENGINE=InnoDB
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ошибка создания таблицы player_saves: %w", err)
	}
	return nil
}

// Save использует INSERT ... ON DUPLICATE KEY UPDATE
func (r *MariaSnapshotRepo) Save(ctx context.Context, slot string, data []byte) error {
	if err := validateSlot(slot); err != nil {
		return err
	}

	query := `
		INSERT INTO player_saves (slot, data)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE
			data = VALUES(data),
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, slot, data); err != nil {
		return fmt.Errorf("ошибка сохранения слота %s: %w", slot, err)
	}
	return nil
}

// Load читает слот
func (r *MariaSnapshotRepo) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM player_saves WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки слота %s: %w", slot, err)
	}
	return data, nil
}

// Delete удаляет слот
func (r *MariaSnapshotRepo) Delete(ctx context.Context, slot string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM player_saves WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("ошибка удаления слота %s: %w", slot, err)
	}
	return nil
}

// Close закрывает пул соединений
func (r *MariaSnapshotRepo) Close() error {
	return r.db.Close()
}
