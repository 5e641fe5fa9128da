package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenRepo имитирует недоступное хранилище
type brokenRepo struct{}

var errBroken = errors.New("нет соединения")

func (brokenRepo) Save(context.Context, string, []byte) error { return errBroken }
func (brokenRepo) Load(context.Context, string) ([]byte, error) {
	return nil, errBroken
}
func (brokenRepo) Delete(context.Context, string) error { return errBroken }
func (brokenRepo) Close() error { return nil }

func TestTieredSnapshotRepo_Contract(t *testing.T) {
	exerciseRepo(t, NewTieredSnapshotRepo(NewMemorySnapshotRepo(), NewMemorySnapshotRepo()))
}

func TestTieredSnapshotRepo_WarmsHot(t *testing.T) {
	ctx := context.Background()
	hot, cold := NewMemorySnapshotRepo(), NewMemorySnapshotRepo()
	require.NoError(t, cold.Save(ctx, "default", []byte("cold")))

	repo := NewTieredSnapshotRepo(hot, cold)

	data, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "cold", string(data))
	assert.Equal(t, TierStats{Misses: 1}, repo.Stats())

	_, err = hot.Load(ctx, "default")
	require.NoError(t, err, "промах прогревает hot")

	_, err = repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, TierStats{Hits: 1, Misses: 1}, repo.Stats())
}

func TestTieredSnapshotRepo_HotFailureIsTolerated(t *testing.T) {
	ctx := context.Background()
	cold := NewMemorySnapshotRepo()
	repo := NewTieredSnapshotRepo(brokenRepo{}, cold)

	require.NoError(t, repo.Save(ctx, "default", []byte("x")))
	data, err := repo.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestTieredSnapshotRepo_ColdFailureIsReported(t *testing.T) {
	ctx := context.Background()
	hot := NewMemorySnapshotRepo()
	repo := NewTieredSnapshotRepo(hot, brokenRepo{})

	assert.ErrorIs(t, repo.Save(ctx, "default", []byte("x")), errBroken)
	assert.Equal(t, 0, hot.Count(), "без cold запись в hot не попадает")

	_, err := repo.Load(ctx, "default")
	assert.ErrorIs(t, err, errBroken)
}
