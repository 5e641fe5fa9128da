package world

import (
	"testing"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampDelta(t *testing.T) {
	assert.Equal(t, 16.0, ClampDelta(16))
	assert.Equal(t, MaxDelta, ClampDelta(5000))
	assert.Equal(t, 0.0, ClampDelta(-3))
}

func TestNewGame_StartsInVillage(t *testing.T) {
	g := NewGame(1, nil)

	assert.Equal(t, MapVillage, g.CurrentMap().ID)
	assert.Equal(t, StatePlaying, g.State())
	assert.Equal(t, vec.Vec2{X: 15, Y: 10}.ToWorldCenter(TileSize), g.Player().Position)

	for _, id := range MapIDs() {
		m, ok := g.Map(id)
		require.True(t, ok)
		assert.Same(t, g.Player(), m.Player(), "Игрок зарегистрирован на всех картах")
	}
}

func TestGame_ExitTransition(t *testing.T) {
	var events []entity.Event
	g := NewGame(1, entity.ObserverFunc(func(ev entity.Event) { events = append(events, ev) }))

	g.Player().SetPosition(vec.Vec2{X: 15, Y: 0}.ToWorldCenter(TileSize))
	g.Update(16, entity.Input{})

	assert.Equal(t, MapForest, g.CurrentMap().ID)
	assert.Equal(t, vec.Vec2{X: 20, Y: 28}.ToWorldCenter(TileSize), g.Player().Position)

	var changed bool
	for _, ev := range events {
		if ev.Type == entity.EventMapChanged && ev.Data["to"] == string(MapForest) {
			changed = true
		}
	}
	assert.True(t, changed)

	g.Update(16, entity.Input{})
	assert.Equal(t, MapForest, g.CurrentMap().ID, "Прибытие не срабатывает как переход обратно")
}

func TestGame_ChangeMapUnknown(t *testing.T) {
	g := NewGame(1, nil)
	err := g.ChangeMap("moon")
	assert.ErrorIs(t, err, ErrUnknownMap)
	assert.Equal(t, MapVillage, g.CurrentMap().ID)
}

func TestGame_InteractAndAcceptQuest(t *testing.T) {
	g := NewGame(1, nil)
	g.Player().SetPosition(vec.Vec2Float{X: 360, Y: 336})

	g.Update(16, entity.Input{Interact: true})
	npc := g.ActiveDialogue()
	require.NotNil(t, npc)
	assert.Equal(t, entity.NPCElder, npc.Type)

	_, ok := g.Choose(1)
	require.True(t, ok)
	_, ok = g.Choose(0)
	require.True(t, ok)
	assert.True(t, g.Player().HasQuest("find_memory_fragments"))

	g.Choose(1) // end
	g.Choose(0) // close
	assert.Nil(t, g.ActiveDialogue())
}

func TestGame_InteractOutOfRange(t *testing.T) {
	g := NewGame(1, nil)
	_, ok := g.Interact()
	assert.False(t, ok)
	assert.Nil(t, g.ActiveDialogue())
}

func TestGame_VictoryAndGameOver(t *testing.T) {
	g := NewGame(1, nil)
	g.Player().MemoryFragments = entity.MaxMemoryFragments
	g.Update(16, entity.Input{})
	assert.Equal(t, StateVictory, g.State())

	pos := g.Player().Position
	g.Update(16, entity.Input{Move: vec.Vec2Float{X: 1}})
	assert.Equal(t, pos, g.Player().Position, "После победы тик не выполняется")

	g = NewGame(1, nil)
	g.Player().TakeDamage(1000)
	g.Update(16, entity.Input{})
	assert.Equal(t, StateGameOver, g.State())
}

func TestGame_PauseResume(t *testing.T) {
	g := NewGame(1, nil)
	g.Pause()
	assert.Equal(t, StatePaused, g.State())

	g.Update(16, entity.Input{})
	assert.Equal(t, 0.0, g.Elapsed())

	g.Resume()
	g.Update(250, entity.Input{})
	assert.Equal(t, MaxDelta, g.Elapsed(), "Шаг ограничен сверху")
}

func TestGame_RestartRebindsEnemies(t *testing.T) {
	g := NewGame(1, nil)
	old := g.Player()
	old.TakeDamage(1000)
	g.Update(16, entity.Input{})
	require.Equal(t, StateGameOver, g.State())

	g.Restart()
	assert.Equal(t, StatePlaying, g.State())
	assert.NotSame(t, old, g.Player())
	assert.Equal(t, MapVillage, g.CurrentMap().ID)

	forest, _ := g.Map(MapForest)
	for _, e := range forest.Enemies() {
		assert.Equal(t, entity.Target(g.Player()), e.Target())
	}
}

func TestGame_SnapshotRestore(t *testing.T) {
	g := NewGame(1, nil)
	require.NoError(t, g.ChangeMap(MapRuins))
	g.Player().AddExperience(40)
	snap := g.Snapshot()
	assert.Equal(t, string(MapRuins), snap.MapID)

	g.Restart()
	require.True(t, g.Restore(snap))
	assert.Equal(t, MapRuins, g.CurrentMap().ID)
	assert.Equal(t, 40, g.Player().Experience)
	assert.Equal(t, vec.Vec2Float{X: snap.X, Y: snap.Y}, g.Player().Position)

	snap.MapID = "moon"
	assert.False(t, g.Restore(snap))
	assert.Equal(t, 0, g.Player().Experience, "Несогласованный снимок сбрасывает игрока")
}
