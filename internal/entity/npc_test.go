package entity

import (
	"testing"

	"github.com/annel0/memory-isle/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPC_DialogueAndQuest(t *testing.T) {
	elder := NewNPC(pt(0, 0), "Старейшина", NPCElder)
	p := NewPlayer(pt(30, 0))

	view, ok := elder.StartDialogue(p)
	require.True(t, ok)
	assert.Equal(t, "Старейшина", view.Speaker)
	assert.Len(t, view.Choices, 3)
	assert.True(t, elder.HasImportantDialogue())

	view, ok = elder.Choose(1, p)
	require.True(t, ok)
	assert.Equal(t, NodeQuests, elder.DialogueNodeID())
	assert.Contains(t, view.Text, "Осколки памяти")

	_, ok = elder.Choose(0, p)
	require.True(t, ok)
	assert.Equal(t, NodeAcceptQuest, elder.DialogueNodeID())
	assert.True(t, p.HasQuest("find_memory_fragments"))

	_, ok = elder.Choose(5, p)
	assert.False(t, ok, "Неверный индекс выбора")

	_, ok = elder.Choose(1, p)
	require.True(t, ok)
	assert.Equal(t, NodeEnd, elder.DialogueNodeID())

	_, ok = elder.Choose(0, p)
	assert.False(t, ok)
	assert.False(t, elder.InDialogue)
	assert.Equal(t, NodeStart, elder.DialogueNodeID())
	assert.Len(t, p.QuestLog, 1)
}

func TestNPC_OutOfRange(t *testing.T) {
	guard := NewNPC(pt(0, 0), "Стражник", NPCGuard)
	p := NewPlayer(pt(51, 0))

	_, ok := guard.StartDialogue(p)
	assert.False(t, ok)
	assert.False(t, guard.InDialogue)
}

func TestNPC_QuestDialogueVariants(t *testing.T) {
	merchant := NewNPC(pt(0, 0), "Торговец", NPCMerchant)
	merchant.node = NodeQuests
	view, _ := merchant.CurrentDialogue()
	assert.Equal(t, "Сейчас у меня нет для тебя заданий.", view.Text)

	wanderer := NewNPC(pt(0, 0), "Странник", NPCWanderer)
	wanderer.CompleteQuest("explore_ruins")
	wanderer.node = NodeQuests
	view, _ = wanderer.CurrentDialogue()
	assert.Equal(t, "Ты выполнил все мои задания. Спасибо!", view.Text)
	assert.False(t, wanderer.HasImportantDialogue())
	assert.True(t, wanderer.IsQuestCompleted("explore_ruins"))
}

func TestNPC_IdleThenPatrol(t *testing.T) {
	n := NewNPC(pt(0, 0), "Странник", NPCWanderer)
	n.SetPatrolPoints([]vec.Vec2Float{pt(100, 0)})

	for i := 0; i < 31; i++ {
		n.Update(100)
	}
	assert.True(t, n.IsPatrolling())

	n.Update(100)
	n.Update(100)
	assert.Greater(t, n.Position.X, 0.0)
	assert.LessOrEqual(t, n.Speed(), NPCPatrolSpeed+1e-12)
}
