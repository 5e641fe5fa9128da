package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileFor(t *testing.T) {
	assert.True(t, ProfileFor(ItemHealingHerb).Consumable)
	assert.True(t, ProfileFor(ItemMemoryFragment).MemoryFragment)
	assert.Equal(t, SlotWeapon, ProfileFor(ItemSword).Slot)
	assert.Equal(t, unknownItemProfile.Name, ProfileFor(ItemType("rock")).Name)
}

func TestItem_CollectHerbHeals(t *testing.T) {
	p := NewPlayer(pt(0, 0))
	p.TakeDamage(50)
	herb := NewItem(pt(0, 0), ItemHealingHerb)

	assert.True(t, herb.CanUse(p))
	assert.True(t, herb.Collect(p))
	assert.Equal(t, 80, p.Health)
	assert.Empty(t, p.Inventory, "Трава расходуется сразу")
	assert.True(t, herb.IsDestroyed())

	assert.False(t, herb.Collect(p), "Повторный подбор не выполняется")
}

func TestItem_CollectFragmentViaCollision(t *testing.T) {
	p := NewPlayer(pt(0, 0))
	var collected int
	p.SetObserver(ObserverFunc(func(ev Event) {
		if ev.Type == EventItemCollected {
			collected++
		}
	}))
	fragment := NewItem(pt(0, 0), ItemMemoryFragment)

	fragment.OnCollide(p)
	fragment.OnCollide(p)

	assert.Equal(t, 1, p.MemoryFragments)
	assert.Len(t, p.Inventory, 1)
	assert.Equal(t, 1, collected)
}

func TestItem_InventoryFull(t *testing.T) {
	p := NewPlayer(pt(0, 0))
	for i := 0; i < MaxInventorySize; i++ {
		assert.True(t, NewItem(pt(0, 0), ItemKey).Collect(p))
	}

	extra := NewItem(pt(0, 0), ItemKey)
	assert.False(t, extra.Collect(p))
	assert.True(t, extra.IsActive(), "Предмет остаётся в мире")
	assert.Len(t, p.Inventory, MaxInventorySize)
}

func TestItem_EquipSword(t *testing.T) {
	p := NewPlayer(pt(0, 0))
	sword := NewItem(pt(0, 0), ItemSword)
	other := NewItem(pt(0, 0), ItemSword)

	assert.False(t, sword.Use(p), "Меч не расходуется")
	assert.True(t, sword.Equip(p))
	assert.Equal(t, PlayerAttackDamage+15, p.AttackDamage)

	assert.True(t, other.Equip(p), "Новый меч заменяет старый")
	assert.Equal(t, PlayerAttackDamage+15, p.AttackDamage)
	assert.Same(t, other, p.EquippedWeapon)

	assert.False(t, sword.Unequip(p), "Снятый меч повторно не снимается")
	assert.True(t, other.Unequip(p))
	assert.Equal(t, PlayerAttackDamage, p.AttackDamage)
	assert.Nil(t, p.EquippedWeapon)

	assert.False(t, NewItem(pt(0, 0), ItemKey).Equip(p))
}

func TestItem_CanUseHerbAtFullHealth(t *testing.T) {
	p := NewPlayer(pt(0, 0))
	assert.False(t, NewItem(pt(0, 0), ItemHealingHerb).CanUse(p))
	assert.False(t, NewItem(pt(0, 0), ItemKey).CanUse(p))
}
