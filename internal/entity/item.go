package entity

import (
	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/vec"
)

// ItemSize — сторона хитбокса предмета
const ItemSize = 24.0

// ItemType — тип предмета
type ItemType string

const (
	ItemHealingHerb    ItemType = "herb"
	ItemKey            ItemType = "key"
	ItemMemoryFragment ItemType = "memory_fragment"
	ItemSword          ItemType = "sword"
)

// EquipSlot — слот экипировки
type EquipSlot string

const (
	SlotNone   EquipSlot = ""
	SlotWeapon EquipSlot = "weapon"
	SlotArmor  EquipSlot = "armor"
)

// EffectKind — вид эффекта расходуемого предмета
type EffectKind string

const (
	EffectHeal       EffectKind = "heal"
	EffectExperience EffectKind = "experience"
	EffectBuff       EffectKind = "buff"
)

// Effect — эффект, применяемый при использовании
type Effect struct {
	Kind  EffectKind
	Value int
}

// ItemStats — бонусы экипировки
type ItemStats struct {
	Attack    int
	MaxHealth int
}

// ItemProfile — неизменяемые свойства типа предмета
type ItemProfile struct {
	Name           string
	Description    string
	Consumable     bool
	Equippable     bool
	QuestItem      bool
	MemoryFragment bool
	Value          int
	Rarity         string
	Slot           EquipSlot
	Stats          ItemStats
	Effects        []Effect
}

var unknownItemProfile = ItemProfile{
	Name:        "Неизвестный предмет",
	Description: "Предмет неясного происхождения.",
	Rarity:      "common",
}

var itemProfiles = map[ItemType]ItemProfile{
	ItemHealingHerb: {
		Name:        "Целебная трава",
		Description: "Лечебная трава, восстанавливает здоровье.",
		Consumable:  true,
		Value:       25,
		Rarity:      "common",
		Effects:     []Effect{{Kind: EffectHeal, Value: 30}},
	},
	ItemKey: {
		Name:        "Древний ключ",
		Description: "Старый ключ, который может что-то открыть.",
		QuestItem:   true,
		Value:       100,
		Rarity:      "uncommon",
	},
	ItemMemoryFragment: {
		Name:           "Осколок памяти",
		Description:    "Часть утраченной памяти. Ключ к снятию проклятия.",
		QuestItem:      true,
		MemoryFragment: true,
		Value:          500,
		Rarity:         "legendary",
	},
	ItemSword: {
		Name:        "Железный меч",
		Description: "Простой железный меч.",
		Equippable:  true,
		Value:       150,
		Rarity:      "common",
		Slot:        SlotWeapon,
		Stats:       ItemStats{Attack: 15},
	},
}

// ProfileFor возвращает профиль типа; неизвестные типы получают запасной профиль
func ProfileFor(t ItemType) ItemProfile {
	if p, ok := itemProfiles[t]; ok {
		return p
	}
	return unknownItemProfile
}

// Item — подбираемый предмет
type Item struct {
	Base
	Type    ItemType
	Profile ItemProfile
}

// NewItem создаёт предмет в мировой позиции pos
func NewItem(pos vec.Vec2Float, t ItemType) *Item {
	return &Item{
		Base:    newBase(KindItem, pos, vec.Vec2Float{X: ItemSize, Y: ItemSize}),
		Type:    t,
		Profile: ProfileFor(t),
	}
}

// Update — предметы статичны
func (it *Item) Update(dt float64) {}

// OnCollide подбирает предмет при касании игрока
func (it *Item) OnCollide(other Entity) {
	if p, ok := other.(*Player); ok {
		it.Collect(p)
	}
}

// Collect кладёт предмет в инвентарь игрока и убирает его из мира.
// false — предмет уже подобран, игрок неактивен или инвентарь полон.
func (it *Item) Collect(p *Player) bool {
	if !it.Active || p == nil || !p.Active {
		return false
	}
	if !p.AddToInventory(it) {
		return false
	}

	it.Destroy()
	p.emit(EventItemCollected, p.ID, map[string]interface{}{
		"item": string(it.Type),
		"name": it.Profile.Name,
	})
	logging.Debug("Игрок %d подобрал %s", p.ID, it.Profile.Name)

	if it.Profile.Consumable {
		it.Use(p)
	}
	if it.Profile.MemoryFragment {
		p.AddMemoryFragment()
	}
	return true
}

// CanUse сообщает, имеет ли смысл использовать предмет сейчас
func (it *Item) CanUse(p *Player) bool {
	if !it.Profile.Consumable || p == nil {
		return false
	}
	for _, eff := range it.Profile.Effects {
		if eff.Kind == EffectHeal {
			return p.Health < p.MaxHealth
		}
	}
	return true
}

// Use применяет эффекты и удаляет предмет из инвентаря
func (it *Item) Use(p *Player) bool {
	if !it.Profile.Consumable || p == nil {
		return false
	}

	for _, eff := range it.Profile.Effects {
		switch eff.Kind {
		case EffectHeal:
			p.Heal(eff.Value)
		case EffectExperience:
			p.AddExperience(eff.Value)
		default:
			logging.Warn("Эффект %q не поддерживается", eff.Kind)
		}
	}

	p.RemoveItem(it)
	p.emit(EventItemUsed, p.ID, map[string]interface{}{"item": string(it.Type)})
	return true
}

// CanEquip сообщает, можно ли надеть предмет
func (it *Item) CanEquip(p *Player) bool {
	return it.Profile.Equippable && p != nil
}

// Equip надевает предмет, снимая занятый слот
func (it *Item) Equip(p *Player) bool {
	if !it.CanEquip(p) {
		return false
	}

	switch it.Profile.Slot {
	case SlotWeapon:
		if p.EquippedWeapon != nil {
			p.EquippedWeapon.Unequip(p)
		}
		p.EquippedWeapon = it
	case SlotArmor:
		if p.EquippedArmor != nil {
			p.EquippedArmor.Unequip(p)
		}
		p.EquippedArmor = it
	default:
		return false
	}

	it.applyStats(p, 1)
	p.emit(EventItemEquipped, p.ID, map[string]interface{}{"item": string(it.Type)})
	return true
}

// Unequip снимает предмет, если он надет
func (it *Item) Unequip(p *Player) bool {
	if !it.Profile.Equippable || p == nil {
		return false
	}

	switch {
	case it.Profile.Slot == SlotWeapon && p.EquippedWeapon == it:
		p.EquippedWeapon = nil
	case it.Profile.Slot == SlotArmor && p.EquippedArmor == it:
		p.EquippedArmor = nil
	default:
		return false
	}

	it.applyStats(p, -1)
	return true
}

func (it *Item) applyStats(p *Player, sign int) {
	p.AttackDamage += sign * it.Profile.Stats.Attack
	if it.Profile.Stats.MaxHealth != 0 {
		p.MaxHealth += sign * it.Profile.Stats.MaxHealth
		if p.Health > p.MaxHealth {
			p.Health = p.MaxHealth
		}
	}
}
