package entity

import (
	"github.com/annel0/memory-isle/internal/vec"
)

// PlayerSnapshot — плоское сериализуемое состояние игрока
type PlayerSnapshot struct {
	MapID            string   `json:"map_id"`
	X                float64  `json:"x"`
	Y                float64  `json:"y"`
	Health           int      `json:"health"`
	MaxHealth        int      `json:"max_health"`
	AttackDamage     int      `json:"attack_damage"`
	Level            int      `json:"level"`
	Experience       int      `json:"experience"`
	ExperienceToNext int      `json:"experience_to_next"`
	Inventory        []string `json:"inventory"`
	QuestLog         []Quest  `json:"quest_log"`
	MemoryFragments  int      `json:"memory_fragments"`
	EquippedWeapon   string   `json:"equipped_weapon,omitempty"`
	EquippedArmor    string   `json:"equipped_armor,omitempty"`
}

// Snapshot снимает состояние игрока на карте mapID
func (p *Player) Snapshot(mapID string) PlayerSnapshot {
	s := PlayerSnapshot{
		MapID:            mapID,
		X:                p.Position.X,
		Y:                p.Position.Y,
		Health:           p.Health,
		MaxHealth:        p.MaxHealth,
		AttackDamage:     p.AttackDamage,
		Level:            p.Level,
		Experience:       p.Experience,
		ExperienceToNext: p.ExperienceToNext,
		QuestLog:         append([]Quest(nil), p.QuestLog...),
		MemoryFragments:  p.MemoryFragments,
	}
	for _, it := range p.Inventory {
		s.Inventory = append(s.Inventory, string(it.Type))
	}
	if p.EquippedWeapon != nil {
		s.EquippedWeapon = string(p.EquippedWeapon.Type)
	}
	if p.EquippedArmor != nil {
		s.EquippedArmor = string(p.EquippedArmor.Type)
	}
	return s
}

// Valid проверяет согласованность снимка
func (s PlayerSnapshot) Valid() bool {
	switch {
	case s.MaxHealth <= 0, s.Health <= 0, s.Health > s.MaxHealth:
		return false
	case s.Level < 1, s.Experience < 0, s.ExperienceToNext <= 0:
		return false
	case s.MemoryFragments < 0, s.MemoryFragments > MaxMemoryFragments:
		return false
	case len(s.Inventory) > MaxInventorySize:
		return false
	}
	return true
}

// Restore применяет снимок. Несогласованный снимок не применяется,
// игрок сбрасывается в стартовое состояние и возвращается false.
func (p *Player) Restore(s PlayerSnapshot) bool {
	if !s.Valid() {
		p.Reset(p.Position)
		return false
	}

	p.Reset(vec.Vec2Float{X: s.X, Y: s.Y})
	p.Level = s.Level
	p.Experience = s.Experience
	p.ExperienceToNext = s.ExperienceToNext
	p.QuestLog = append([]Quest(nil), s.QuestLog...)
	p.MemoryFragments = s.MemoryFragments

	for _, t := range s.Inventory {
		it := NewItem(p.Position, ItemType(t))
		it.Destroy()
		p.Inventory = append(p.Inventory, it)
	}
	p.EquippedWeapon = p.findOwned(ItemType(s.EquippedWeapon))
	p.EquippedArmor = p.findOwned(ItemType(s.EquippedArmor))

	// Бонусы экипировки уже учтены в сохранённых характеристиках
	p.MaxHealth = s.MaxHealth
	p.Health = s.Health
	if s.AttackDamage > 0 {
		p.AttackDamage = s.AttackDamage
	}
	return true
}

func (p *Player) findOwned(t ItemType) *Item {
	if t == "" {
		return nil
	}
	for _, it := range p.Inventory {
		if it.Type == t {
			return it
		}
	}
	return nil
}
