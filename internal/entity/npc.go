package entity

import (
	"github.com/annel0/memory-isle/internal/vec"
)

// Параметры поведения NPC
const (
	NPCSize             = 32.0
	NPCInteractionRange = 50.0
	NPCMaxIdleTime      = 3000.0
	NPCPatrolSpeed      = 0.06
)

// NPCType — роль жителя
type NPCType string

const (
	NPCElder    NPCType = "elder"
	NPCMerchant NPCType = "merchant"
	NPCGuard    NPCType = "guard"
	NPCWanderer NPCType = "wanderer"
)

// Quest — запись задания
type Quest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Reward      string `json:"reward"`
}

// DialogueNode — узел дерева диалога; Next[i] соответствует Choices[i]
type DialogueNode struct {
	Text    string
	Choices []string
	Next    []string
}

// DialogueView — то, что показывается игроку
type DialogueView struct {
	Speaker string
	Text    string
	Choices []string
}

// Узлы дерева диалога
const (
	NodeStart       = "start"
	NodeContinue    = "continue"
	NodeQuests      = "quests"
	NodeAcceptQuest = "accept_quest"
	NodeEnd         = "end"
	NodeClose       = "close"
)

type npcBehavior uint8

const (
	npcIdle npcBehavior = iota
	npcPatrol
)

type npcContent struct {
	lines  []string
	quests []Quest
}

var npcContents = map[NPCType]npcContent{
	NPCElder: {
		lines: []string{
			"Добро пожаловать, путник. Я старейшина деревни.",
			"Остров проклят много поколений. Снять проклятие можно, лишь собрав осколки памяти.",
			"Начни путь в лесу к северу. Там первый осколок.",
		},
		quests: []Quest{{
			ID:          "find_memory_fragments",
			Title:       "Осколки памяти",
			Description: "Найди все 5 осколков памяти, разбросанных по острову",
			Kind:        "main",
			Reward:      "Доступ в Храм Теней",
		}},
	},
	NPCMerchant: {
		lines: []string{
			"Добро пожаловать в мою лавку!",
			"У меня есть целебные травы и полезные вещи.",
			"Заходи, когда понадобятся припасы.",
		},
	},
	NPCGuard: {
		lines: []string{
			"Стой! Кто идёт?",
			"А, ты новый искатель приключений. В деревне безопасно, но в глуши будь осторожен.",
			"Говорят, в лесу появились теневые твари.",
		},
	},
	NPCWanderer: {
		lines: []string{
			"Приветствую, странник.",
			"Я много лет брожу по этим землям. Древние руины хранят немало тайн.",
			"Берегись стражей, что их охраняют.",
		},
		quests: []Quest{{
			ID:          "explore_ruins",
			Title:       "Древние тайны",
			Description: "Исследуй древние руины и найди спрятанный осколок памяти",
			Kind:        "side",
			Reward:      "Опыт и предметы",
		}},
	},
}

var defaultNPCContent = npcContent{
	lines: []string{"Привет!", "Как поживаешь?", "Счастливого пути!"},
}

// NPC — житель, который говорит и выдаёт задания
type NPC struct {
	Base
	notifier

	Name string
	Type NPCType

	InteractionRange float64
	InDialogue       bool

	quests    []Quest
	completed map[string]bool
	tree      map[string]DialogueNode
	node      string

	behavior           npcBehavior
	idleTime           float64
	PatrolPoints       []vec.Vec2Float
	CurrentPatrolIndex int
}

// NewNPC создаёт жителя с репликами и заданиями своей роли
func NewNPC(pos vec.Vec2Float, name string, t NPCType) *NPC {
	n := &NPC{
		Base:             newBase(KindNPC, pos, vec.Vec2Float{X: NPCSize, Y: NPCSize}),
		Name:             name,
		Type:             t,
		InteractionRange: NPCInteractionRange,
		completed:        make(map[string]bool),
		node:             NodeStart,
	}

	content, ok := npcContents[t]
	if !ok {
		content = defaultNPCContent
	}
	for _, q := range content.quests {
		n.AddQuest(q)
	}
	n.buildTree(content.lines)
	n.SetMaxSpeed(NPCPatrolSpeed)
	return n
}

func (n *NPC) buildTree(lines []string) {
	second := "Пока мне больше нечего сказать."
	if len(lines) > 1 {
		second = lines[1]
	}
	first := ""
	if len(lines) > 0 {
		first = lines[0]
	}

	n.tree = map[string]DialogueNode{
		NodeStart: {
			Text:    first,
			Choices: []string{"Продолжить", "Спросить о заданиях", "До свидания"},
			Next:    []string{NodeContinue, NodeQuests, NodeEnd},
		},
		NodeContinue: {
			Text:    second,
			Choices: []string{"Спросить о заданиях", "До свидания"},
			Next:    []string{NodeQuests, NodeEnd},
		},
		NodeQuests: {
			Choices: []string{"Принять задание", "Продолжить", "До свидания"},
			Next:    []string{NodeAcceptQuest, NodeContinue, NodeEnd},
		},
		NodeAcceptQuest: {
			Text:    "Отлично! Я отмечу задание в твоём журнале.",
			Choices: []string{"Продолжить", "До свидания"},
			Next:    []string{NodeContinue, NodeEnd},
		},
		NodeEnd: {
			Text:    "Прощай, путник. Пусть дорога будет безопасной.",
			Choices: []string{"До свидания"},
			Next:    []string{NodeClose},
		},
	}
}

// Update — житель стоит, а при наличии маршрута обходит точки
func (n *NPC) Update(dt float64) {
	if !n.Active {
		return
	}
	n.integrate(dt)

	switch n.behavior {
	case npcIdle:
		n.Velocity = vec.Vec2Float{}
		n.idleTime += dt
		if n.idleTime > NPCMaxIdleTime {
			n.idleTime = 0
			if len(n.PatrolPoints) > 0 && !n.InDialogue {
				n.behavior = npcPatrol
			}
		}
	case npcPatrol:
		if len(n.PatrolPoints) == 0 || n.InDialogue {
			n.behavior = npcIdle
			return
		}
		point := n.PatrolPoints[n.CurrentPatrolIndex]
		if n.Position.DistanceTo(point) < PatrolArriveDistance {
			n.CurrentPatrolIndex = (n.CurrentPatrolIndex + 1) % len(n.PatrolPoints)
			n.behavior = npcIdle
			n.idleTime = 0
			return
		}
		n.Velocity = n.Position.DirectionTo(point).Mul(NPCPatrolSpeed)
	}
}

// OnCollide — жители не реагируют на касания
func (n *NPC) OnCollide(other Entity) {}

// IsPatrolling сообщает, идёт ли житель по маршруту
func (n *NPC) IsPatrolling() bool {
	return n.behavior == npcPatrol
}

// SetPatrolPoints задаёт маршрут
func (n *NPC) SetPatrolPoints(points []vec.Vec2Float) {
	n.PatrolPoints = append([]vec.Vec2Float(nil), points...)
	n.CurrentPatrolIndex = 0
}

// CanInteractWith сообщает, достаточно ли близко игрок
func (n *NPC) CanInteractWith(p *Player) bool {
	if p == nil || !n.Active || !p.Active {
		return false
	}
	return n.DistanceTo(&p.Base) <= n.InteractionRange
}

// StartDialogue открывает диалог; false — игрок слишком далеко
func (n *NPC) StartDialogue(p *Player) (DialogueView, bool) {
	if !n.CanInteractWith(p) {
		return DialogueView{}, false
	}
	n.InDialogue = true
	n.node = NodeStart
	n.Velocity = vec.Vec2Float{}

	view, _ := n.CurrentDialogue()
	n.emit(EventDialogue, n.ID, map[string]interface{}{"npc": n.Name, "node": n.node})
	return view, true
}

// CurrentDialogue возвращает текущий узел диалога
func (n *NPC) CurrentDialogue() (DialogueView, bool) {
	node, ok := n.tree[n.node]
	if !ok {
		return DialogueView{}, false
	}
	text := node.Text
	if n.node == NodeQuests {
		text = n.questDialogue()
	}
	return DialogueView{
		Speaker: n.Name,
		Text:    text,
		Choices: append([]string(nil), node.Choices...),
	}, true
}

// Choose выбирает вариант ответа. Принятое задание попадает в журнал игрока.
// false — диалог закрыт или индекс неверный.
func (n *NPC) Choose(index int, p *Player) (DialogueView, bool) {
	if !n.InDialogue {
		return DialogueView{}, false
	}
	node, ok := n.tree[n.node]
	if !ok || index < 0 || index >= len(node.Next) {
		return DialogueView{}, false
	}

	next := node.Next[index]
	if next == NodeClose {
		n.EndDialogue()
		return DialogueView{}, false
	}
	if next == NodeAcceptQuest {
		n.acceptQuest(p)
	}

	n.node = next
	return n.CurrentDialogue()
}

// EndDialogue закрывает диалог
func (n *NPC) EndDialogue() {
	n.InDialogue = false
	n.node = NodeStart
}

// DialogueNodeID возвращает имя текущего узла
func (n *NPC) DialogueNodeID() string {
	return n.node
}

func (n *NPC) questDialogue() string {
	if len(n.quests) == 0 {
		return "Сейчас у меня нет для тебя заданий."
	}
	q, ok := n.availableQuest()
	if !ok {
		return "Ты выполнил все мои задания. Спасибо!"
	}
	return "У меня есть задание: " + q.Title + ". " + q.Description
}

func (n *NPC) availableQuest() (Quest, bool) {
	for _, q := range n.quests {
		if !n.completed[q.ID] {
			return q, true
		}
	}
	return Quest{}, false
}

func (n *NPC) acceptQuest(p *Player) {
	q, ok := n.availableQuest()
	if !ok || p == nil {
		return
	}
	p.AddQuest(q)
}

// AddQuest добавляет задание, если его ещё нет
func (n *NPC) AddQuest(q Quest) {
	if n.HasQuest(q.ID) {
		return
	}
	n.quests = append(n.quests, q)
}

// HasQuest сообщает, выдаёт ли житель задание
func (n *NPC) HasQuest(id string) bool {
	for _, q := range n.quests {
		if q.ID == id {
			return true
		}
	}
	return false
}

// CompleteQuest отмечает задание выполненным
func (n *NPC) CompleteQuest(id string) {
	n.completed[id] = true
}

// IsQuestCompleted сообщает, выполнено ли задание
func (n *NPC) IsQuestCompleted(id string) bool {
	return n.completed[id]
}

// HasImportantDialogue сообщает, есть ли невыданные задания
func (n *NPC) HasImportantDialogue() bool {
	_, ok := n.availableQuest()
	return ok
}
