package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/annel0/memory-isle/internal/logging"
)

// StartLoggingListener подписывается на все игровые события и пишет их в лог.
// Критичные события (смерть, победа, смена карты, квест) идут на уровне INFO.
func StartLoggingListener(ctx context.Context, bus EventBus) (Subscription, error) {
	sub, err := bus.Subscribe(ctx, Filter{}, func(ctx context.Context, ev *Envelope) {
		line := describeEnvelope(ev)
		if ev.Priority >= PriorityCritical {
			logging.Info("🎮 %s", line)
			return
		}
		logging.Debug("🎮 %s", line)
	})
	if err != nil {
		return nil, err
	}
	logging.Info("🪵 Журнал игровых событий подключён к шине")
	return sub, nil
}

// describeEnvelope собирает строку вида "EnemyDefeated #7 experience=80 type=shadow_creature"
func describeEnvelope(ev *Envelope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d", ev.EventType, ev.EntityID)

	if len(ev.Payload) == 0 {
		return b.String()
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(ev.Payload, &fields); err != nil {
		fmt.Fprintf(&b, " payload=%s", ev.Payload)
		return b.String()
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
