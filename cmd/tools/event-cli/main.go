package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/eventbus"
)

const (
	defaultNATSURL = "nats://127.0.0.1:4222"
	timeFormat     = "15:04:05.000"
)

var knownTypes = []entity.EventType{
	entity.EventHealthChanged, entity.EventItemCollected, entity.EventItemUsed,
	entity.EventItemEquipped, entity.EventEnemyDefeated, entity.EventQuestAccepted,
	entity.EventQuestCompleted, entity.EventLevelUp, entity.EventMemoryFragment,
	entity.EventPlayerDied, entity.EventDialogue, entity.EventMapChanged, entity.EventVictory,
}

func main() {
	var (
		url        = flag.String("url", defaultNATSURL, "NATS server URL")
		stream     = flag.String("stream", "ISLE", "JetStream stream name")
		command    = flag.String("cmd", "tail", "Command: tail, types")
		eventTypes = flag.String("types", "", "Event types filter (comma-separated)")
		limit      = flag.Int("limit", 0, "Stop after N events (0 — без ограничения)")
	)
	flag.Parse()

	switch *command {
	case "types":
		for _, t := range knownTypes {
			fmt.Println(t)
		}
	case "tail":
		if err := tailEvents(*url, *stream, parseStringList(*eventTypes), *limit); err != nil {
			log.Fatalf("❌ Tail failed: %v", err)
		}
	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: tail, types")
		os.Exit(1)
	}
}

// tailEvents печатает события из стрима до сигнала или лимита
func tailEvents(url, stream string, types []string, limit int) error {
	bus, err := eventbus.NewJetStreamBus(url, stream, 24*time.Hour)
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seen := make(chan struct{}, 64)
	sub, err := bus.Subscribe(ctx, eventbus.Filter{Types: types}, func(_ context.Context, ev *eventbus.Envelope) {
		fmt.Println(formatEnvelope(ev))
		select {
		case seen <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	fmt.Printf("🎬 Tailing %s (types: %v)\n", stream, types)
	count := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-seen:
			count++
			if limit > 0 && count >= limit {
				return nil
			}
		}
	}
}

func formatEnvelope(ev *eventbus.Envelope) string {
	line := fmt.Sprintf("%s %-16s entity=%d", ev.Timestamp.Format(timeFormat), ev.EventType, ev.EntityID)
	if len(ev.Payload) > 0 {
		line += " " + string(ev.Payload)
	}
	return line
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
