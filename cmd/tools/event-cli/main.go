package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/annel0/blockverse/internal/eventbus"
)

const (
	defaultNatsURL = "nats://127.0.0.1:4222"
	timeFormat     = "2006-01-02T15:04:05Z"
)

func main() {
	var (
		natsURL    = flag.String("nats", defaultNatsURL, "NATS server address")
		stream     = flag.String("stream", eventbus.DefaultStream, "JetStream stream name")
		command    = flag.String("cmd", "tail", "Command: tail, stats, types")
		eventTypes = flag.String("types", "", "Event types filter (comma-separated)")
		worlds     = flag.String("worlds", "", "World names filter (comma-separated)")
		window     = flag.Duration("for", 30*time.Second, "Stats collection window")
		limit      = flag.Int("limit", 0, "Stop tail after N events (0 = unlimited)")
	)
	flag.Parse()

	if *command == "types" {
		showTypes()
		return
	}

	bus, err := eventbus.NewJetStreamBus(*natsURL, *stream, 24*time.Hour)
	if err != nil {
		log.Fatalf("❌ Failed to connect to NATS: %v", err)
	}
	defer bus.Close()

	filter := eventbus.Filter{
		Types:   parseStringList(*eventTypes),
		Sources: parseStringList(*worlds),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *command {
	case "tail":
		if err := tailEvents(ctx, bus, filter, *limit); err != nil {
			log.Fatalf("❌ Tail failed: %v", err)
		}
	case "stats":
		if err := showStats(ctx, bus, filter, *window); err != nil {
			log.Fatalf("❌ Stats failed: %v", err)
		}
	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: tail, stats, types")
		os.Exit(1)
	}
}

// tailEvents выводит события в реальном времени
func tailEvents(ctx context.Context, bus eventbus.EventBus, filter eventbus.Filter, limit int) error {
	fmt.Printf("🎬 Tailing block events (limit: %d)\n", limit)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu    sync.Mutex
		count int
	)
	sub, err := bus.Subscribe(ctx, filter, func(_ context.Context, ev *eventbus.Envelope) {
		mu.Lock()
		defer mu.Unlock()
		count++
		printEvent(ev)
		if limit > 0 && count >= limit {
			cancel()
		}
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	<-ctx.Done()
	return nil
}

func printEvent(ev *eventbus.Envelope) {
	var payload map[string]interface{}
	_ = json.Unmarshal(ev.Payload, &payload)
	fmt.Printf("[%s] %-15s world=%s corr=%s %v\n",
		ev.Timestamp.Format(timeFormat), ev.EventType, ev.Source, shortID(ev.CorrelationID), payload)
}

// showStats считает события по типам за окно времени
func showStats(ctx context.Context, bus eventbus.EventBus, filter eventbus.Filter, window time.Duration) error {
	fmt.Printf("📊 Collecting stats for %s...\n", window)

	var mu sync.Mutex
	byType := make(map[string]int)
	sub, err := bus.Subscribe(ctx, filter, func(_ context.Context, ev *eventbus.Envelope) {
		mu.Lock()
		byType[ev.EventType]++
		mu.Unlock()
	})
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-time.After(window):
	}
	sub.Unsubscribe()

	mu.Lock()
	defer mu.Unlock()
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %-15s %d\n", t, byType[t])
	}
	return nil
}

func showTypes() {
	for _, t := range []string{eventbus.TypeBlockBroken, eventbus.TypeBlockPlaced, eventbus.TypePickupsSpawned} {
		fmt.Printf("  %-15s subject=%s\n", t, eventbus.Subject(t))
	}
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
