package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Типы событий блоков, публикуемых миром
const (
	TypeBlockBroken    = "BlockBroken"
	TypeBlockPlaced    = "BlockPlaced"
	TypePickupsSpawned = "PickupsSpawned"
)

// ErrBusClosed возвращается при публикации в закрытую шину
var ErrBusClosed = errors.New("шина событий закрыта")

// Envelope описывает универсальный контейнер события.
type Envelope struct {
	ID            string            // Глобально уникальный идентификатор (UUID).
	Timestamp     time.Time         // Время создания события (UTC).
	Source        string            // Имя мира-источника.
	EventType     string            // Тип события (BlockBroken, BlockPlaced…).
	Version       int               // Схема полезной нагрузки.
	CorrelationID string            // Для связывания каскада разрушений.
	Priority      int               // 0=Low … 9=Critical (для backpressure).
	Payload       []byte            // Полезная нагрузка в JSON.
	Metadata      map[string]string // Произвольные метаданные.
}

// NewEnvelope создает конверт с новым UUID и сериализованной нагрузкой
func NewEnvelope(eventType, source string, payload interface{}) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("сериализация события %s: %w", eventType, err)
	}
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: eventType,
		Version:   1,
		Payload:   data,
	}, nil
}

// Decode разбирает нагрузку конверта в v
func (e *Envelope) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// Filter позволяет подписаться только на нужные события.
type Filter struct {
	Types   []string // Если пусто — все типы.
	Sources []string // Если пусто — все источники.
}

// Subscription возвращается при подписке; позволяет отписаться.
type Subscription interface {
	Unsubscribe()
}

// Handler потребляет события.
type Handler func(ctx context.Context, ev *Envelope)

// Stats агрегированные метрики шины.
type Stats struct {
	Published uint64
	Consumed  uint64
	Dropped   uint64
	InFlight  int
}

// EventBus определяет абстракцию шины событий.
type EventBus interface {
	Publish(ctx context.Context, ev *Envelope) error
	Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error)
	Metrics() Stats
	Close() error
}

//================ In-Memory implementation =================//

type memoryBus struct {
	mu          sync.RWMutex
	subscribers map[int]subscriber
	nextID      int
	stats       Stats
	buffer      chan *Envelope
	done        chan struct{}

	// closeMu защищает buffer от закрытия во время отправки
	closeMu sync.RWMutex
	closed  bool
}

type subscriber struct {
	filter  Filter
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewMemoryBus создаёт in-memory шину с указанным буфером. События
// доставляются подписчикам по одному в порядке публикации.
func NewMemoryBus(capacity int) EventBus {
	mb := &memoryBus{
		subscribers: make(map[int]subscriber),
		buffer:      make(chan *Envelope, capacity),
		done:        make(chan struct{}),
	}
	go mb.dispatchLoop()
	return mb
}

func (mb *memoryBus) Publish(ctx context.Context, ev *Envelope) error {
	mb.closeMu.RLock()
	defer mb.closeMu.RUnlock()
	if mb.closed {
		return ErrBusClosed
	}

	select {
	case mb.buffer <- ev:
		mb.mu.Lock()
		mb.stats.Published++
		mb.mu.Unlock()
		return nil
	default:
		// Буфер заполнен — дропаём низкий приоритет (<5)
		if ev.Priority < 5 {
			mb.mu.Lock()
			mb.stats.Dropped++
			mb.mu.Unlock()
			return nil
		}
		select {
		case mb.buffer <- ev:
			mb.mu.Lock()
			mb.stats.Published++
			mb.mu.Unlock()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (mb *memoryBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	mb.mu.Lock()
	id := mb.nextID
	mb.nextID++
	cctx, cancel := context.WithCancel(ctx)
	mb.subscribers[id] = subscriber{filter: f, handler: h, ctx: cctx, cancel: cancel}
	mb.mu.Unlock()

	return &memSub{bus: mb, id: id}, nil
}

func (mb *memoryBus) Metrics() Stats {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	s := mb.stats
	s.InFlight = len(mb.buffer)
	return s
}

// Close прекращает прием событий и дожидается доставки уже принятых.
func (mb *memoryBus) Close() error {
	mb.closeMu.Lock()
	if mb.closed {
		mb.closeMu.Unlock()
		return nil
	}
	mb.closed = true
	close(mb.buffer)
	mb.closeMu.Unlock()

	<-mb.done
	return nil
}

// dispatchLoop рассылает события подписчикам.
func (mb *memoryBus) dispatchLoop() {
	defer close(mb.done)
	for ev := range mb.buffer {
		mb.mu.RLock()
		subs := make([]subscriber, 0, len(mb.subscribers))
		for _, sub := range mb.subscribers {
			subs = append(subs, sub)
		}
		mb.mu.RUnlock()

		for _, sub := range subs {
			if !matchFilter(ev, sub.filter) || sub.ctx.Err() != nil {
				continue
			}
			sub.handler(sub.ctx, ev)
			mb.mu.Lock()
			mb.stats.Consumed++
			mb.mu.Unlock()
		}
	}
}

func matchFilter(ev *Envelope, f Filter) bool {
	match := func(val string, arr []string) bool {
		if len(arr) == 0 {
			return true
		}
		for _, v := range arr {
			if v == val {
				return true
			}
		}
		return false
	}
	return match(ev.EventType, f.Types) && match(ev.Source, f.Sources)
}

type memSub struct {
	bus *memoryBus
	id  int
}

func (s *memSub) Unsubscribe() {
	s.bus.mu.Lock()
	if sub, ok := s.bus.subscribers[s.id]; ok {
		sub.cancel()
		delete(s.bus.subscribers, s.id)
	}
	s.bus.mu.Unlock()
}
