package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	nats "github.com/nats-io/nats.go"
)

// SubjectPrefix - префикс subject'ов событий блоков в JetStream
const SubjectPrefix = "blocks"

// DefaultStream - имя стрима по умолчанию
const DefaultStream = "BLOCKS"

// JetStreamBus реализует EventBus поверх NATS JetStream.
type JetStreamBus struct {
	nc        *nats.Conn
	js        nats.JetStreamContext
	stream    string
	published uint64
	consumed  uint64
	dropped   uint64
}

// NewJetStreamBus подключается к кластеру NATS и гарантирует наличие стрима.
// url: nats://127.0.0.1:4222, stream: "BLOCKS".
func NewJetStreamBus(url, stream string, retention time.Duration) (*JetStreamBus, error) {
	if stream == "" {
		stream = DefaultStream
	}

	nc, err := nats.Connect(url, nats.Name("blockverse"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Drain()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if _, err = js.StreamInfo(stream); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:      stream,
			Subjects:  []string{SubjectPrefix + ".*"},
			Retention: nats.LimitsPolicy,
			MaxAge:    retention,
			Storage:   nats.FileStorage,
		})
		if err != nil {
			nc.Drain()
			return nil, fmt.Errorf("add stream: %w", err)
		}
	}

	return &JetStreamBus{nc: nc, js: js, stream: stream}, nil
}

// Subject возвращает subject для типа события
func Subject(eventType string) string {
	return SubjectPrefix + "." + eventType
}

// Publish сериализует Envelope в JSON и публикует в subject blocks.<type>.
// Идентификатор конверта используется для дедупликации на стороне сервера.
func (jb *JetStreamBus) Publish(ctx context.Context, ev *Envelope) error {
	data, err := json.Marshal(ev)
	if err != nil {
		atomic.AddUint64(&jb.dropped, 1)
		return err
	}
	_, err = jb.js.Publish(Subject(ev.EventType), data, nats.Context(ctx), nats.MsgId(ev.ID))
	if err != nil {
		atomic.AddUint64(&jb.dropped, 1)
		return err
	}
	atomic.AddUint64(&jb.published, 1)
	return nil
}

// Subscribe создаёт эфемерного потребителя и вызывает handler для каждого
// подходящего события.
func (jb *JetStreamBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	subj := SubjectPrefix + ".*"
	if len(f.Types) == 1 {
		subj = Subject(f.Types[0])
	}

	natSub, err := jb.js.Subscribe(subj, func(msg *nats.Msg) {
		var ev Envelope
		if err := json.Unmarshal(msg.Data, &ev); err == nil && matchFilter(&ev, f) {
			h(ctx, &ev)
			atomic.AddUint64(&jb.consumed, 1)
		}
		_ = msg.Ack()
	}, nats.ManualAck(), nats.DeliverNew(), nats.AckWait(30*time.Second))
	if err != nil {
		return nil, err
	}

	return &jetSub{natSub}, nil
}

// jetSub обёртка вокруг *nats.Subscription чтобы удовлетворить наш интерфейс.
type jetSub struct {
	s *nats.Subscription
}

func (j *jetSub) Unsubscribe() {
	_ = j.s.Unsubscribe()
}

// Metrics возвращает текущие метрики.
func (jb *JetStreamBus) Metrics() Stats {
	return Stats{
		Published: atomic.LoadUint64(&jb.published),
		Consumed:  atomic.LoadUint64(&jb.consumed),
		Dropped:   atomic.LoadUint64(&jb.dropped),
		InFlight:  0, // jetstream keeps its own queue
	}
}

// Close дожидается отправки буферов и закрывает соединение.
func (jb *JetStreamBus) Close() error {
	return jb.nc.Drain()
}
