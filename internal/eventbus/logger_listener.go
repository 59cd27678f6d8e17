package eventbus

import (
	"context"

	"github.com/annel0/blockverse/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог
// компонента. Функция неблокирующая.
func StartLoggingListener(bus EventBus, logger *logging.Logger) (Subscription, error) {
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		logger.Debug("%s %s src=%s corr=%s size=%dB", ev.ID, ev.EventType, ev.Source, ev.CorrelationID, len(ev.Payload))
	})
	if err != nil {
		return nil, err
	}
	logger.Info("подписка на все события шины активирована")
	return sub, nil
}
