package world

import (
	"context"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/vec"
)

// BlockBrokenEvent публикуется при разрушении ячейки. Cascade - ячейку
// удалил обработчик соседней половины структуры.
type BlockBrokenEvent struct {
	Pos      vec.Vec3 `json:"pos"`
	BlockID  uint8    `json:"block_id"`
	Meta     uint8    `json:"meta"`
	Block    string   `json:"block"`
	Cascade  bool     `json:"cascade"`
	ByPlayer bool     `json:"by_player"`
}

// BlockPlacedEvent публикуется при установке блока
type BlockPlacedEvent struct {
	Pos     vec.Vec3 `json:"pos"`
	BlockID uint8    `json:"block_id"`
	Meta    uint8    `json:"meta"`
	Block   string   `json:"block"`
}

// PickupEntry - одна выброшенная стопка
type PickupEntry struct {
	ID     string `json:"id"`
	Item   uint16 `json:"item"`
	Count  int    `json:"count"`
	Damage int16  `json:"damage"`
}

// PickupsSpawnedEvent публикуется, когда разрушение дало добычу
type PickupsSpawnedEvent struct {
	Pos   vec.Vec3      `json:"pos"`
	Items []PickupEntry `json:"items"`
}

type pendingEvent struct {
	eventType string
	payload   interface{}
}

// publish отправляет накопленные за Exec события. Вызывается после
// освобождения блокировки чанка.
func (w *World) publish(correlationID string, events []pendingEvent) {
	if w.bus == nil {
		return
	}
	for _, pe := range events {
		env, err := eventbus.NewEnvelope(pe.eventType, w.name, pe.payload)
		if err != nil {
			w.logger.Warn("событие %s не сформировано: %v", pe.eventType, err)
			continue
		}
		env.CorrelationID = correlationID
		if err := w.bus.Publish(context.Background(), env); err != nil {
			w.logger.Warn("событие %s не опубликовано: %v", pe.eventType, err)
		}
	}
}
