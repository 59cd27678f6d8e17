package world

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/google/uuid"
)

// DroppedItem - стопка предметов, выброшенная в мир при разрушении блока
type DroppedItem struct {
	ID    uuid.UUID
	Pos   vec.Vec3
	Stack block.ItemStack
}

func newDroppedItem(pos vec.Vec3, stack block.ItemStack) DroppedItem {
	return DroppedItem{ID: uuid.New(), Pos: pos, Stack: stack}
}
