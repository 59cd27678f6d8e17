package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

// AirBehavior реализует поведение пустого блока (воздуха)
type AirBehavior struct {
	block.BaseBehavior
}

// NewAirBehavior создает поведение воздуха
func NewAirBehavior() *AirBehavior {
	return &AirBehavior{BaseBehavior: block.NewBaseBehavior(block.AirBlockID, "Air")}
}

// DoesIgnoreBuildCollision - в воздух можно строить всегда
func (b *AirBehavior) DoesIgnoreBuildCollision(api block.BlockAPI, held block.ItemStack, pos vec.Vec3, meta block.Meta, face block.BlockFace, clickedDirectly bool) bool {
	return true
}

// ConvertToPickups - воздух ничего не роняет
func (b *AirBehavior) ConvertToPickups(meta block.Meta, tool *block.Tool, src loot.Source) []block.ItemStack {
	return nil
}
