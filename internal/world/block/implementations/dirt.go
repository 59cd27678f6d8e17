package implementations

import (
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

// DirtBehavior реализует поведение блоков семейства земли: земля, пашня,
// мицелий. Все они роняют землю; мицелий с шелковым касанием роняет сам
// себя.
type DirtBehavior struct {
	block.BaseBehavior
	colour block.ColourID
}

// NewDirtBehavior создает поведение земляного блока
func NewDirtBehavior(id block.BlockID, name string) *DirtBehavior {
	return &DirtBehavior{BaseBehavior: block.NewBaseBehavior(id, name), colour: block.ColourDirt}
}

// ConvertToPickups возвращает землю
func (b *DirtBehavior) ConvertToPickups(meta block.Meta, tool *block.Tool, src loot.Source) []block.ItemStack {
	if b.BlockID == block.MyceliumBlockID && tool.EnchantmentLevel(block.EnchantmentSilkTouch) > 0 {
		return []block.ItemStack{block.NewBlockStack(b.BlockID, 1, 0)}
	}
	return []block.ItemStack{block.NewBlockStack(block.DirtBlockID, 1, 0)}
}

// MapBaseColourID возвращает цвет земли
func (b *DirtBehavior) MapBaseColourID(meta block.Meta) block.ColourID {
	return b.colour
}
