package implementations

import (
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

// GrassBehavior реализует поведение блока травы
type GrassBehavior struct {
	block.BaseBehavior
}

// NewGrassBehavior создает поведение травы
func NewGrassBehavior() *GrassBehavior {
	return &GrassBehavior{BaseBehavior: block.NewBaseBehavior(block.GrassBlockID, "Grass")}
}

// ConvertToPickups - при раскопке трава превращается в землю
func (b *GrassBehavior) ConvertToPickups(meta block.Meta, tool *block.Tool, src loot.Source) []block.ItemStack {
	if tool.EnchantmentLevel(block.EnchantmentSilkTouch) > 0 {
		return []block.ItemStack{block.NewBlockStack(block.GrassBlockID, 1, 0)}
	}
	return []block.ItemStack{block.NewBlockStack(block.DirtBlockID, 1, 0)}
}

// MapBaseColourID возвращает цвет травы
func (b *GrassBehavior) MapBaseColourID(meta block.Meta) block.ColourID {
	return block.ColourGrass
}
