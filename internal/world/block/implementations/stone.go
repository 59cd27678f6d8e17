package implementations

import (
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

// StoneBehavior реализует поведение блока камня
type StoneBehavior struct {
	block.BaseBehavior
}

// NewStoneBehavior создает поведение камня
func NewStoneBehavior() *StoneBehavior {
	return &StoneBehavior{BaseBehavior: block.NewBaseBehavior(block.StoneBlockID, "Stone")}
}

// ConvertToPickups - камень рукой не добывается, инструментом дает булыжник,
// с шелковым касанием - сам камень
func (b *StoneBehavior) ConvertToPickups(meta block.Meta, tool *block.Tool, src loot.Source) []block.ItemStack {
	if tool == nil {
		return nil
	}
	if tool.EnchantmentLevel(block.EnchantmentSilkTouch) > 0 {
		return []block.ItemStack{block.NewBlockStack(block.StoneBlockID, 1, 0)}
	}
	return []block.ItemStack{block.NewBlockStack(block.CobblestoneBlockID, 1, 0)}
}

// MapBaseColourID возвращает цвет камня
func (b *StoneBehavior) MapBaseColourID(meta block.Meta) block.ColourID {
	return block.ColourStone
}

// SolidBehavior - простой твердый блок, который роняет сам себя
type SolidBehavior struct {
	block.BaseBehavior
	colour block.ColourID
}

// NewSolidBehavior создает простой твердый блок
func NewSolidBehavior(id block.BlockID, name string, colour block.ColourID) *SolidBehavior {
	return &SolidBehavior{BaseBehavior: block.NewBaseBehavior(id, name), colour: colour}
}

// MapBaseColourID возвращает цвет блока
func (b *SolidBehavior) MapBaseColourID(meta block.Meta) block.ColourID {
	return b.colour
}

// isSolidSupport сообщает, может ли блок служить опорой для двери
func isSolidSupport(id block.BlockID) bool {
	return id == block.StoneBlockID || id == block.CobblestoneBlockID || block.IsBlockTypeOfDirt(id)
}
