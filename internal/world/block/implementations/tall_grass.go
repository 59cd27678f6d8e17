package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

// Подсостояния низкой травы
const (
	TallGrassDeadShrub block.Meta = 0
	TallGrassGrass     block.Meta = 1
	TallGrassFern      block.Meta = 2
)

// TallGrassBehavior - растение в одну ячейку, сквозь которое можно строить
type TallGrassBehavior struct {
	block.BaseBehavior
}

// NewTallGrassBehavior создает поведение низкой травы
func NewTallGrassBehavior() *TallGrassBehavior {
	return &TallGrassBehavior{BaseBehavior: block.NewBaseBehavior(block.TallGrassBlockID, "TallGrass")}
}

func (b *TallGrassBehavior) DoesIgnoreBuildCollision(api block.BlockAPI, held block.ItemStack, pos vec.Vec3, meta block.Meta, face block.BlockFace, clickedDirectly bool) bool {
	return true
}

// ConvertToPickups - ножницы дают сам блок; трава роняет семена,
// сухой куст - до двух палок, папоротник - ничего
func (b *TallGrassBehavior) ConvertToPickups(meta block.Meta, tool *block.Tool, src loot.Source) []block.ItemStack {
	kind := meta & block.SubStateMask
	if tool.IsPrecision() {
		return []block.ItemStack{block.NewBlockStack(block.TallGrassBlockID, 1, kind)}
	}

	switch kind {
	case TallGrassGrass:
		return seedDrop(src, tool)
	case TallGrassDeadShrub:
		count := loot.FortuneDiscreteRandom(src, 0, 2, 0)
		if count == 0 {
			return nil
		}
		return []block.ItemStack{{Item: block.SticksItemID, Count: count}}
	default:
		return nil
	}
}

// CanBeAt - растет только на земле
func (b *TallGrassBehavior) CanBeAt(api block.BlockAPI, pos vec.Vec3, meta block.Meta) bool {
	below := pos.AddedY(-1)
	if !api.IsValidHeight(below) {
		return false
	}
	id, ok := api.GetBlock(below)
	return ok && block.IsBlockTypeOfDirt(id)
}

func (b *TallGrassBehavior) MapBaseColourID(meta block.Meta) block.ColourID {
	return block.ColourPlant
}
