package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

// Подсостояния большого цветка (биты 0x07 нижней половины)
const (
	BigFlowerSunflower       block.Meta = 0
	BigFlowerLilac           block.Meta = 1
	BigFlowerDoubleTallGrass block.Meta = 2
	BigFlowerLargeFern       block.Meta = 3
	BigFlowerRoseBush        block.Meta = 4
	BigFlowerPeony           block.Meta = 5
)

// seedMissChance - вероятность того, что высокая трава ничего не уронит
const seedMissChance = 0.875

// BigFlowerBehavior описывает растение высотой в две ячейки: подсолнух,
// сирень, высокую траву, большой папоротник, розовый куст и пион.
// Нижняя половина хранит вид растения, верхняя - только бит половины.
type BigFlowerBehavior struct {
	block.BaseBehavior
	block.TwoCell
}

// NewBigFlowerBehavior создает поведение большого цветка
func NewBigFlowerBehavior() *BigFlowerBehavior {
	return &BigFlowerBehavior{BaseBehavior: block.NewBaseBehavior(block.BigFlowerBlockID, "BigFlower")}
}

// DoesIgnoreBuildCollision - сквозь высокую траву и большой папоротник можно
// строить. Верхняя половина берет вид растения из нижней; если нижнюю
// прочитать не удалось, считается, что это трава.
func (b *BigFlowerBehavior) DoesIgnoreBuildCollision(api block.BlockAPI, held block.ItemStack, pos vec.Vec3, meta block.Meta, face block.BlockFace, clickedDirectly bool) bool {
	lowerMeta, ok := b.LowerMeta(api, pos, meta, block.BigFlowerBlockID)
	if !ok {
		return true
	}

	flower := b.SubState(lowerMeta)
	return flower == BigFlowerDoubleTallGrass || flower == BigFlowerLargeFern
}

// ConvertToPickups - верхняя половина ничего не роняет. Ножницы дают сам
// цветок (даже траву и папоротник). Высокая трава роняет семена,
// большой папоротник - ничего, остальные - сами себя.
func (b *BigFlowerBehavior) ConvertToPickups(meta block.Meta, tool *block.Tool, src loot.Source) []block.ItemStack {
	if b.IsTopPart(meta) {
		return nil
	}

	flower := b.SubState(meta)
	if tool.IsPrecision() {
		return []block.ItemStack{block.NewBlockStack(block.BigFlowerBlockID, 1, flower)}
	}

	switch flower {
	case BigFlowerDoubleTallGrass:
		return seedDrop(src, tool)
	case BigFlowerLargeFern:
		return nil
	default:
		return []block.ItemStack{block.NewBlockStack(block.BigFlowerBlockID, 1, flower)}
	}
}

// CanBeAt - обе половины проверяют только корень в земле: CanBeAt
// вызывается и при установке, когда нижней половины может еще не быть
func (b *BigFlowerBehavior) CanBeAt(api block.BlockAPI, pos vec.Vec3, meta block.Meta) bool {
	root := b.RootPosition(pos, meta)
	if !api.IsValidHeight(root) {
		return false
	}
	id, ok := api.GetBlock(root)
	return ok && block.IsBlockTypeOfDirt(id)
}

// OnBroken разрушает вторую половину цветка
func (b *BigFlowerBehavior) OnBroken(api block.BlockAPI, pos vec.Vec3, oldID block.BlockID, oldMeta block.Meta, digger block.Digger) {
	b.BreakPartner(api, pos, oldID, oldMeta, digger)
}

// MapBaseColourID возвращает цвет растений независимо от вида
func (b *BigFlowerBehavior) MapBaseColourID(meta block.Meta) block.ColourID {
	return block.ColourPlant
}

// seedDrop - добыча травы: с вероятностью 87.5% ничего, иначе семена,
// количество растет с уровнем удачи
func seedDrop(src loot.Source, tool *block.Tool) []block.ItemStack {
	if loot.RandBool(src, seedMissChance) {
		return nil
	}
	count := loot.FortuneDiscreteRandom(src, 1, 1, 2*tool.FortuneLevel())
	return []block.ItemStack{{Item: block.SeedsItemID, Count: count}}
}
