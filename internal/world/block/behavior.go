package block

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

// Meta - 4-битное дополнительное состояние ячейки (0-15).
// Смысл битов определяется типом блока.
type Meta uint8

// MetaMask отсекает все, что не помещается в 4 бита
const MetaMask Meta = 0x0F

// BlockFace - грань блока, по которой кликнул игрок
type BlockFace int8

const (
	FaceNone BlockFace = iota - 1
	FaceYM
	FaceYP
	FaceZM
	FaceZP
	FaceXM
	FaceXP
)

// ColourID - индекс базового цвета в палитре карт
type ColourID uint8

// Базовые цвета палитры карт, используемые обработчиками
const (
	ColourNone  ColourID = 0
	ColourGrass ColourID = 1
	ColourPlant ColourID = 7
	ColourDirt  ColourID = 10
	ColourStone ColourID = 11
	ColourWood  ColourID = 13
)

// BlockBehavior определяет поведение типа блока.
// Реализации не хранят изменяемого состояния между вызовами: один
// экземпляр обслуживает все позиции и все потоки.
type BlockBehavior interface {
	ID() BlockID
	Name() string

	// DoesIgnoreBuildCollision сообщает, можно ли строить сквозь блок,
	// заменяя его.
	DoesIgnoreBuildCollision(api BlockAPI, held ItemStack, pos vec.Vec3, meta Meta, face BlockFace, clickedDirectly bool) bool

	// ConvertToPickups возвращает добычу при разрушении блока с данными
	// метаданными. tool == nil означает разрушение рукой.
	ConvertToPickups(meta Meta, tool *Tool, src loot.Source) []ItemStack

	// CanBeAt проверяет, может ли блок находиться в позиции (опора).
	CanBeAt(api BlockAPI, pos vec.Vec3, meta Meta) bool

	// OnBroken вызывается после того, как ячейка перестала быть этим блоком.
	OnBroken(api BlockAPI, pos vec.Vec3, oldID BlockID, oldMeta Meta, digger Digger)

	// MapBaseColourID возвращает базовый цвет для карт.
	MapBaseColourID(meta Meta) ColourID
}

// BaseBehavior реализует поведение по умолчанию: твердый блок, который
// роняет сам себя и не связан с соседними ячейками. Конкретные блоки
// встраивают его и переопределяют только нужные методы.
type BaseBehavior struct {
	BlockID   BlockID
	BlockName string
}

// NewBaseBehavior создает базовое поведение для типа
func NewBaseBehavior(id BlockID, name string) BaseBehavior {
	return BaseBehavior{BlockID: id, BlockName: name}
}

// ID возвращает идентификатор блока
func (b BaseBehavior) ID() BlockID {
	return b.BlockID
}

// Name возвращает имя блока
func (b BaseBehavior) Name() string {
	return b.BlockName
}

// DoesIgnoreBuildCollision по умолчанию false: блок мешает строительству
func (b BaseBehavior) DoesIgnoreBuildCollision(api BlockAPI, held ItemStack, pos vec.Vec3, meta Meta, face BlockFace, clickedDirectly bool) bool {
	return false
}

// ConvertToPickups по умолчанию возвращает один блок этого типа
func (b BaseBehavior) ConvertToPickups(meta Meta, tool *Tool, src loot.Source) []ItemStack {
	return []ItemStack{NewBlockStack(b.BlockID, 1, 0)}
}

// CanBeAt по умолчанию разрешает любую позицию
func (b BaseBehavior) CanBeAt(api BlockAPI, pos vec.Vec3, meta Meta) bool {
	return true
}

// OnBroken по умолчанию ничего не делает
func (b BaseBehavior) OnBroken(api BlockAPI, pos vec.Vec3, oldID BlockID, oldMeta Meta, digger Digger) {}

// MapBaseColourID по умолчанию - прозрачный цвет
func (b BaseBehavior) MapBaseColourID(meta Meta) ColourID {
	return ColourNone
}
