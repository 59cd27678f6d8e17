package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

// Биты нижней половины двери
const (
	DoorFacingMask block.Meta = 0x03
	DoorOpenBit    block.Meta = 0x04
)

// WoodenDoorBehavior описывает деревянную дверь, которая занимает две
// ячейки. Нижняя половина хранит направление и открытость, верхняя -
// только бит половины.
type WoodenDoorBehavior struct {
	block.BaseBehavior
	block.TwoCell
}

// NewWoodenDoorBehavior создает поведение деревянной двери
func NewWoodenDoorBehavior() *WoodenDoorBehavior {
	return &WoodenDoorBehavior{BaseBehavior: block.NewBaseBehavior(block.WoodenDoorBlockID, "WoodenDoor")}
}

// ConvertToPickups - предмет двери роняет только нижняя половина
func (b *WoodenDoorBehavior) ConvertToPickups(meta block.Meta, tool *block.Tool, src loot.Source) []block.ItemStack {
	if b.IsTopPart(meta) {
		return nil
	}
	return []block.ItemStack{{Item: block.WoodenDoorItemID, Count: 1}}
}

// CanBeAt - под нижней половиной должен быть твердый блок
func (b *WoodenDoorBehavior) CanBeAt(api block.BlockAPI, pos vec.Vec3, meta block.Meta) bool {
	root := b.RootPosition(pos, meta)
	if !api.IsValidHeight(root) {
		return false
	}
	id, ok := api.GetBlock(root)
	return ok && isSolidSupport(id)
}

// OnBroken разрушает вторую половину двери
func (b *WoodenDoorBehavior) OnBroken(api block.BlockAPI, pos vec.Vec3, oldID block.BlockID, oldMeta block.Meta, digger block.Digger) {
	b.BreakPartner(api, pos, oldID, oldMeta, digger)
}

func (b *WoodenDoorBehavior) MapBaseColourID(meta block.Meta) block.ColourID {
	return block.ColourWood
}
