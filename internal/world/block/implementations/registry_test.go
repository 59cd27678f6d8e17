package implementations

import (
	"testing"

	"github.com/annel0/blockverse/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.True(t, r.Sealed())

	for _, b := range All() {
		got, ok := r.Get(b.ID())
		require.True(t, ok, "нет обработчика для %s", b.Name())
		assert.Equal(t, b.Name(), got.Name())
	}

	_, ok := r.Get(200)
	assert.False(t, ok)

	err = r.Register(NewAirBehavior(), 200)
	assert.ErrorIs(t, err, block.ErrRegistrySealed)
}

func TestDefaultRegistryShared(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestMultiCellBehaviors(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	for _, id := range []block.BlockID{block.BigFlowerBlockID, block.WoodenDoorBlockID} {
		b, _ := r.Get(id)
		mc, ok := b.(block.MultiCellBehavior)
		require.True(t, ok, "%s должен занимать две ячейки", b.Name())
		assert.True(t, mc.IsTopPart(mc.UpperMeta(3)))
	}

	stone, _ := r.Get(block.StoneBlockID)
	_, ok := stone.(block.MultiCellBehavior)
	assert.False(t, ok)
}

func TestBasicDrops(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	pick := &block.Tool{Item: 274}
	silk := &block.Tool{Item: 274, Enchantments: map[block.EnchantmentID]int{block.EnchantmentSilkTouch: 1}}

	stone, _ := r.Get(block.StoneBlockID)
	assert.Empty(t, stone.ConvertToPickups(0, nil, fixedSource{}), "камень рукой не добывается")
	assert.Equal(t, []block.ItemStack{block.NewBlockStack(block.CobblestoneBlockID, 1, 0)}, stone.ConvertToPickups(0, pick, fixedSource{}))
	assert.Equal(t, []block.ItemStack{block.NewBlockStack(block.StoneBlockID, 1, 0)}, stone.ConvertToPickups(0, silk, fixedSource{}))

	for _, id := range []block.BlockID{block.GrassBlockID, block.DirtBlockID, block.FarmlandBlockID, block.MyceliumBlockID} {
		b, _ := r.Get(id)
		assert.Equal(t, []block.ItemStack{block.NewBlockStack(block.DirtBlockID, 1, 0)}, b.ConvertToPickups(0, nil, fixedSource{}), b.Name())
	}

	farmland, _ := r.Get(block.FarmlandBlockID)
	assert.Equal(t, []block.ItemStack{block.NewBlockStack(block.DirtBlockID, 1, 0)}, farmland.ConvertToPickups(0, silk, fixedSource{}), "пашня всегда роняет землю")
	mycelium, _ := r.Get(block.MyceliumBlockID)
	assert.Equal(t, []block.ItemStack{block.NewBlockStack(block.MyceliumBlockID, 1, 0)}, mycelium.ConvertToPickups(0, silk, fixedSource{}))

	air, _ := r.Get(block.AirBlockID)
	assert.Empty(t, air.ConvertToPickups(0, pick, fixedSource{}))
	assert.Equal(t, block.ColourNone, air.MapBaseColourID(0))
}
