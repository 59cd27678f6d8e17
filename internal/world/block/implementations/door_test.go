package implementations

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWoodenDoor_Pickups(t *testing.T) {
	d := NewWoodenDoorBehavior()

	lower := d.ConvertToPickups(DoorOpenBit|2, nil, fixedSource{})
	require.Len(t, lower, 1)
	assert.Equal(t, block.ItemStack{Item: block.WoodenDoorItemID, Count: 1}, lower[0])

	assert.Empty(t, d.ConvertToPickups(block.PartMarkerBit, nil, fixedSource{}))
	assert.Empty(t, d.ConvertToPickups(block.PartMarkerBit|1, shears, fixedSource{}))
}

func TestWoodenDoor_CanBeAt(t *testing.T) {
	d := NewWoodenDoorBehavior()
	api := newMockBlockAPI()

	api.put(vec.Vec3{Y: 0}, block.StoneBlockID, 0)
	assert.True(t, d.CanBeAt(api, vec.Vec3{Y: 1}, 0))
	assert.True(t, d.CanBeAt(api, vec.Vec3{Y: 2}, block.PartMarkerBit))

	// Воздух под дверью
	assert.False(t, d.CanBeAt(api, vec.Vec3{X: 1, Y: 1}, 0))
	// Дверь не стоит на растениях
	api.put(vec.Vec3{X: 2, Y: 0}, block.TallGrassBlockID, TallGrassGrass)
	assert.False(t, d.CanBeAt(api, vec.Vec3{X: 2, Y: 1}, 0))
	assert.False(t, d.CanBeAt(api, vec.Vec3{Y: 1}, block.PartMarkerBit), "корень верхней половины вне мира")
}

func TestWoodenDoor_Cascade(t *testing.T) {
	api := newMockBlockAPI()
	lower := vec.Vec3{X: 8, Y: 64, Z: 8}
	api.put(lower.AddedY(-1), block.StoneBlockID, 0)
	api.put(lower, block.WoodenDoorBlockID, 1)
	api.put(lower.AddedY(1), block.WoodenDoorBlockID, block.PartMarkerBit)

	api.breakWith(lower.AddedY(1), testPlayer{}, nil)

	id, _ := api.GetBlock(lower)
	assert.Equal(t, block.AirBlockID, id)
	require.Len(t, api.pickups, 1)
	assert.Equal(t, block.WoodenDoorItemID, api.pickups[0].Item)
}

func TestWoodenDoor_BlocksBuilding(t *testing.T) {
	d := NewWoodenDoorBehavior()
	assert.False(t, d.DoesIgnoreBuildCollision(newMockBlockAPI(), block.ItemStack{}, vec.Vec3{Y: 3}, 0, block.FaceNone, false))
}
