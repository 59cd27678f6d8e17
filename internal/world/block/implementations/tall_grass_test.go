package implementations

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallGrass_Pickups(t *testing.T) {
	g := NewTallGrassBehavior()

	self := g.ConvertToPickups(TallGrassFern, shears, fixedSource{})
	require.Len(t, self, 1)
	assert.Equal(t, block.NewBlockStack(block.TallGrassBlockID, 1, TallGrassFern), self[0])

	assert.Empty(t, g.ConvertToPickups(TallGrassFern, nil, fixedSource{f: 0.99}))
	assert.Empty(t, g.ConvertToPickups(TallGrassGrass, nil, fixedSource{f: 0.1}))

	seeds := g.ConvertToPickups(TallGrassGrass, fortuneTool(1), fixedSource{f: 0.99, n: 2})
	require.Len(t, seeds, 1)
	assert.Equal(t, block.SeedsItemID, seeds[0].Item)
	assert.Equal(t, 3, seeds[0].Count, "с удачей 1 максимум 3 семени")

	assert.Empty(t, g.ConvertToPickups(TallGrassDeadShrub, nil, fixedSource{n: 0}))
	sticks := g.ConvertToPickups(TallGrassDeadShrub, nil, fixedSource{n: 2})
	require.Len(t, sticks, 1)
	assert.Equal(t, block.ItemStack{Item: block.SticksItemID, Count: 2}, sticks[0])
}

func TestTallGrass_CanBeAtAndCollision(t *testing.T) {
	g := NewTallGrassBehavior()
	api := newMockBlockAPI()

	assert.False(t, g.CanBeAt(api, vec.Vec3{Y: 0}, TallGrassGrass))
	api.put(vec.Vec3{Y: 0}, block.GrassBlockID, 0)
	assert.True(t, g.CanBeAt(api, vec.Vec3{Y: 1}, TallGrassGrass))
	assert.True(t, g.DoesIgnoreBuildCollision(api, block.ItemStack{}, vec.Vec3{Y: 1}, TallGrassGrass, block.FaceYP, true))
}
