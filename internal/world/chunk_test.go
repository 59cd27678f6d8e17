package world

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNibbleArray(t *testing.T) {
	a := NewNibbleArray(5)
	require.Len(t, a, 3)

	a.Set(0, 0x3)
	a.Set(1, 0xC)
	a.Set(4, 0x1F)

	assert.Equal(t, uint8(0x3), a.Get(0))
	assert.Equal(t, uint8(0xC), a.Get(1))
	assert.Equal(t, uint8(0xF), a.Get(4), "старшие биты отбрасываются")
	assert.Equal(t, byte(0xC3), a[0])

	a.Set(0, 0)
	assert.Equal(t, uint8(0xC), a.Get(1), "соседнее значение не затронуто")
}

func TestChunk_SetGet(t *testing.T) {
	c := NewChunk(vec.Vec2{X: 1, Y: -1}, 32)
	local := vec.Vec3{X: 15, Y: 31, Z: 0}

	c.set(local, Block{ID: block.BigFlowerBlockID, Meta: 0x1A})
	b := c.get(local)
	assert.Equal(t, block.BigFlowerBlockID, b.ID)
	assert.Equal(t, block.Meta(0x0A), b.Meta, "метаданные хранятся в 4 битах")
	assert.True(t, c.IsDirty())

	assert.Equal(t, 1, c.ChangeCounter)

	_, _, changes := c.Raw()
	c.set(vec.Vec3{X: 1, Y: 1, Z: 1}, Block{ID: block.StoneBlockID})
	c.MarkSaved(changes)
	assert.True(t, c.IsDirty(), "изменение после снимка не потеряно")
	c.MarkSaved(1)
	assert.False(t, c.IsDirty())
}

func TestChunk_HighestBlock(t *testing.T) {
	c := NewChunk(vec.Vec2{}, 16)
	_, _, ok := c.HighestBlock(3, 4)
	assert.False(t, ok)

	c.set(vec.Vec3{X: 3, Y: 2, Z: 4}, Block{ID: block.DirtBlockID})
	c.set(vec.Vec3{X: 3, Y: 7, Z: 4}, Block{ID: block.TallGrassBlockID, Meta: 1})

	b, y, ok := c.HighestBlock(3, 4)
	require.True(t, ok)
	assert.Equal(t, 7, y)
	assert.Equal(t, block.TallGrassBlockID, b.ID)
}

func TestChunk_RawRoundTrip(t *testing.T) {
	c := NewChunk(vec.Vec2{X: 2, Y: 3}, 16)
	c.set(vec.Vec3{X: 1, Y: 1, Z: 1}, Block{ID: block.WoodenDoorBlockID, Meta: 5})

	ids, metas, _ := c.Raw()
	restored, err := ChunkFromRaw(c.Coords, 16, ids, metas)
	require.NoError(t, err)
	assert.Equal(t, c.get(vec.Vec3{X: 1, Y: 1, Z: 1}), restored.get(vec.Vec3{X: 1, Y: 1, Z: 1}))
	assert.False(t, restored.IsDirty())

	_, err = ChunkFromRaw(c.Coords, 32, ids, metas)
	assert.Error(t, err)
	_, err = ChunkFromRaw(c.Coords, 16, ids, metas[:10])
	assert.Error(t, err)
}
