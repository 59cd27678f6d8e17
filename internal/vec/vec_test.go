package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_ChunkCoords(t *testing.T) {
	assert.Equal(t, Vec2{X: 0, Y: 0}, Vec3{X: 15, Y: 100, Z: 0}.ToChunkCoords())
	assert.Equal(t, Vec2{X: -1, Y: 1}, Vec3{X: -1, Y: 0, Z: 16}.ToChunkCoords())
	assert.Equal(t, Vec3{X: 15, Y: 7, Z: 0}, Vec3{X: -1, Y: 7, Z: 16}.LocalInChunk())
}

func TestVec3_AddedY(t *testing.T) {
	p := Vec3{X: 1, Y: 5, Z: 2}
	assert.Equal(t, Vec3{X: 1, Y: 3, Z: 2}, p.AddedY(-2))
	assert.Equal(t, Vec3{X: 1, Y: 5, Z: 2}, p, "исходная позиция не меняется")
	assert.Equal(t, Vec2{X: 1, Y: 2}, p.Column())
}

func TestVec2_LocalInChunk(t *testing.T) {
	assert.Equal(t, Vec2{X: 15, Y: 1}, Vec2{X: -17, Y: 33}.LocalInChunk())
}
