package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/implementations"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeight = 32

func testLogger() *logging.Logger {
	return logging.NewConsoleLogger("storage-test", logging.ERROR)
}

func newTestStore(t *testing.T, dir string) *ChunkStore {
	t.Helper()
	reg, err := implementations.NewRegistry()
	require.NoError(t, err)
	cs, err := NewChunkStore(dir, reg, testLogger())
	require.NoError(t, err)
	return cs
}

// saveThroughWorld записывает блоки через мир поверх cs и сохраняет его
func saveThroughWorld(t *testing.T, cs *ChunkStore, blocks map[vec.Vec3]world.Block) {
	t.Helper()
	w, err := world.New(world.Options{Height: testHeight, Registry: cs.registry, Provider: cs, Logger: testLogger()})
	require.NoError(t, err)
	for pos, b := range blocks {
		require.NoError(t, w.SetBlock(pos, b))
	}
	require.NoError(t, w.Save())
}

func TestChunkStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	cs := newTestStore(t, dir)

	// Чанк (-2, 7)
	blocks := map[vec.Vec3]world.Block{
		{X: -29, Y: 0, Z: 116}: world.NewBlock(block.DirtBlockID, 0),
		{X: -29, Y: 1, Z: 116}: world.NewBlock(block.WoodenDoorBlockID, 0x05),
		{X: -29, Y: 2, Z: 116}: world.NewBlock(block.WoodenDoorBlockID, block.PartMarkerBit),
	}
	saveThroughWorld(t, cs, blocks)
	require.NoError(t, cs.Close())

	// Повторное открытие с диска
	cs = newTestStore(t, dir)
	defer cs.Close()

	coords, err := cs.Coords()
	require.NoError(t, err)
	assert.Equal(t, []vec.Vec2{{X: -2, Y: 7}}, coords)

	loaded, err := cs.LoadChunk(vec.Vec2{X: -2, Y: 7}, testHeight)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.False(t, loaded.IsDirty())
	top, y, ok := loaded.HighestBlock(3, 4)
	require.True(t, ok)
	assert.Equal(t, 2, y)
	assert.Equal(t, world.NewBlock(block.WoodenDoorBlockID, block.PartMarkerBit), top)

	w, err := world.New(world.Options{Height: testHeight, Registry: cs.registry, Provider: cs, Logger: testLogger()})
	require.NoError(t, err)
	for pos, want := range blocks {
		got, ok := w.Block(pos)
		require.True(t, ok)
		assert.Equal(t, want, got, "позиция %v", pos)
	}
}

func TestChunkStore_MissingChunk(t *testing.T) {
	cs := newTestStore(t, t.TempDir())
	defer cs.Close()

	c, err := cs.LoadChunk(vec.Vec2{X: 100, Y: 100}, testHeight)
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestChunkStore_SkipsCleanChunk(t *testing.T) {
	cs := newTestStore(t, t.TempDir())
	defer cs.Close()

	require.NoError(t, cs.SaveChunk(world.NewChunk(vec.Vec2{}, testHeight)))
	c, err := cs.LoadChunk(vec.Vec2{}, testHeight)
	require.NoError(t, err)
	assert.Nil(t, c, "чанк без изменений не записывается")
}

func TestChunkStore_RejectsUnknownBlocks(t *testing.T) {
	dir := t.TempDir()
	cs := newTestStore(t, dir)
	saveThroughWorld(t, cs, map[vec.Vec3]world.Block{{Y: 1}: world.NewBlock(block.StoneBlockID, 0)})
	require.NoError(t, cs.Close())

	// Регистр без камня
	reg := block.NewRegistry()
	for _, b := range implementations.All() {
		if b.ID() != block.StoneBlockID {
			require.NoError(t, reg.Register(b))
		}
	}
	require.NoError(t, reg.Seal())

	strict, err := NewChunkStore(dir, reg, testLogger())
	require.NoError(t, err)
	defer strict.Close()

	_, err = strict.LoadChunk(vec.Vec2{}, testHeight)
	assert.ErrorIs(t, err, ErrCorruptChunk)
}

func TestChunkStore_CorruptAndMismatchedBlobs(t *testing.T) {
	reg, err := implementations.NewRegistry()
	require.NoError(t, err)
	cs, err := NewInMemoryChunkStore(reg, testLogger())
	require.NoError(t, err)
	defer cs.Close()

	require.NoError(t, cs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(vec.Vec2{X: 1}), []byte("garbage"))
	}))
	_, err = cs.LoadChunk(vec.Vec2{X: 1}, testHeight)
	assert.ErrorIs(t, err, ErrCorruptChunk)

	saveThroughWorld(t, cs, map[vec.Vec3]world.Block{{X: 32}: world.NewBlock(block.GrassBlockID, 0)})
	_, err = cs.LoadChunk(vec.Vec2{X: 2}, 64)
	assert.ErrorIs(t, err, ErrCorruptChunk, "другая высота мира")
}

func TestChunkStore_Closed(t *testing.T) {
	cs := newTestStore(t, t.TempDir())
	require.NoError(t, cs.Close())
	require.NoError(t, cs.Close())

	_, err := cs.LoadChunk(vec.Vec2{}, testHeight)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestChunkStore_OpenFailure(t *testing.T) {
	dir := t.TempDir()
	// На месте каталога базы лежит обычный файл
	require.NoError(t, os.WriteFile(filepath.Join(dir, "world"), []byte("x"), 0o644))

	reg, err := implementations.NewRegistry()
	require.NoError(t, err)
	cs, err := NewChunkStore(dir, reg, testLogger())
	assert.Error(t, err)
	assert.Nil(t, cs)
}

func TestParseChunkKey(t *testing.T) {
	c, ok := parseChunkKey(chunkKey(vec.Vec2{X: -5, Y: 12}))
	require.True(t, ok)
	assert.Equal(t, vec.Vec2{X: -5, Y: 12}, c)

	_, ok = parseChunkKey([]byte("chunk:x:1"))
	assert.False(t, ok)
}

func TestChunkStore_WorldIntegration(t *testing.T) {
	dir := t.TempDir()
	reg, err := implementations.NewRegistry()
	require.NoError(t, err)

	cs, err := NewChunkStore(dir, reg, testLogger())
	require.NoError(t, err)
	w, err := world.New(world.Options{Height: testHeight, Registry: reg, Provider: cs, Logger: testLogger()})
	require.NoError(t, err)
	require.NoError(t, w.SetBlock(vec.Vec3{X: 40, Y: 5, Z: -3}, world.NewBlock(block.MyceliumBlockID, 0)))
	require.NoError(t, w.Save())
	require.NoError(t, cs.Close())

	cs, err = NewChunkStore(dir, reg, testLogger())
	require.NoError(t, err)
	defer cs.Close()
	w, err = world.New(world.Options{Height: testHeight, Registry: reg, Provider: cs, Logger: testLogger()})
	require.NoError(t, err)

	b, ok := w.Block(vec.Vec3{X: 40, Y: 5, Z: -3})
	require.True(t, ok)
	assert.Equal(t, block.MyceliumBlockID, b.ID)
}
