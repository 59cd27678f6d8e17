package world

import (
	"fmt"
	"sync"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// ChunkSize - размер чанка по X и Z
const ChunkSize = 16

// Chunk - колонна мира 16x16 на всю высоту мира.
// Ячейки читает и пишет только Tx, который уже держит mu; get и set
// блокировку не берут и границы не проверяют.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире

	height int
	ids    []block.BlockID
	metas  NibbleArray

	ChangeCounter int        // Счетчик изменений с последнего сохранения
	mu            sync.Mutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт пустой (заполненный воздухом) чанк
func NewChunk(coords vec.Vec2, height int) *Chunk {
	n := ChunkSize * ChunkSize * height
	return &Chunk{
		Coords: coords,
		height: height,
		ids:    make([]block.BlockID, n),
		metas:  NewNibbleArray(n),
	}
}

// ChunkFromRaw восстанавливает чанк из сохраненных массивов
func ChunkFromRaw(coords vec.Vec2, height int, ids []block.BlockID, metas []byte) (*Chunk, error) {
	n := ChunkSize * ChunkSize * height
	if len(ids) != n {
		return nil, fmt.Errorf("чанк %v: ожидалось %d ID блоков, получено %d", coords, n, len(ids))
	}
	if len(metas) != (n+1)/2 {
		return nil, fmt.Errorf("чанк %v: неверный размер метаданных %d", coords, len(metas))
	}
	c := NewChunk(coords, height)
	copy(c.ids, ids)
	copy(c.metas, metas)
	return c, nil
}

// Height возвращает высоту колонны
func (c *Chunk) Height() int {
	return c.height
}

func (c *Chunk) index(local vec.Vec3) int {
	return (local.Y*ChunkSize+local.Z)*ChunkSize + local.X
}

func (c *Chunk) get(local vec.Vec3) Block {
	i := c.index(local)
	return Block{ID: c.ids[i], Meta: block.Meta(c.metas.Get(i))}
}

func (c *Chunk) set(local vec.Vec3, b Block) {
	i := c.index(local)
	c.ids[i] = b.ID
	c.metas.Set(i, uint8(b.Meta))
	c.ChangeCounter++
}

// HighestBlock возвращает самый верхний не пустой блок колонки и его высоту
func (c *Chunk) HighestBlock(localX, localZ int) (Block, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for y := c.height - 1; y >= 0; y-- {
		b := c.get(vec.Vec3{X: localX, Y: y, Z: localZ})
		if !b.IsAir() {
			return b, y, true
		}
	}
	return Air, 0, false
}

// Raw возвращает копии массивов ID и метаданных для сохранения и число
// изменений на момент снимка
func (c *Chunk) Raw() ([]block.BlockID, []byte, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]block.BlockID, len(c.ids))
	copy(ids, c.ids)
	metas := make([]byte, len(c.metas))
	copy(metas, c.metas)
	return ids, metas, c.ChangeCounter
}

// IsDirty сообщает, есть ли несохраненные изменения
func (c *Chunk) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ChangeCounter > 0
}

// MarkSaved вычитает сохраненные изменения. Изменения, сделанные после
// снимка Raw, остаются несохраненными.
func (c *Chunk) MarkSaved(changes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ChangeCounter -= changes
	if c.ChangeCounter < 0 {
		c.ChangeCounter = 0
	}
}
