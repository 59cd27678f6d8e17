package world

import (
	"github.com/annel0/blockverse/internal/world/block"
)

// Block - содержимое одной ячейки мира
type Block struct {
	ID   block.BlockID // Идентификатор типа блока
	Meta block.Meta    // 4-битное состояние
}

// Air - пустая ячейка
var Air = Block{ID: block.AirBlockID}

// NewBlock создаёт блок; лишние биты метаданных отбрасываются
func NewBlock(id block.BlockID, meta block.Meta) Block {
	return Block{ID: id, Meta: meta & block.MetaMask}
}

// IsAir сообщает, пуста ли ячейка
func (b Block) IsAir() bool {
	return b.ID == block.AirBlockID
}
