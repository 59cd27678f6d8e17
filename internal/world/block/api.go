package block

import (
	"github.com/annel0/blockverse/internal/vec"
)

// BlockAPI определяет интерфейс для взаимодействия блоков с игровым миром.
// Вызывающая сторона уже держит блокировку чанка, поэтому реализации не
// должны захватывать ее повторно, в том числе при рекурсивном
// DropBlockAsPickups.
type BlockAPI interface {
	// GetBlock возвращает тип блока в позиции. false - позиция вне
	// допустимой или загруженной области.
	GetBlock(pos vec.Vec3) (BlockID, bool)

	// GetBlockTypeMeta возвращает тип и метаданные блока в позиции.
	GetBlockTypeMeta(pos vec.Vec3) (BlockID, Meta, bool)

	// SetBlock безусловно перезаписывает ячейку без каскада событий.
	SetBlock(pos vec.Vec3, id BlockID, meta Meta)

	// DropBlockAsPickups удаляет блок обычным путем: вычисляет добычу,
	// вызывает OnBroken и выбрасывает предметы в мир.
	DropBlockAsPickups(pos vec.Vec3)

	// IsValidHeight проверяет, что Y позиции лежит в пределах высоты мира.
	IsValidHeight(pos vec.Vec3) bool
}
