package mapdata

import (
	"github.com/annel0/blockverse/internal/world/block"
)

// Размеры карты фиксированы
const (
	Width      = 128
	Height     = 128
	PixelCount = Width * Height
)

// shadeNormal - оттенок без затемнения; итоговый цвет = базовый*4 + оттенок
const shadeNormal = 2

// Map - внутриигровая карта: квадрат 128x128 пикселей с центром в мире
type Map struct {
	ID        int
	Scale     uint8 // один пиксель покрывает 1<<Scale блоков
	Dimension int
	Width     int
	Height    int
	CenterX   int
	CenterZ   int
	Colors    [PixelCount]byte
}

// New создаёт пустую карту
func New(id, centerX, centerZ int, scale uint8, dimension int) *Map {
	return &Map{
		ID:        id,
		Scale:     scale,
		Dimension: dimension,
		Width:     Width,
		Height:    Height,
		CenterX:   centerX,
		CenterZ:   centerZ,
	}
}

// Pixel возвращает цвет пикселя
func (m *Map) Pixel(x, z int) byte {
	return m.Colors[z*Width+x]
}

// SetPixel задает цвет пикселя
func (m *Map) SetPixel(x, z int, colour byte) {
	m.Colors[z*Width+x] = colour
}

// WorldPos возвращает координаты колонки мира, отображаемой пикселем
func (m *Map) WorldPos(px, pz int) (int, int) {
	step := 1 << m.Scale
	return m.CenterX + (px-Width/2)*step, m.CenterZ + (pz-Height/2)*step
}

// ColumnSource отдает верхний блок колонки мира
type ColumnSource interface {
	TopBlock(x, z int) (block.BlockID, block.Meta, bool)
}

// Render перерисовывает карту по верхним блокам колонок. Цвет берется у
// обработчика блока; пустая колонка или блок без цвета дают 0.
// Возвращает число изменившихся пикселей.
func (m *Map) Render(src ColumnSource, reg *block.Registry) int {
	changed := 0
	for pz := 0; pz < Height; pz++ {
		for px := 0; px < Width; px++ {
			x, z := m.WorldPos(px, pz)
			colour := columnColour(src, reg, x, z)
			if m.Pixel(px, pz) != colour {
				m.SetPixel(px, pz, colour)
				changed++
			}
		}
	}
	return changed
}

func columnColour(src ColumnSource, reg *block.Registry, x, z int) byte {
	id, meta, ok := src.TopBlock(x, z)
	if !ok {
		return 0
	}
	behavior, ok := reg.Get(id)
	if !ok {
		return 0
	}
	base := behavior.MapBaseColourID(meta)
	if base == block.ColourNone {
		return 0
	}
	return byte(base)*4 + shadeNormal
}
