package vec

// Vec2 представляет 2D координаты колонки (X, Z) или чанка
type Vec2 struct {
	X, Y int
}

// ToChunkCoords преобразует глобальные координаты в координаты чанка
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> 4, Y: v.Y >> 4} // Деление на 16
}

// LocalInChunk возвращает локальные координаты внутри чанка
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & 0xF, Y: v.Y & 0xF} // Модуль 16
}
