package vec

// Vec3 представляет позицию ячейки в трехмерной сетке мира.
// Y - вертикальная ось, ограниченная высотой мира.
type Vec3 struct {
	X int
	Y int
	Z int
}

// AddedY возвращает копию позиции, смещенную по вертикали
func (v Vec3) AddedY(dy int) Vec3 {
	return Vec3{X: v.X, Y: v.Y + dy, Z: v.Z}
}

// Column возвращает горизонтальную проекцию позиции (X, Z)
func (v Vec3) Column() Vec2 {
	return Vec2{X: v.X, Y: v.Z}
}

// ToChunkCoords возвращает координаты колонки чанка, содержащей позицию
func (v Vec3) ToChunkCoords() Vec2 {
	return v.Column().ToChunkCoords()
}

// LocalInChunk возвращает координаты внутри чанка; Y не меняется
func (v Vec3) LocalInChunk() Vec3 {
	return Vec3{X: v.X & 0xF, Y: v.Y, Z: v.Z & 0xF}
}
