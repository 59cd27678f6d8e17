package world

// NibbleArray хранит по два 4-битных значения в байте: четный индекс в
// младшей половине, нечетный в старшей.
type NibbleArray []byte

// NewNibbleArray создает массив на n значений
func NewNibbleArray(n int) NibbleArray {
	return make(NibbleArray, (n+1)/2)
}

// Get возвращает значение по индексу
func (a NibbleArray) Get(i int) uint8 {
	b := a[i>>1]
	if i&1 == 1 {
		return b >> 4
	}
	return b & 0x0F
}

// Set записывает значение по индексу; старшие биты v отбрасываются
func (a NibbleArray) Set(i int, v uint8) {
	v &= 0x0F
	idx := i >> 1
	if i&1 == 1 {
		a[idx] = a[idx]&0x0F | v<<4
	} else {
		a[idx] = a[idx]&0xF0 | v
	}
}
