// Package loot содержит вспомогательные функции для вероятностной добычи
// блоков. Источник случайности всегда передается явно.
package loot

import (
	"math/rand/v2"
	"sync"
)

// DropCap - верхняя граница количества предметов в одной выпадающей стопке
const DropCap = 25

// Source - источник случайных чисел для генерации добычи
type Source interface {
	// Float64 возвращает число в [0.0, 1.0)
	Float64() float64
	// IntN возвращает число в [0, n); n > 0
	IntN(n int) int
}

// LockedSource - источник на основе PCG, безопасный для одновременного
// использования из потоков разных миров
type LockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource создает источник с заданным зерном
func NewSource(seed uint64) *LockedSource {
	return &LockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource создает источник со случайным зерном
func NewRandomSource() *LockedSource {
	return NewSource(rand.Uint64())
}

// Float64 возвращает число в [0.0, 1.0)
func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// IntN возвращает число в [0, n)
func (s *LockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// RandBool возвращает true с вероятностью p
func RandBool(src Source, p float64) bool {
	return src.Float64() < p
}

// FortuneDiscreteRandom возвращает равномерно распределенное количество в
// [minDrop, defaultMax+bonusMax], ограниченное сверху DropCap.
// bonusMax обычно масштабируется уровнем удачи инструмента.
func FortuneDiscreteRandom(src Source, minDrop, defaultMax, bonusMax int) int {
	maxDrop := defaultMax + bonusMax
	n := minDrop
	if maxDrop > minDrop {
		n = minDrop + src.IntN(maxDrop-minDrop+1)
	}
	if n > DropCap {
		n = DropCap
	}
	if n < minDrop {
		n = minDrop
	}
	return n
}
