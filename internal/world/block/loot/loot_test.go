package loot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubSource возвращает заранее заданные значения
type stubSource struct {
	f float64
	n int
}

func (s stubSource) Float64() float64 { return s.f }
func (s stubSource) IntN(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func TestRandBool(t *testing.T) {
	assert.True(t, RandBool(stubSource{f: 0.5}, 0.875))
	assert.False(t, RandBool(stubSource{f: 0.9}, 0.875))
	assert.False(t, RandBool(stubSource{f: 0.875}, 0.875), "граница не входит")
}

func TestFortuneDiscreteRandom_Bounds(t *testing.T) {
	src := NewSource(42)
	for fortune := 0; fortune <= 3; fortune++ {
		for i := 0; i < 500; i++ {
			n := FortuneDiscreteRandom(src, 1, 1, 2*fortune)
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 1+2*fortune)
		}
	}
}

func TestFortuneDiscreteRandom_DegenerateRange(t *testing.T) {
	// При min == max источник не используется
	assert.Equal(t, 1, FortuneDiscreteRandom(stubSource{n: 100}, 1, 1, 0))
}

func TestFortuneDiscreteRandom_Cap(t *testing.T) {
	n := FortuneDiscreteRandom(stubSource{n: 1000}, 1, 10, 100)
	assert.Equal(t, DropCap, n, "количество должно ограничиваться DropCap")
}

func TestLockedSource_Concurrent(t *testing.T) {
	src := NewSource(7)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				v := src.Float64()
				assert.True(t, v >= 0 && v < 1)
				assert.Less(t, src.IntN(5), 5)
			}
		}()
	}
	wg.Wait()
}

func TestLockedSource_Deterministic(t *testing.T) {
	a, b := NewSource(99), NewSource(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
