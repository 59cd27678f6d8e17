package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
)

const mockHeight = 256

type mockCell struct {
	id   block.BlockID
	meta block.Meta
}

// mockBlockAPI реализует block.BlockAPI для тестирования. DropBlockAsPickups
// повторяет обычный путь разрушения через регистр.
type mockBlockAPI struct {
	registry *block.Registry
	src      loot.Source
	cells    map[vec.Vec3]mockCell
	pickups  []block.ItemStack
	drops    []vec.Vec3
	sets     []vec.Vec3
}

func newMockBlockAPI() *mockBlockAPI {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return &mockBlockAPI{
		registry: r,
		src:      fixedSource{f: 0.99},
		cells:    make(map[vec.Vec3]mockCell),
	}
}

func (m *mockBlockAPI) GetBlock(pos vec.Vec3) (block.BlockID, bool) {
	id, _, ok := m.GetBlockTypeMeta(pos)
	return id, ok
}

func (m *mockBlockAPI) GetBlockTypeMeta(pos vec.Vec3) (block.BlockID, block.Meta, bool) {
	if !m.IsValidHeight(pos) {
		return 0, 0, false
	}
	c := m.cells[pos]
	return c.id, c.meta, true
}

func (m *mockBlockAPI) SetBlock(pos vec.Vec3, id block.BlockID, meta block.Meta) {
	m.sets = append(m.sets, pos)
	m.put(pos, id, meta)
}

func (m *mockBlockAPI) DropBlockAsPickups(pos vec.Vec3) {
	m.drops = append(m.drops, pos)
	m.breakWith(pos, nil, nil)
}

func (m *mockBlockAPI) IsValidHeight(pos vec.Vec3) bool {
	return pos.Y >= 0 && pos.Y < mockHeight
}

// put записывает ячейку без учета вызовов
func (m *mockBlockAPI) put(pos vec.Vec3, id block.BlockID, meta block.Meta) {
	if id == block.AirBlockID {
		delete(m.cells, pos)
		return
	}
	m.cells[pos] = mockCell{id: id, meta: meta}
}

// breakWith ломает блок так же, как мир: добыча, воздух, OnBroken
func (m *mockBlockAPI) breakWith(pos vec.Vec3, digger block.Digger, tool *block.Tool) {
	id, meta, ok := m.GetBlockTypeMeta(pos)
	if !ok || id == block.AirBlockID {
		return
	}
	behavior, _ := m.registry.Get(id)
	if !block.IsCreativePlayer(digger) {
		m.pickups = append(m.pickups, behavior.ConvertToPickups(meta, tool, m.src)...)
	}
	m.put(pos, block.AirBlockID, 0)
	behavior.OnBroken(m, pos, id, meta, digger)
}

// fixedSource - детерминированный источник случайности
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }

func (s fixedSource) IntN(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

// testPlayer - копающий игрок
type testPlayer struct {
	creative bool
}

func (p testPlayer) IsPlayer() bool           { return true }
func (p testPlayer) IsGameModeCreative() bool { return p.creative }

// testMob - копающая сущность, не являющаяся игроком
type testMob struct{}

func (testMob) IsPlayer() bool { return false }
