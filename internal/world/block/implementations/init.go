package implementations

import (
	"fmt"
	"sync"

	"github.com/annel0/blockverse/internal/world/block"
)

// All возвращает поведение всех известных типов блоков
func All() []block.BlockBehavior {
	return []block.BlockBehavior{
		// Базовые блоки
		NewAirBehavior(),
		NewStoneBehavior(),
		NewGrassBehavior(),
		NewDirtBehavior(block.DirtBlockID, "Dirt"),
		NewSolidBehavior(block.CobblestoneBlockID, "Cobblestone", block.ColourStone),
		NewDirtBehavior(block.FarmlandBlockID, "Farmland"),
		NewDirtBehavior(block.MyceliumBlockID, "Mycelium"),

		// Растения и структуры
		NewTallGrassBehavior(),
		NewWoodenDoorBehavior(),
		NewBigFlowerBehavior(),
	}
}

// NewRegistry строит и запечатывает регистр со всеми типами блоков.
// Ошибка означает неверную конфигурацию и должна останавливать запуск.
func NewRegistry() (*block.Registry, error) {
	r := block.NewRegistry()
	for _, behavior := range All() {
		if err := r.Register(behavior); err != nil {
			return nil, fmt.Errorf("регистрация %s: %w", behavior.Name(), err)
		}
	}

	if err := r.Seal(block.AirBlockID, block.DirtBlockID); err != nil {
		return nil, err
	}
	return r, nil
}

var defaultRegistry = sync.OnceValues(NewRegistry)

// Default возвращает общий регистр процесса. Строится один раз.
func Default() (*block.Registry, error) {
	return defaultRegistry()
}
