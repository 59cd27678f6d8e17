package world

import (
	"errors"
	"fmt"
	"sync"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/annel0/blockverse/internal/world/block/loot"
	"github.com/google/uuid"
)

// DefaultHeight - высота мира по умолчанию
const DefaultHeight = 256

// ChunkProvider загружает и сохраняет колонны чанков.
// LoadChunk возвращает (nil, nil), если чанк еще не сохранялся.
type ChunkProvider interface {
	LoadChunk(coords vec.Vec2, height int) (*Chunk, error)
	SaveChunk(c *Chunk) error
}

// Options - зависимости и параметры мира
type Options struct {
	Name      string
	Height    int
	Dimension int
	Registry  *block.Registry   // обязателен и должен быть запечатан
	Loot      loot.Source       // nil - случайный источник
	Provider  ChunkProvider     // nil - мир только в памяти
	Bus       eventbus.EventBus // nil - события не публикуются
	Metrics   *Metrics
	Logger    *logging.Logger
}

// World владеет чанками одного независимо тикающего мира
type World struct {
	name      string
	height    int
	dimension int
	registry  *block.Registry
	loot      loot.Source
	provider  ChunkProvider
	bus       eventbus.EventBus
	metrics   *Metrics
	logger    *logging.Logger

	mu     sync.RWMutex
	chunks map[vec.Vec2]*Chunk

	pendingMu sync.Mutex
	pending   map[vec.Vec3]struct{}

	itemsMu sync.Mutex
	items   []DroppedItem
}

// New создаёт мир. Регистр должен быть запечатан до создания мира.
func New(opts Options) (*World, error) {
	if opts.Registry == nil || !opts.Registry.Sealed() {
		return nil, errors.New("регистр блоков не запечатан")
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Name == "" {
		opts.Name = "world"
	}
	if opts.Loot == nil {
		opts.Loot = loot.NewRandomSource()
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetComponentLogger("world")
	}

	return &World{
		name:      opts.Name,
		height:    opts.Height,
		dimension: opts.Dimension,
		registry:  opts.Registry,
		loot:      opts.Loot,
		provider:  opts.Provider,
		bus:       opts.Bus,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		chunks:    make(map[vec.Vec2]*Chunk),
		pending:   make(map[vec.Vec3]struct{}),
	}, nil
}

// Name возвращает имя мира
func (w *World) Name() string { return w.name }

// Height возвращает высоту мира
func (w *World) Height() int { return w.height }

// Dimension возвращает измерение мира
func (w *World) Dimension() int { return w.dimension }

// Registry возвращает регистр блоков мира
func (w *World) Registry() *block.Registry { return w.registry }

func (w *World) blockName(id block.BlockID) string {
	if behavior, ok := w.registry.Get(id); ok {
		return behavior.Name()
	}
	return fmt.Sprintf("unknown_%d", id)
}

// chunk возвращает колонну, загружая ее из хранилища при первом обращении
func (w *World) chunk(coords vec.Vec2) (*Chunk, error) {
	w.mu.RLock()
	c, ok := w.chunks[coords]
	w.mu.RUnlock()
	if ok {
		return c, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Проверяем еще раз на случай гонки
	if c, ok := w.chunks[coords]; ok {
		return c, nil
	}

	if w.provider != nil {
		loaded, err := w.provider.LoadChunk(coords, w.height)
		if err != nil {
			return nil, fmt.Errorf("загрузка чанка %v: %w", coords, err)
		}
		c = loaded
	}
	if c == nil {
		c = NewChunk(coords, w.height)
	}
	w.chunks[coords] = c
	return c, nil
}

// Exec выполняет fn с транзакцией над колонной, содержащей pos.
// Блокировка чанка держится все время выполнения fn; события,
// накопленные транзакцией, публикуются после ее освобождения.
func (w *World) Exec(pos vec.Vec3, fn func(tx *Tx) error) error {
	c, err := w.chunk(pos.ToChunkCoords())
	if err != nil {
		return err
	}

	tx := &Tx{world: w, chunk: c}
	err = func() error {
		c.mu.Lock()
		defer c.mu.Unlock()
		return fn(tx)
	}()

	if len(tx.events) > 0 {
		w.publish(uuid.NewString(), tx.events)
	}
	return err
}

// Block возвращает содержимое ячейки. false - высота вне мира.
func (w *World) Block(pos vec.Vec3) (Block, bool) {
	var (
		b  Block
		ok bool
	)
	err := w.Exec(pos, func(tx *Tx) error {
		b, ok = tx.Block(pos)
		return nil
	})
	if err != nil {
		w.logger.Warn("чтение %v: %v", pos, err)
		return Air, false
	}
	return b, ok
}

// SetBlock записывает ячейку без обработчиков (генерация, загрузка схем)
func (w *World) SetBlock(pos vec.Vec3, b Block) error {
	return w.Exec(pos, func(tx *Tx) error {
		if !tx.IsValidHeight(pos) {
			return ErrInvalidHeight
		}
		tx.SetBlock(pos, b.ID, b.Meta)
		return nil
	})
}

// BreakBlock разрушает блок от имени digger инструментом tool (nil - рукой)
func (w *World) BreakBlock(pos vec.Vec3, digger block.Digger, tool *block.Tool) error {
	return w.Exec(pos, func(tx *Tx) error {
		return tx.BreakBlock(pos, digger, tool)
	})
}

// PlaceBlock ставит блок, см. Tx.PlaceBlock
func (w *World) PlaceBlock(pos vec.Vec3, b Block, held block.ItemStack, face block.BlockFace, clickedDirectly bool) error {
	return w.Exec(pos, func(tx *Tx) error {
		return tx.PlaceBlock(pos, b, held, face, clickedDirectly)
	})
}

// TopBlock возвращает самый верхний не пустой блок колонки (x, z)
func (w *World) TopBlock(x, z int) (block.BlockID, block.Meta, bool) {
	col := vec.Vec2{X: x, Y: z}
	c, err := w.chunk(col.ToChunkCoords())
	if err != nil {
		w.logger.Warn("колонка %v: %v", col, err)
		return block.AirBlockID, 0, false
	}
	local := col.LocalInChunk()
	b, _, ok := c.HighestBlock(local.X, local.Y)
	return b.ID, b.Meta, ok
}

// ScheduleUpdate ставит ячейку в очередь перепроверки опоры на следующий тик
func (w *World) ScheduleUpdate(pos vec.Vec3) {
	w.pendingMu.Lock()
	w.pending[pos] = struct{}{}
	w.pendingMu.Unlock()
}

// PendingUpdates возвращает число ячеек в очереди перепроверки
func (w *World) PendingUpdates() int {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	return len(w.pending)
}

// Tick перепроверяет все ячейки, запланированные до начала тика.
// Ячейки, запланированные во время тика, ждут следующего.
// Возвращает число удаленных блоков.
func (w *World) Tick() int {
	w.pendingMu.Lock()
	batch := w.pending
	w.pending = make(map[vec.Vec3]struct{})
	w.pendingMu.Unlock()

	removed := 0
	for pos := range batch {
		err := w.Exec(pos, func(tx *Tx) error {
			if tx.Revalidate(pos) {
				removed++
			}
			return nil
		})
		if err != nil {
			w.logger.Warn("перепроверка %v: %v", pos, err)
		}
	}
	return removed
}

func (w *World) addDroppedItems(items []DroppedItem) {
	w.itemsMu.Lock()
	w.items = append(w.items, items...)
	w.itemsMu.Unlock()
}

// DroppedItems возвращает копию списка выброшенных предметов
func (w *World) DroppedItems() []DroppedItem {
	w.itemsMu.Lock()
	defer w.itemsMu.Unlock()
	out := make([]DroppedItem, len(w.items))
	copy(out, w.items)
	return out
}

// CollectDroppedItems забирает все выброшенные предметы
func (w *World) CollectDroppedItems() []DroppedItem {
	w.itemsMu.Lock()
	defer w.itemsMu.Unlock()
	out := w.items
	w.items = nil
	return out
}

// Save сохраняет измененные чанки через провайдер
func (w *World) Save() error {
	if w.provider == nil {
		return nil
	}

	w.mu.RLock()
	chunks := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		chunks = append(chunks, c)
	}
	w.mu.RUnlock()

	var errs []error
	saved := 0
	for _, c := range chunks {
		if !c.IsDirty() {
			continue
		}
		if err := w.provider.SaveChunk(c); err != nil {
			errs = append(errs, fmt.Errorf("чанк %v: %w", c.Coords, err))
			continue
		}
		saved++
	}
	if saved > 0 {
		w.logger.Info("сохранено чанков: %d", saved)
	}
	return errors.Join(errs...)
}
