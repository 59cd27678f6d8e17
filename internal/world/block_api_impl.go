package world

import (
	"errors"
	"fmt"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

var (
	// ErrInvalidHeight - позиция вне допустимой высоты мира
	ErrInvalidHeight = errors.New("высота вне пределов мира")
	// ErrBuildCollision - ячейка занята блоком, сквозь который строить нельзя
	ErrBuildCollision = errors.New("ячейка занята")
	// ErrCannotBeAt - блок не может находиться в позиции (нет опоры)
	ErrCannotBeAt = errors.New("блок не может находиться в этой позиции")
	// ErrUnknownBlock - для типа блока нет обработчика
	ErrUnknownBlock = errors.New("неизвестный тип блока")
	// ErrOutsideChunk - позиция вне чанка, заблокированного транзакцией
	ErrOutsideChunk = errors.New("позиция вне заблокированного чанка")
)

// Tx реализует block.BlockAPI для одной колонны чанка. Создается World.Exec
// и действителен только внутри его обратного вызова: блокировка чанка уже
// взята, поэтому методы Tx ее не трогают.
type Tx struct {
	world  *World
	chunk  *Chunk
	events []pendingEvent
	depth  int // вложенность OnBroken
}

var _ block.BlockAPI = (*Tx)(nil)

func (t *Tx) local(pos vec.Vec3) (vec.Vec3, bool) {
	if !t.IsValidHeight(pos) || pos.ToChunkCoords() != t.chunk.Coords {
		return vec.Vec3{}, false
	}
	return pos.LocalInChunk(), true
}

// IsValidHeight проверяет, что Y позиции лежит в пределах высоты мира
func (t *Tx) IsValidHeight(pos vec.Vec3) bool {
	return pos.Y >= 0 && pos.Y < t.world.height
}

// GetBlock возвращает тип блока в позиции
func (t *Tx) GetBlock(pos vec.Vec3) (block.BlockID, bool) {
	id, _, ok := t.GetBlockTypeMeta(pos)
	return id, ok
}

// GetBlockTypeMeta возвращает тип и метаданные блока в позиции
func (t *Tx) GetBlockTypeMeta(pos vec.Vec3) (block.BlockID, block.Meta, bool) {
	local, ok := t.local(pos)
	if !ok {
		return block.AirBlockID, 0, false
	}
	b := t.chunk.get(local)
	return b.ID, b.Meta, true
}

// Block возвращает содержимое ячейки
func (t *Tx) Block(pos vec.Vec3) (Block, bool) {
	id, meta, ok := t.GetBlockTypeMeta(pos)
	return Block{ID: id, Meta: meta}, ok
}

// SetBlock безусловно перезаписывает ячейку без вызова обработчиков.
// Запись вне заблокированного чанка игнорируется.
func (t *Tx) SetBlock(pos vec.Vec3, id block.BlockID, meta block.Meta) {
	local, ok := t.local(pos)
	if !ok {
		t.world.logger.Warn("запись вне чанка %v проигнорирована: %v", t.chunk.Coords, pos)
		return
	}

	prev := t.chunk.get(local)
	t.chunk.set(local, NewBlock(id, meta))

	// Удаление соседней половины из OnBroken
	if t.depth > 0 && id == block.AirBlockID && !prev.IsAir() {
		t.world.metrics.cascade()
		t.emit(eventbus.TypeBlockBroken, BlockBrokenEvent{
			Pos:     pos,
			BlockID: uint8(prev.ID),
			Meta:    uint8(prev.Meta),
			Block:   t.world.blockName(prev.ID),
			Cascade: true,
		})
	}
}

// DropBlockAsPickups разрушает блок без копающего и инструмента
func (t *Tx) DropBlockAsPickups(pos vec.Vec3) {
	t.breakBlock(pos, nil, nil)
}

// BreakBlock разрушает блок: добыча (кроме игрока в творческом режиме),
// очистка ячейки, OnBroken и выброс предметов. Разрушение воздуха ничего
// не делает.
func (t *Tx) BreakBlock(pos vec.Vec3, digger block.Digger, tool *block.Tool) error {
	if !t.IsValidHeight(pos) {
		return ErrInvalidHeight
	}
	if _, ok := t.local(pos); !ok {
		return ErrOutsideChunk
	}
	t.breakBlock(pos, digger, tool)
	return nil
}

func (t *Tx) breakBlock(pos vec.Vec3, digger block.Digger, tool *block.Tool) {
	id, meta, ok := t.GetBlockTypeMeta(pos)
	if !ok || id == block.AirBlockID {
		return
	}

	behavior, ok := t.world.registry.Get(id)
	if !ok {
		t.world.logger.Error("нет обработчика для блока %d в %v, ячейка очищена", id, pos)
		t.SetBlock(pos, block.AirBlockID, 0)
		return
	}

	var pickups []block.ItemStack
	if !block.IsCreativePlayer(digger) {
		pickups = behavior.ConvertToPickups(meta, tool, t.world.loot)
	}

	t.SetBlock(pos, block.AirBlockID, 0)

	t.depth++
	behavior.OnBroken(t, pos, id, meta, digger)
	t.depth--

	if t.depth == 0 {
		t.emit(eventbus.TypeBlockBroken, BlockBrokenEvent{
			Pos:      pos,
			BlockID:  uint8(id),
			Meta:     uint8(meta),
			Block:    behavior.Name(),
			ByPlayer: digger != nil && digger.IsPlayer(),
		})
	}
	t.world.metrics.blockBroken(behavior.Name())
	t.spawnPickups(pos, pickups)

	if above := pos.AddedY(1); t.IsValidHeight(above) {
		t.world.ScheduleUpdate(above)
	}
}

func (t *Tx) spawnPickups(pos vec.Vec3, pickups []block.ItemStack) {
	entries := make([]PickupEntry, 0, len(pickups))
	items := make([]DroppedItem, 0, len(pickups))
	for _, stack := range pickups {
		if stack.IsEmpty() {
			continue
		}
		item := newDroppedItem(pos, stack)
		items = append(items, item)
		entries = append(entries, PickupEntry{
			ID:     item.ID.String(),
			Item:   uint16(stack.Item),
			Count:  stack.Count,
			Damage: stack.Damage,
		})
	}
	if len(items) == 0 {
		return
	}

	t.world.addDroppedItems(items)
	t.world.metrics.pickups(len(items))
	t.emit(eventbus.TypePickupsSpawned, PickupsSpawnedEvent{Pos: pos, Items: entries})
}

// PlaceBlock ставит блок от имени игрока. Занятая ячейка допустима только
// если ее обработчик разрешает строить сквозь себя; такой блок
// разрушается обычным путем. Двухъячеечные блоки ставят и верхнюю половину.
func (t *Tx) PlaceBlock(pos vec.Vec3, b Block, held block.ItemStack, face block.BlockFace, clickedDirectly bool) error {
	if err := t.placeBlock(pos, NewBlock(b.ID, b.Meta), held, face, clickedDirectly); err != nil {
		t.world.metrics.rejected(rejectReason(err))
		return err
	}
	return nil
}

func (t *Tx) placeBlock(pos vec.Vec3, b Block, held block.ItemStack, face block.BlockFace, clickedDirectly bool) error {
	if !t.IsValidHeight(pos) {
		return ErrInvalidHeight
	}
	if _, ok := t.local(pos); !ok {
		return ErrOutsideChunk
	}
	behavior, ok := t.world.registry.Get(b.ID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBlock, b.ID)
	}

	cells := []vec.Vec3{pos}
	multi, isMulti := behavior.(block.MultiCellBehavior)
	if isMulti && !multi.IsTopPart(b.Meta) {
		upper := pos.AddedY(1)
		if !t.IsValidHeight(upper) {
			return ErrInvalidHeight
		}
		cells = append(cells, upper)
	}

	for i, cell := range cells {
		if !t.canReplace(cell, held, face, clickedDirectly && i == 0) {
			return fmt.Errorf("%w: %v", ErrBuildCollision, cell)
		}
	}
	if !behavior.CanBeAt(t, pos, b.Meta) {
		return fmt.Errorf("%w: %s в %v", ErrCannotBeAt, behavior.Name(), pos)
	}

	for _, cell := range cells {
		if id, _ := t.GetBlock(cell); id != block.AirBlockID {
			t.DropBlockAsPickups(cell)
		}
	}

	t.SetBlock(pos, b.ID, b.Meta)
	if isMulti && len(cells) == 2 {
		t.SetBlock(cells[1], b.ID, multi.UpperMeta(b.Meta))
	}

	t.emit(eventbus.TypeBlockPlaced, BlockPlacedEvent{
		Pos:     pos,
		BlockID: uint8(b.ID),
		Meta:    uint8(b.Meta),
		Block:   behavior.Name(),
	})
	return nil
}

func (t *Tx) canReplace(pos vec.Vec3, held block.ItemStack, face block.BlockFace, clickedDirectly bool) bool {
	id, meta, ok := t.GetBlockTypeMeta(pos)
	if !ok {
		return false
	}
	if id == block.AirBlockID {
		return true
	}
	behavior, ok := t.world.registry.Get(id)
	if !ok {
		return false
	}
	return behavior.DoesIgnoreBuildCollision(t, held, pos, meta, face, clickedDirectly)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidHeight):
		return RejectHeight
	case errors.Is(err, ErrBuildCollision):
		return RejectCollision
	case errors.Is(err, ErrCannotBeAt):
		return RejectSupport
	}
	return RejectUnknown
}

// Revalidate проверяет опору блока и разрушает его, если CanBeAt больше не
// выполняется. Возвращает true, если ячейка была очищена.
func (t *Tx) Revalidate(pos vec.Vec3) bool {
	id, meta, ok := t.GetBlockTypeMeta(pos)
	if !ok || id == block.AirBlockID {
		return false
	}
	behavior, ok := t.world.registry.Get(id)
	if !ok || behavior.CanBeAt(t, pos, meta) {
		return false
	}

	t.world.logger.Debug("%s в %v потерял опору", behavior.Name(), pos)
	t.DropBlockAsPickups(pos)
	t.world.metrics.revalidated()
	return true
}

func (t *Tx) emit(eventType string, payload interface{}) {
	t.events = append(t.events, pendingEvent{eventType: eventType, payload: payload})
}
