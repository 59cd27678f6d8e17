package block

import (
	"errors"
	"fmt"
)

// BlockID представляет идентификатор типа блока
type BlockID uint8

// MaxBlockID - наибольший допустимый идентификатор типа блока
const MaxBlockID = 255

// Константы ID блоков
const (
	AirBlockID         BlockID = 0
	StoneBlockID       BlockID = 1
	GrassBlockID       BlockID = 2
	DirtBlockID        BlockID = 3
	CobblestoneBlockID BlockID = 4
	TallGrassBlockID   BlockID = 31
	FarmlandBlockID    BlockID = 60
	WoodenDoorBlockID  BlockID = 64
	MyceliumBlockID    BlockID = 110
	BigFlowerBlockID   BlockID = 175
)

// IsBlockTypeOfDirt сообщает, относится ли блок к семейству земли,
// на котором могут укореняться растения
func IsBlockTypeOfDirt(id BlockID) bool {
	switch id {
	case DirtBlockID, GrassBlockID, FarmlandBlockID, MyceliumBlockID:
		return true
	}
	return false
}

var (
	// ErrDuplicateHandler возвращается при повторной регистрации ID
	ErrDuplicateHandler = errors.New("обработчик блока уже зарегистрирован")
	// ErrRegistrySealed возвращается при регистрации после Seal
	ErrRegistrySealed = errors.New("регистр блоков уже запечатан")
	// ErrMissingHandler возвращается, если для используемого ID нет обработчика
	ErrMissingHandler = errors.New("нет обработчика для типа блока")
)

// Registry сопоставляет каждому BlockID ровно один обработчик.
// Заполняется один раз при старте; после Seal доступен только на чтение
// и безопасен для одновременного использования без блокировок.
type Registry struct {
	handlers [MaxBlockID + 1]BlockBehavior
	sealed   bool
}

// NewRegistry создает пустой регистр
func NewRegistry() *Registry {
	return &Registry{}
}

// Register добавляет поведение блока в регистр. Один экземпляр может
// обслуживать несколько ID с одинаковым поведением.
func (r *Registry) Register(behavior BlockBehavior, ids ...BlockID) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if len(ids) == 0 {
		ids = []BlockID{behavior.ID()}
	}
	for _, id := range ids {
		if r.handlers[id] != nil {
			return fmt.Errorf("%w: %d (%s)", ErrDuplicateHandler, id, r.handlers[id].Name())
		}
	}
	for _, id := range ids {
		r.handlers[id] = behavior
	}
	return nil
}

// Seal завершает построение регистра. Каждый ID из required обязан
// иметь обработчик, иначе это ошибка конфигурации.
func (r *Registry) Seal(required ...BlockID) error {
	for _, id := range required {
		if r.handlers[id] == nil {
			return fmt.Errorf("%w: %d", ErrMissingHandler, id)
		}
	}
	r.sealed = true
	return nil
}

// Sealed сообщает, запечатан ли регистр
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Get возвращает поведение для указанного ID
func (r *Registry) Get(id BlockID) (BlockBehavior, bool) {
	behavior := r.handlers[id]
	return behavior, behavior != nil
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func (r *Registry) IsValidBlockID(id BlockID) bool {
	return r.handlers[id] != nil
}

// IDs возвращает все зарегистрированные идентификаторы по возрастанию
func (r *Registry) IDs() []BlockID {
	ids := make([]BlockID, 0, 16)
	for id, behavior := range r.handlers {
		if behavior != nil {
			ids = append(ids, BlockID(id))
		}
	}
	return ids
}
