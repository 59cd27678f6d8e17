package block

// ItemID - идентификатор типа предмета. Идентификаторы блоков совпадают
// с идентификаторами их предметов.
type ItemID uint16

// Предметы, участвующие в добыче
const (
	SticksItemID     ItemID = 280
	SeedsItemID      ItemID = 295
	WoodenDoorItemID ItemID = 324
	ShearsItemID     ItemID = 359
)

// ItemStack - стопка предметов: тип, количество и дополнительные данные
type ItemStack struct {
	Item   ItemID
	Count  int
	Damage int16
}

// NewBlockStack создает стопку с предметом, соответствующим блоку
func NewBlockStack(id BlockID, count int, meta Meta) ItemStack {
	return ItemStack{Item: ItemID(id), Count: count, Damage: int16(meta)}
}

// IsEmpty сообщает, пуста ли стопка
func (s ItemStack) IsEmpty() bool {
	return s.Count <= 0
}

// EnchantmentID - идентификатор зачарования
type EnchantmentID uint8

const (
	EnchantmentSilkTouch EnchantmentID = 33
	EnchantmentFortune   EnchantmentID = 35
)

// Tool - предмет, которым ломают блок
type Tool struct {
	Item         ItemID
	Enchantments map[EnchantmentID]int
}

// IsPrecision сообщает, дает ли инструмент всегда простой дроп самого блока
func (t *Tool) IsPrecision() bool {
	return t != nil && t.Item == ShearsItemID
}

// EnchantmentLevel возвращает уровень зачарования; 0 для nil
func (t *Tool) EnchantmentLevel(e EnchantmentID) int {
	if t == nil {
		return 0
	}
	return t.Enchantments[e]
}

// FortuneLevel возвращает уровень удачи инструмента
func (t *Tool) FortuneLevel() int {
	return t.EnchantmentLevel(EnchantmentFortune)
}

// Digger - сущность, разрушившая блок
type Digger interface {
	IsPlayer() bool
}

// Player - копающий игрок с игровым режимом
type Player interface {
	Digger
	IsGameModeCreative() bool
}

// IsCreativePlayer сообщает, является ли копающий игроком в творческом режиме.
// nil допустим.
func IsCreativePlayer(d Digger) bool {
	if d == nil || !d.IsPlayer() {
		return false
	}
	p, ok := d.(Player)
	return ok && p.IsGameModeCreative()
}
