package block

import (
	"github.com/annel0/blockverse/internal/vec"
)

const (
	// PartMarkerBit отличает верхнюю половину двухъячеечной структуры
	PartMarkerBit Meta = 0x08
	// SubStateMask выделяет подсостояние, общее для обеих половин
	SubStateMask Meta = 0x07
)

// TwoCell - примесь для блоков, занимающих две вертикально соседние ячейки.
// Обе половины имеют один BlockID, метаданные отличаются только битом
// PartMarkerBit. Добычу считает только нижняя половина, вторую половину
// удаляет только OnBroken, проверки опоры идут к корню, а не к партнеру.
//
// Атомарной записи двух ячеек нет: это две независимые операции под
// блокировкой чанка. Оставшаяся после сбоя половина убирается при
// следующей перепроверке CanBeAt.
type TwoCell struct{}

// IsTopPart сообщает, описывают ли метаданные верхнюю половину
func (TwoCell) IsTopPart(meta Meta) bool {
	return meta&PartMarkerBit != 0
}

// SubState возвращает метаданные без бита половины
func (TwoCell) SubState(meta Meta) Meta {
	return meta & SubStateMask
}

// RootPosition возвращает ячейку, на которую опирается структура.
// Верхняя половина смотрит на две ячейки вниз, а не на соседнюю нижнюю:
// при установке нижняя половина может еще не существовать.
func (t TwoCell) RootPosition(pos vec.Vec3, meta Meta) vec.Vec3 {
	if t.IsTopPart(meta) {
		return pos.AddedY(-2)
	}
	return pos.AddedY(-1)
}

// LowerMeta возвращает метаданные нижней половины. Для верхней половины
// читает ячейку ниже; false - нижняя половина не найдена или другого типа.
func (t TwoCell) LowerMeta(api BlockAPI, pos vec.Vec3, meta Meta, id BlockID) (Meta, bool) {
	if !t.IsTopPart(meta) {
		return meta, true
	}
	below := pos.AddedY(-1)
	if !api.IsValidHeight(below) {
		return 0, false
	}
	belowID, belowMeta, ok := api.GetBlockTypeMeta(below)
	if !ok || belowID != id {
		return 0, false
	}
	return belowMeta, true
}

// BreakPartner поддерживает целостность структуры после разрушения одной
// половины. Верхняя: нижняя половина того же типа очищается напрямую, если
// копал игрок в творческом режиме, иначе разрушается обычным путем с
// добычей. Нижняя: верхняя половина того же типа всегда очищается напрямую,
// добыча уже посчитана для нижней.
func (t TwoCell) BreakPartner(api BlockAPI, pos vec.Vec3, oldID BlockID, oldMeta Meta, digger Digger) bool {
	if t.IsTopPart(oldMeta) {
		lower := pos.AddedY(-1)
		if !t.partnerIs(api, lower, oldID) {
			return false
		}
		if IsCreativePlayer(digger) {
			api.SetBlock(lower, AirBlockID, 0)
		} else {
			api.DropBlockAsPickups(lower)
		}
		return true
	}

	upper := pos.AddedY(1)
	if !t.partnerIs(api, upper, oldID) {
		return false
	}
	api.SetBlock(upper, AirBlockID, 0)
	return true
}

func (TwoCell) partnerIs(api BlockAPI, pos vec.Vec3, id BlockID) bool {
	if !api.IsValidHeight(pos) {
		return false
	}
	partnerID, ok := api.GetBlock(pos)
	return ok && partnerID == id
}

// UpperMeta возвращает метаданные верхней половины. Подсостояние хранится
// только в нижней половине.
func (TwoCell) UpperMeta(lower Meta) Meta {
	return PartMarkerBit
}

// MultiCellBehavior - поведение блока, занимающего две ячейки по вертикали.
// Мир использует его, чтобы при установке нижней половины поставить и верхнюю.
type MultiCellBehavior interface {
	BlockBehavior
	IsTopPart(meta Meta) bool
	UpperMeta(lower Meta) Meta
}
