package mapdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/klauspost/compress/gzip"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

var (
	// ErrMalformed - файл не является корректным NBT или нет compound "data"
	ErrMalformed = errors.New("повреждённый файл карты")
	// ErrDimensionMismatch - карта принадлежит другому измерению
	ErrDimensionMismatch = errors.New("карта из другого измерения")
	// ErrBadDimensions - ширина или высота карты не 128
	ErrBadDimensions = errors.New("неподдерживаемый размер карты")
	// ErrNoData - файл счетчика отсутствует или пуст
	ErrNoData = errors.New("нет данных счетчика карт")
)

// dataDir возвращает каталог данных мира, создавая его
func dataDir(worldDir string) (string, error) {
	dir := filepath.Join(worldDir, "data")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}
	return dir, nil
}

// writeFileAtomic пишет файл через временный и переименование
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

type mapFile struct {
	Data mapTag `nbt:"data"`
}

type mapTag struct {
	Scale     uint8            `nbt:"scale"`
	Dimension uint8            `nbt:"dimension"`
	Width     int16            `nbt:"width"`
	Height    int16            `nbt:"height"`
	XCenter   int32            `nbt:"xCenter"`
	ZCenter   int32            `nbt:"zCenter"`
	Colors    [PixelCount]byte `nbt:"colors"`
}

// Serializer читает и пишет карты мира в <мир>/data/map_<id>.dat
// (NBT big-endian, сжатый gzip)
type Serializer struct {
	dir string
}

// NewSerializer создаёт сериализатор карт для каталога мира
func NewSerializer(worldDir string) (*Serializer, error) {
	dir, err := dataDir(worldDir)
	if err != nil {
		return nil, err
	}
	return &Serializer{dir: dir}, nil
}

// Path возвращает путь к файлу карты
func (s *Serializer) Path(id int) string {
	return filepath.Join(s.dir, fmt.Sprintf("map_%d.dat", id))
}

// Save записывает все поля карты
func (s *Serializer) Save(m *Map) error {
	f := mapFile{Data: mapTag{
		Scale:     m.Scale,
		Dimension: uint8(m.Dimension),
		Width:     int16(m.Width),
		Height:    int16(m.Height),
		XCenter:   int32(m.CenterX),
		ZCenter:   int32(m.CenterZ),
		Colors:    m.Colors,
	}}

	err := writeFileAtomic(s.Path(m.ID), func(w io.Writer) error {
		gz := gzip.NewWriter(w)
		if err := nbt.NewEncoderWithEncoding(gz, nbt.BigEndian).Encode(f); err != nil {
			return err
		}
		return gz.Close()
	})
	if err != nil {
		return fmt.Errorf("сохранение карты %d: %w", m.ID, err)
	}
	return nil
}

// Load читает карту m.ID. Значения разбираются во временную копию и
// переносятся в m только при успехе; отсутствующие теги оставляют
// текущие значения m. Измерение в файле должно совпадать с m.Dimension.
func (s *Serializer) Load(m *Map) error {
	raw, err := os.ReadFile(s.Path(m.ID))
	if err != nil {
		return fmt.Errorf("чтение карты %d: %w", m.ID, err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer gz.Close()
	data, err := io.ReadAll(gz)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var root map[string]interface{}
	if err := nbt.UnmarshalEncoding(data, &root, nbt.BigEndian); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	tag, ok := root["data"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: нет compound data", ErrMalformed)
	}

	tmp := *m
	if v, ok := tag["scale"].(uint8); ok {
		tmp.Scale = v
	}
	if v, ok := tag["dimension"].(uint8); ok && v != uint8(m.Dimension) {
		return fmt.Errorf("%w: %d, ожидалось %d", ErrDimensionMismatch, int8(v), m.Dimension)
	}
	if v, ok := tag["width"].(int16); ok {
		if v != Width {
			return fmt.Errorf("%w: ширина %d", ErrBadDimensions, v)
		}
		tmp.Width = int(v)
	}
	if v, ok := tag["height"].(int16); ok {
		if v != Height {
			return fmt.Errorf("%w: высота %d", ErrBadDimensions, v)
		}
		tmp.Height = int(v)
	}
	if v, ok := tag["xCenter"].(int32); ok {
		tmp.CenterX = int(v)
	}
	if v, ok := tag["zCenter"].(int32); ok {
		tmp.CenterZ = int(v)
	}
	if v, ok := tag["colors"]; ok {
		colors, ok := byteArray(v)
		if !ok || len(colors) < PixelCount {
			return fmt.Errorf("%w: colors", ErrMalformed)
		}
		copy(tmp.Colors[:], colors)
	}

	*m = tmp
	return nil
}

// byteArray достает байты из TAG_Byte_Array: декодер NBT отдает массив
// фиксированной длины, зависящей от файла
func byteArray(v interface{}) ([]byte, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		return rv.Bytes(), true
	case rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8:
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, true
	}
	return nil, false
}
