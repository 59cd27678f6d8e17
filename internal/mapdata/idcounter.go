package mapdata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// IDCounter хранит число выданных идентификаторов карт в
// <мир>/data/idcounts.dat. Файл не сжат: NBT {map: short(count-1)}.
type IDCounter struct {
	path  string
	mu    sync.Mutex
	count int
}

// NewIDCounter создаёт счетчик для каталога мира
func NewIDCounter(worldDir string) (*IDCounter, error) {
	dir, err := dataDir(worldDir)
	if err != nil {
		return nil, err
	}
	return &IDCounter{path: filepath.Join(dir, "idcounts.dat")}, nil
}

// Path возвращает путь к файлу счетчика
func (c *IDCounter) Path() string {
	return c.path
}

// Count возвращает число выданных идентификаторов
func (c *IDCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Next выдает новый идентификатор карты
func (c *IDCounter) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.count
	c.count++
	return id
}

// Load читает счетчик. Пустой или отсутствующий файл - ErrNoData;
// отсутствие тега map означает, что карт еще не было.
func (c *IDCounter) Load() error {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(data) == 0) {
		return ErrNoData
	}
	if err != nil {
		return fmt.Errorf("чтение %s: %w", c.path, err)
	}

	var root map[string]interface{}
	if err := nbt.UnmarshalEncoding(data, &root, nbt.BigEndian); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	count := 0
	if v, ok := root["map"].(int16); ok {
		count = int(v) + 1
	}

	c.mu.Lock()
	c.count = count
	c.mu.Unlock()
	return nil
}

// Save записывает счетчик. Тег map пишется только если карты выдавались.
func (c *IDCounter) Save() error {
	root := map[string]interface{}{}
	if count := c.Count(); count > 0 {
		root["map"] = int16(count - 1)
	}

	err := writeFileAtomic(c.path, func(w io.Writer) error {
		return nbt.NewEncoderWithEncoding(w, nbt.BigEndian).Encode(root)
	})
	if err != nil {
		return fmt.Errorf("сохранение %s: %w", c.path, err)
	}
	return nil
}
