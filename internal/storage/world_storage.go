package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

const (
	chunkKeyPrefix = "chunk:"
	blobMagic      = "BVC1"
	blobHeaderSize = len(blobMagic) + 2
)

var (
	// ErrNotReady возвращается после закрытия хранилища
	ErrNotReady = errors.New("хранилище не готово")
	// ErrCorruptChunk - сохраненный чанк не удалось разобрать
	ErrCorruptChunk = errors.New("повреждённые данные чанка")
)

// ChunkStore хранит колонны чанков в BadgerDB. Значение - zstd-сжатый
// блоб: магия, высота (uint16 BE), ID блоков, упакованные метаданные.
type ChunkStore struct {
	db       *badger.DB
	dbPath   string
	registry *block.Registry
	logger   *logging.Logger
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	mutex    sync.RWMutex
	isReady  bool
}

var _ world.ChunkProvider = (*ChunkStore)(nil)

// NewChunkStore открывает хранилище в <dataPath>/world. Загруженные ID
// блоков проверяются по запечатанному регистру.
func NewChunkStore(dataPath string, registry *block.Registry, logger *logging.Logger) (*ChunkStore, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB
	return open(opts, dbPath, registry, logger)
}

// NewInMemoryChunkStore открывает хранилище без диска (для тестов и
// временных миров)
func NewInMemoryChunkStore(registry *block.Registry, logger *logging.Logger) (*ChunkStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, "", registry, logger)
}

func open(opts badger.Options, dbPath string, registry *block.Registry, logger *logging.Logger) (*ChunkStore, error) {
	if registry == nil {
		return nil, errors.New("не задан регистр блоков")
	}
	if logger == nil {
		logger = logging.GetComponentLogger("storage")
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, err
	}

	db, err := badger.Open(opts)
	if err != nil {
		encoder.Close()
		decoder.Close()
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &ChunkStore{
		db:       db,
		dbPath:   dbPath,
		registry: registry,
		logger:   logger,
		encoder:  encoder,
		decoder:  decoder,
		isReady:  true,
	}, nil
}

// Close закрывает хранилище данных
func (cs *ChunkStore) Close() error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if !cs.isReady {
		return nil
	}

	cs.isReady = false
	encErr := cs.encoder.Close()
	cs.decoder.Close()
	return errors.Join(cs.db.Close(), encErr)
}

func chunkKey(coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", chunkKeyPrefix, coords.X, coords.Y))
}

func parseChunkKey(key []byte) (vec.Vec2, bool) {
	parts := strings.Split(strings.TrimPrefix(string(key), chunkKeyPrefix), ":")
	if len(parts) != 2 {
		return vec.Vec2{}, false
	}
	x, errX := strconv.Atoi(parts[0])
	z, errZ := strconv.Atoi(parts[1])
	if errX != nil || errZ != nil {
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: x, Y: z}, true
}

// SaveChunk сохраняет чанк, если в нем есть изменения, и сбрасывает
// счетчик сохраненных изменений
func (cs *ChunkStore) SaveChunk(chunk *world.Chunk) error {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return ErrNotReady
	}

	ids, metas, changes := chunk.Raw()
	if changes == 0 {
		return nil
	}

	blob := cs.encodeChunk(chunk.Height(), ids, metas)
	err := cs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(chunk.Coords), blob)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	chunk.MarkSaved(changes)
	cs.logger.Trace("чанк %v сохранён (%d байт)", chunk.Coords, len(blob))
	return nil
}

// LoadChunk загружает чанк. (nil, nil) - чанк ещё не сохранялся.
func (cs *ChunkStore) LoadChunk(coords vec.Vec2, height int) (*world.Chunk, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return nil, ErrNotReady
	}

	var data []byte
	err := cs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(coords))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	return cs.decodeChunk(coords, height, data)
}

// Coords возвращает координаты всех сохраненных чанков
func (cs *ChunkStore) Coords() ([]vec.Vec2, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return nil, ErrNotReady
	}

	var coords []vec.Vec2
	err := cs.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(chunkKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if c, ok := parseChunkKey(it.Item().Key()); ok {
				coords = append(coords, c)
			} else {
				cs.logger.Warn("пропущен ключ %q", it.Item().Key())
			}
		}
		return nil
	})
	return coords, err
}

func (cs *ChunkStore) encodeChunk(height int, ids []block.BlockID, metas []byte) []byte {
	raw := make([]byte, 0, blobHeaderSize+len(ids)+len(metas))
	raw = append(raw, blobMagic...)
	raw = binary.BigEndian.AppendUint16(raw, uint16(height))
	for _, id := range ids {
		raw = append(raw, byte(id))
	}
	raw = append(raw, metas...)
	return cs.encoder.EncodeAll(raw, nil)
}

func (cs *ChunkStore) decodeChunk(coords vec.Vec2, height int, blob []byte) (*world.Chunk, error) {
	raw, err := cs.decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %v: %v", ErrCorruptChunk, coords, err)
	}
	if len(raw) < blobHeaderSize || !bytes.Equal(raw[:len(blobMagic)], []byte(blobMagic)) {
		return nil, fmt.Errorf("%w %v: неверный заголовок", ErrCorruptChunk, coords)
	}

	stored := int(binary.BigEndian.Uint16(raw[len(blobMagic):blobHeaderSize]))
	if stored != height {
		return nil, fmt.Errorf("%w %v: высота %d, мир %d", ErrCorruptChunk, coords, stored, height)
	}

	n := world.ChunkSize * world.ChunkSize * height
	body := raw[blobHeaderSize:]
	if len(body) != n+(n+1)/2 {
		return nil, fmt.Errorf("%w %v: размер %d", ErrCorruptChunk, coords, len(body))
	}

	ids := make([]block.BlockID, n)
	for i, b := range body[:n] {
		id := block.BlockID(b)
		if !cs.registry.IsValidBlockID(id) {
			return nil, fmt.Errorf("%w %v: неизвестный блок %d", ErrCorruptChunk, coords, id)
		}
		ids[i] = id
	}

	return world.ChunkFromRaw(coords, height, ids, body[n:])
}
