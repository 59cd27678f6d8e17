package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/mapdata"
	"github.com/annel0/blockverse/internal/storage"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/block/implementations"
)

// map-render рисует карту 128x128 по сохраненным чанкам мира и записывает
// ее в <мир>/data/map_<id>.dat
func main() {
	var (
		configPath = flag.String("config", "", "путь к YAML конфигурации")
		centerX    = flag.Int("x", 0, "центр карты X")
		centerZ    = flag.Int("z", 0, "центр карты Z")
		scale      = flag.Uint("scale", 0, "масштаб (0-4)")
		mapID      = flag.Int("id", -1, "ID существующей карты для перерисовки (-1 - новая)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if *scale > 4 {
		log.Fatalf("❌ Масштаб должен быть от 0 до 4")
	}

	registry, err := implementations.Default()
	if err != nil {
		log.Fatalf("❌ Регистр блоков: %v", err)
	}

	wc := cfg.World
	store, err := storage.NewChunkStore(cfg.Storage.GetPath(&wc), registry, logging.GetComponentLogger("storage"))
	if err != nil {
		log.Fatalf("❌ Хранилище: %v", err)
	}
	defer store.Close()

	w, err := world.New(world.Options{
		Name:      wc.GetName(),
		Height:    wc.GetHeight(),
		Dimension: wc.Dimension,
		Registry:  registry,
		Provider:  store,
	})
	if err != nil {
		log.Fatalf("❌ Мир: %v", err)
	}

	serializer, err := mapdata.NewSerializer(wc.GetDataPath())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	var m *mapdata.Map
	if *mapID >= 0 {
		m = mapdata.New(*mapID, *centerX, *centerZ, uint8(*scale), wc.Dimension)
		if err := serializer.Load(m); err != nil {
			log.Fatalf("❌ Карта %d: %v", *mapID, err)
		}
	} else {
		counter, err := mapdata.NewIDCounter(wc.GetDataPath())
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		if err := counter.Load(); err != nil && !errors.Is(err, mapdata.ErrNoData) {
			log.Fatalf("❌ Счетчик карт: %v", err)
		}
		m = mapdata.New(counter.Next(), *centerX, *centerZ, uint8(*scale), wc.Dimension)
		if err := counter.Save(); err != nil {
			log.Fatalf("❌ Счетчик карт: %v", err)
		}
	}

	changed := m.Render(w, registry)
	if err := serializer.Save(m); err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Printf("🗺  Карта %d: центр (%d, %d), масштаб %d, изменено пикселей: %d\n", m.ID, m.CenterX, m.CenterZ, m.Scale, changed)
	fmt.Printf("   %s\n", serializer.Path(m.ID))
}
