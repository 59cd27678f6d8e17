package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/storage"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/block/implementations"
	"github.com/annel0/blockverse/internal/world/block/loot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// autoSaveEvery - период автосохранения чанков
const autoSaveEvery = 5 * time.Minute

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $BLOCKVERSE_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}

	if err := setupLogging(cfg.Log); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	if err := run(cfg); err != nil {
		logging.Error("❌ %v", err)
		os.Exit(1)
	}
	logging.Info("👋 Сервер успешно остановлен")
}

func setupLogging(lc config.LogConfig) error {
	consoleLevel, err := logging.ParseLevel(lc.ConsoleLevel)
	if err != nil {
		return err
	}
	fileLevel := logging.TRACE
	if lc.FileLevel != "" {
		if fileLevel, err = logging.ParseLevel(lc.FileLevel); err != nil {
			return err
		}
	}
	if lc.Dir != "" {
		logging.SetLogDir(lc.Dir)
	}
	if lc.UseFiles {
		if err := logging.InitDefaultLogger("server"); err != nil {
			return err
		}
	}
	logging.Default().SetLevels(consoleLevel, fileLevel)
	logging.GetLoggerManager().Configure(consoleLevel, fileLevel, lc.UseFiles)
	return nil
}

func run(cfg *config.Config) error {
	wc := cfg.World
	logging.Info("🎮 Запуск мира %q (высота %d, измерение %d)", wc.GetName(), wc.GetHeight(), wc.Dimension)

	// === РЕГИСТР БЛОКОВ ===
	registry, err := implementations.Default()
	if err != nil {
		return fmt.Errorf("регистр блоков: %w", err)
	}
	logging.Debug("Зарегистрировано типов блоков: %d", len(registry.IDs()))

	// === МЕТРИКИ ===
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := world.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("метрики мира: %w", err)
	}

	// === ШИНА СОБЫТИЙ ===
	bus, err := newEventBus(cfg.EventBus)
	if err != nil {
		return err
	}
	defer bus.Close()
	if _, err := eventbus.NewMetricsCollector(bus, reg); err != nil {
		return fmt.Errorf("метрики шины: %w", err)
	}
	if _, err := eventbus.StartLoggingListener(bus, logging.GetComponentLogger("events")); err != nil {
		return fmt.Errorf("подписка на события: %w", err)
	}

	// === ХРАНИЛИЩЕ ===
	opts := world.Options{
		Name:      wc.GetName(),
		Height:    wc.GetHeight(),
		Dimension: wc.Dimension,
		Registry:  registry,
		Bus:       bus,
		Metrics:   metrics,
		Logger:    logging.GetComponentLogger("world"),
	}
	if wc.Seed != 0 {
		opts.Loot = loot.NewSource(wc.Seed)
	}
	if cfg.Storage.IsEnabled() {
		path := cfg.Storage.GetPath(&wc)
		store, err := storage.NewChunkStore(path, registry, logging.GetComponentLogger("storage"))
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Provider = store
		logging.Info("💾 Чанки сохраняются в %s", path)
	}

	w, err := world.New(opts)
	if err != nil {
		return err
	}

	// === HTTP /metrics ===
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.GetPort()),
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tickLoop(ctx, w, wc.GetTickInterval())

	// === GRACEFUL SHUTDOWN ===
	logging.Info("📡 Получен сигнал завершения, сохранение мира...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Остановка HTTP сервера: %v", err)
	}
	return w.Save()
}

func newEventBus(ec config.EventBusConfig) (eventbus.EventBus, error) {
	url := ec.GetURL()
	if url == "" {
		logging.Info("🚌 Шина событий в памяти")
		return eventbus.NewMemoryBus(1024), nil
	}
	bus, err := eventbus.NewJetStreamBus(url, ec.Stream, ec.GetRetention())
	if err != nil {
		return nil, fmt.Errorf("JetStream %s: %w", url, err)
	}
	logging.Info("🚌 Шина событий JetStream: %s", url)
	return bus, nil
}

// tickLoop перепроверяет опору блоков каждый тик и периодически сохраняет
// мир, пока не отменен ctx
func tickLoop(ctx context.Context, w *world.World, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	saveTicker := time.NewTicker(autoSaveEvery)
	defer saveTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := w.Tick(); removed > 0 {
				logging.Debug("тик: удалено блоков без опоры: %d", removed)
			}
		case <-saveTicker.C:
			if err := w.Save(); err != nil {
				logging.Error("автосохранение: %v", err)
			}
		}
	}
}
