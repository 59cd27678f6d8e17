package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации сервера мира.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Storage  StorageConfig  `yaml:"storage"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

type WorldConfig struct {
	Name      string `yaml:"name"`
	DataPath  string `yaml:"data_path"`
	Height    int    `yaml:"height"`
	Seed      uint64 `yaml:"seed"`
	Dimension int    `yaml:"dimension"`
	TickMS    int    `yaml:"tick_ms"`
}

type StorageConfig struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

type EventBusConfig struct {
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
}

type MetricsConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
	Dir          string `yaml:"dir"`
	UseFiles     bool   `yaml:"use_files"`
}

// GetName возвращает имя мира
func (w *WorldConfig) GetName() string {
	return getStringWithEnvFallback(w.Name, "BLOCKVERSE_WORLD", "world")
}

// GetDataPath возвращает каталог мира (карты, idcounts)
func (w *WorldConfig) GetDataPath() string {
	return getStringWithEnvFallback(w.DataPath, "BLOCKVERSE_DATA_PATH", filepath.Join("data", w.GetName()))
}

// GetHeight возвращает высоту мира
func (w *WorldConfig) GetHeight() int {
	return getIntWithEnvFallback(w.Height, "BLOCKVERSE_WORLD_HEIGHT", 256)
}

// GetTickInterval возвращает период тика перепроверки блоков
func (w *WorldConfig) GetTickInterval() time.Duration {
	return time.Duration(getIntWithEnvFallback(w.TickMS, "BLOCKVERSE_TICK_MS", 50)) * time.Millisecond
}

// GetPath возвращает каталог BadgerDB
func (s *StorageConfig) GetPath(world *WorldConfig) string {
	return getStringWithEnvFallback(s.Path, "BLOCKVERSE_STORAGE_PATH", world.GetDataPath())
}

// IsEnabled сообщает, сохраняются ли чанки на диск
func (s *StorageConfig) IsEnabled() bool {
	if s.Enabled {
		return true
	}
	enabled, err := strconv.ParseBool(os.Getenv("BLOCKVERSE_STORAGE_ENABLED"))
	return err == nil && enabled
}

// GetURL возвращает адрес NATS; пустая строка - шина в памяти
func (e *EventBusConfig) GetURL() string {
	return getStringWithEnvFallback(e.URL, "BLOCKVERSE_NATS_URL", "")
}

// GetRetention возвращает срок хранения событий в стриме
func (e *EventBusConfig) GetRetention() time.Duration {
	return time.Duration(getIntWithEnvFallback(e.Retention, "BLOCKVERSE_EVENTS_RETENTION_HOURS", 24)) * time.Hour
}

// GetPort возвращает порт Prometheus метрик
func (m *MetricsConfig) GetPort() int {
	return getIntWithEnvFallback(m.Port, "BLOCKVERSE_METRICS_PORT", 2112)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	// Если значение задано в конфиге и больше 0, используем его
	if configValue > 0 {
		return configValue
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultValue
}

func getStringWithEnvFallback(configValue, envVar, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать путь из ENV BLOCKVERSE_CONFIG; если
// не задан и он, возвращает пустую конфигурацию (используются значения по
// умолчанию).
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("BLOCKVERSE_CONFIG")
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
