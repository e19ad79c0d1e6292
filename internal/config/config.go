package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const (
	SeedSourceRandom   = "random"
	SeedSourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Gateway  GatewayConfig
	Index    IndexConfig
	Seed     SeedConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Worker   WorkerConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type GatewayConfig struct {
	RadiusMeters float64
}

type IndexConfig struct {
	CellStep int
	Shards   int
}

type SeedConfig struct {
	Enabled    bool
	Source     string
	Count      int
	NameLength int
	RandomSeed int64
	MinLat     float64
	MaxLat     float64
	MinLon     float64
	MaxLon     float64
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	BatchSize     int
	BlockTimeout  time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8085)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_READ_TIMEOUT", 10)
	v.SetDefault("API_WRITE_TIMEOUT", 10)

	v.SetDefault("GATEWAY_RADIUS_METERS", 40000)

	v.SetDefault("INDEX_CELL_STEP", 9)
	v.SetDefault("INDEX_SHARDS", 64)

	// France bounds (approximate values)
	v.SetDefault("SEED_ENABLED", false)
	v.SetDefault("SEED_SOURCE", SeedSourceRandom)
	v.SetDefault("SEED_COUNT", 500000)
	v.SetDefault("SEED_NAME_LENGTH", 7)
	v.SetDefault("SEED_RANDOM_SEED", 0)
	v.SetDefault("SEED_MIN_LAT", 41.303)
	v.SetDefault("SEED_MAX_LAT", 51.124)
	v.SetDefault("SEED_MIN_LON", -5.725)
	v.SetDefault("SEED_MAX_LON", 9.562)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("WORKER_CONSUMER_GROUP", "venue-ingest-workers")
	v.SetDefault("WORKER_BATCH_SIZE", 50)
	v.SetDefault("WORKER_BLOCK_TIMEOUT", 1000)

	v.SetDefault("METRICS_ENABLED", true)
}

// Load читает конфигурацию из .env (если файл есть) и переменных окружения.
// Путь к файлу можно переопределить через CONFIG_FILE.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	configFile := v.GetString("CONFIG_FILE")
	if configFile == "" {
		configFile = ".env"
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			ReadTimeout:  time.Duration(v.GetInt("API_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("API_WRITE_TIMEOUT")) * time.Second,
		},
		Gateway: GatewayConfig{
			RadiusMeters: v.GetFloat64("GATEWAY_RADIUS_METERS"),
		},
		Index: IndexConfig{
			CellStep: v.GetInt("INDEX_CELL_STEP"),
			Shards:   v.GetInt("INDEX_SHARDS"),
		},
		Seed: SeedConfig{
			Enabled:    v.GetBool("SEED_ENABLED"),
			Source:     v.GetString("SEED_SOURCE"),
			Count:      v.GetInt("SEED_COUNT"),
			NameLength: v.GetInt("SEED_NAME_LENGTH"),
			RandomSeed: v.GetInt64("SEED_RANDOM_SEED"),
			MinLat:     v.GetFloat64("SEED_MIN_LAT"),
			MaxLat:     v.GetFloat64("SEED_MAX_LAT"),
			MinLon:     v.GetFloat64("SEED_MIN_LON"),
			MaxLon:     v.GetFloat64("SEED_MAX_LON"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
			BlockTimeout:  time.Duration(v.GetInt("WORKER_BLOCK_TIMEOUT")) * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения, от которых зависит корректность индекса и загрузчика
func (c *Config) Validate() error {
	if c.Index.CellStep < 1 || c.Index.CellStep > 26 {
		return fmt.Errorf("INDEX_CELL_STEP must be within [1, 26], got %d", c.Index.CellStep)
	}
	if c.Index.Shards < 1 {
		return fmt.Errorf("INDEX_SHARDS must be positive, got %d", c.Index.Shards)
	}
	if c.Gateway.RadiusMeters < 0 {
		return fmt.Errorf("GATEWAY_RADIUS_METERS must not be negative, got %v", c.Gateway.RadiusMeters)
	}
	if c.Seed.Source != SeedSourceRandom && c.Seed.Source != SeedSourcePostgres {
		return fmt.Errorf("SEED_SOURCE must be %q or %q, got %q", SeedSourceRandom, SeedSourcePostgres, c.Seed.Source)
	}
	if c.Seed.NameLength < 1 {
		return fmt.Errorf("SEED_NAME_LENGTH must be positive, got %d", c.Seed.NameLength)
	}
	if c.Seed.MinLat > c.Seed.MaxLat || c.Seed.MinLon > c.Seed.MaxLon {
		return fmt.Errorf("seed bounding box is inverted")
	}
	if c.Worker.BatchSize < 1 {
		c.Worker.BatchSize = 50
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
