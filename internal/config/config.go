package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
	// migrations run on startup unless skipped
	SkipMigrations  bool          `yaml:"SKIP_MIGRATIONS" env:"PG_SKIP_MIGRATIONS"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// RateConfig bounds how many API requests one client may issue per window.
type RateConfig struct {
	Disabled    bool          `yaml:"DISABLED" env:"RATE_LIMIT_DISABLED"`
	MaxRequests int64         `yaml:"MAX_REQUESTS" env:"RATE_LIMIT_MAX_REQUESTS" env-default:"300"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"RATE_LIMIT_WINDOW_SIZE" env-default:"1m"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type CacheConfig struct {
	DefaultTTL              time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	BreakerFailureThreshold uint32        `yaml:"breaker_failure_threshold" env:"CACHE_BREAKER_FAILURE_THRESHOLD" env-default:"5"`
	BreakerTimeout          time.Duration `yaml:"breaker_timeout" env:"CACHE_BREAKER_TIMEOUT" env-default:"30s"`
}

type OtelConfig struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"entity-api"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type APIConfig struct {
	MaxPageSize int `yaml:"max_page_size" env:"API_MAX_PAGE_SIZE" env-default:"1000"`
}

// AuthzConfig points at casbin model/policy files. Empty paths use the embedded defaults.
type AuthzConfig struct {
	ModelPath  string `yaml:"model_path" env:"AUTHZ_MODEL_PATH"`
	PolicyPath string `yaml:"policy_path" env:"AUTHZ_POLICY_PATH"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Cache        CacheConfig  `yaml:"cache"`
	Otel         OtelConfig   `yaml:"otel"`
	API          APIConfig    `yaml:"api"`
	Authz        AuthzConfig  `yaml:"authz"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = defaultConfigPath
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
