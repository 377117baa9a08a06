package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Cart     CartConfig
	Snapshot SnapshotConfig
	Client   ClientConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClient parses only the client section. shopctl uses this when the full
// config cannot load, typically because no database is configured.
func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("parsing client config: %w", err)
	}
	return cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SWARNIM_APP_ENV" default:"dev"`
	Port         string `envconfig:"SWARNIM_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SWARNIM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWARNIM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SWARNIM_DB_DSN"`
	Driver string `envconfig:"SWARNIM_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SWARNIM_DB_HOST"`
	Port     int    `envconfig:"SWARNIM_DB_PORT" default:"5432"`
	User     string `envconfig:"SWARNIM_DB_USER"`
	Password string `envconfig:"SWARNIM_DB_PASSWORD"`
	Name     string `envconfig:"SWARNIM_DB_NAME"`
	SSLMode  string `envconfig:"SWARNIM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SWARNIM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWARNIM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWARNIM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWARNIM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name settings are required")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SWARNIM_REDIS_URL"`
	Address      string        `envconfig:"SWARNIM_REDIS_ADDR"`
	Password     string        `envconfig:"SWARNIM_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWARNIM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWARNIM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWARNIM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWARNIM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWARNIM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWARNIM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. The
// snapshot cache is optional and the API runs without it.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CartConfig struct {
	// MaxBytes bounds the serialized size of a saved cart. Payloads strictly
	// larger are rejected before any write.
	MaxBytes int `envconfig:"SWARNIM_CART_MAX_BYTES" default:"45000"`
}

type SnapshotConfig struct {
	CacheTTL time.Duration `envconfig:"SWARNIM_SNAPSHOT_CACHE_TTL" default:"30s"`
}

// ClientConfig drives the shopctl client binary.
type ClientConfig struct {
	APIURL       string        `envconfig:"SWARNIM_CLIENT_API_URL" default:"http://localhost:8080/api/storefront"`
	StateDir     string        `envconfig:"SWARNIM_CLIENT_STATE_DIR" default:""`
	SyncInterval time.Duration `envconfig:"SWARNIM_CLIENT_SYNC_INTERVAL" default:"5m"`
}
