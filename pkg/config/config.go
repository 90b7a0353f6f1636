package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/brewcart/pkg/enums"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	Maintenance  MaintenanceConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if !cfg.Catalog.Currency.IsValid() {
		return nil, fmt.Errorf("invalid %s %q", EnvCurrency, cfg.Catalog.Currency)
	}
	if cfg.Storage.Driver == enums.StorageDriverPostgres {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Driver == enums.StorageDriverRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("either %s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BREWCART_APP_ENV" required:"true"`
	Port         string `envconfig:"BREWCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BREWCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BREWCART_LOG_WARN_STACK" default:"false"`

	// CORSOrigins is a comma separated allow-list; empty means local dev origins.
	CORSOrigins []string `envconfig:"BREWCART_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver   enums.StorageDriver `envconfig:"BREWCART_STORAGE_DRIVER" default:"memory"`
	StateTTL time.Duration       `envconfig:"BREWCART_STORAGE_STATE_TTL" default:"720h"`
}

func (s StorageConfig) validate() error {
	if !s.Driver.IsValid() {
		return fmt.Errorf("invalid %s %q", EnvStorageDriver, s.Driver)
	}
	if s.StateTTL < 0 {
		return fmt.Errorf("%s must not be negative", EnvStorageStateTTL)
	}
	return nil
}

type DBConfig struct {
	DSN string `envconfig:"BREWCART_DB_DSN"`

	LegacyHost     string `envconfig:"BREWCART_DB_HOST"`
	LegacyPort     int    `envconfig:"BREWCART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BREWCART_DB_USER"`
	LegacyPassword string `envconfig:"BREWCART_DB_PASSWORD"`
	LegacyName     string `envconfig:"BREWCART_DB_NAME"`
	LegacySSLMode  string `envconfig:"BREWCART_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"BREWCART_SQLITE_PATH" default:"brewcart.db"`

	MaxOpenConns    int           `envconfig:"BREWCART_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BREWCART_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BREWCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BREWCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BREWCART_REDIS_URL"`
	Address      string        `envconfig:"BREWCART_REDIS_ADDR"`
	Password     string        `envconfig:"BREWCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"BREWCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BREWCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BREWCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BREWCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BREWCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BREWCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	// Source is either an http(s) base URL or a local directory holding
	// categories.json, products.json and options.json.
	Source   string         `envconfig:"BREWCART_CATALOG_SOURCE" default:"data"`
	Timeout  time.Duration  `envconfig:"BREWCART_CATALOG_TIMEOUT" default:"10s"`
	Currency enums.Currency `envconfig:"BREWCART_CURRENCY" default:"INR"`
}

type MaintenanceConfig struct {
	Interval    time.Duration `envconfig:"BREWCART_MAINTENANCE_INTERVAL" default:"1h"`
	LockTTL     time.Duration `envconfig:"BREWCART_MAINTENANCE_LOCK_TTL" default:"55m"`
	MetricsAddr string        `envconfig:"BREWCART_MAINTENANCE_METRICS_ADDR" default:":9091"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BREWCART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
