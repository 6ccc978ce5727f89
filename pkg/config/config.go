package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/lavka-miniapp/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Checkout     CheckoutConfig
	Session      SessionConfig
	Identity     IdentityConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Driver.IsSQL() {
		if err := cfg.DB.ensureDSN(cfg.Storage.Driver); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Validate rejects settings the shop cannot run with.
func (c *Config) Validate() error {
	if !c.Storage.Driver.IsValid() {
		return fmt.Errorf("%s must be one of memory, redis, sqlite, postgres; got %q", EnvStorageDriver, c.Storage.Driver)
	}
	if c.Storage.Driver == enums.StorageDriverRedis && c.Redis.URL == "" && c.Redis.Address == "" {
		return fmt.Errorf("%s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
	}
	if c.Checkout.FreeShippingThreshold < 0 {
		return fmt.Errorf("%s must be non-negative", EnvCheckoutFreeShippingThreshold)
	}
	if c.Checkout.DeliveryFee < 0 {
		return fmt.Errorf("%s must be non-negative", EnvCheckoutDeliveryFee)
	}
	if c.Checkout.ProcessingDelay < 0 || c.Checkout.RedirectDelay < 0 {
		return fmt.Errorf("checkout delays must be non-negative")
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"LAVKA_APP_ENV" default:"dev"`
	Port         string `envconfig:"LAVKA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LAVKA_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LAVKA_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"LAVKA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver    enums.StorageDriver `envconfig:"LAVKA_STORAGE_DRIVER" default:"memory"`
	Namespace string              `envconfig:"LAVKA_STORAGE_NAMESPACE" default:"lavka"`
}

type DBConfig struct {
	DSN string `envconfig:"LAVKA_DB_DSN"`

	Host     string `envconfig:"LAVKA_DB_HOST"`
	Port     int    `envconfig:"LAVKA_DB_PORT" default:"5432"`
	User     string `envconfig:"LAVKA_DB_USER"`
	Password string `envconfig:"LAVKA_DB_PASSWORD"`
	Name     string `envconfig:"LAVKA_DB_NAME"`
	SSLMode  string `envconfig:"LAVKA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LAVKA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"LAVKA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"LAVKA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LAVKA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LAVKA_REDIS_URL"`
	Address      string        `envconfig:"LAVKA_REDIS_ADDR"`
	Password     string        `envconfig:"LAVKA_REDIS_PASSWORD"`
	DB           int           `envconfig:"LAVKA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LAVKA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LAVKA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LAVKA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LAVKA_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"LAVKA_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// CheckoutConfig holds the delivery fee rule and the simulated processing timings.
// Amounts are whole rubles.
type CheckoutConfig struct {
	FreeShippingThreshold int64         `envconfig:"LAVKA_CHECKOUT_FREE_SHIPPING_THRESHOLD" default:"1500"`
	DeliveryFee           int64         `envconfig:"LAVKA_CHECKOUT_DELIVERY_FEE" default:"199"`
	ProcessingDelay       time.Duration `envconfig:"LAVKA_CHECKOUT_PROCESSING_DELAY" default:"1500ms"`
	RedirectDelay         time.Duration `envconfig:"LAVKA_CHECKOUT_REDIRECT_DELAY" default:"2s"`
}

type SessionConfig struct {
	IdleTTL     time.Duration `envconfig:"LAVKA_SESSION_IDLE_TTL" default:"24h"`
	MaxSessions int           `envconfig:"LAVKA_SESSION_MAX" default:"10000"`
}

type IdentityConfig struct {
	AdminIDs  []int64 `envconfig:"LAVKA_ADMIN_IDS" default:"123456789"`
	GuestName string  `envconfig:"LAVKA_GUEST_NAME" default:"Гость"`

	// BotToken enables signature checks of the mini-app init data when set.
	BotToken    string        `envconfig:"LAVKA_TELEGRAM_BOT_TOKEN"`
	InitDataTTL time.Duration `envconfig:"LAVKA_TELEGRAM_INIT_DATA_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LAVKA_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,https://web.telegram.org"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LAVKA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(driver enums.StorageDriver) error {
	if db.DSN != "" {
		return nil
	}
	if driver == enums.StorageDriverSQLite {
		return fmt.Errorf("%s is required for the sqlite storage driver", EnvDBDSN)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range postgresPartEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
