package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	Password      PasswordConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
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

type AppConfig struct {
	Env          string `envconfig:"STOCKLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOCKLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKLINE_DB_DSN"`
	Driver string `envconfig:"STOCKLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKLINE_DB_USER"`
	LegacyPassword string `envconfig:"STOCKLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOCKLINE_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"STOCKLINE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"STOCKLINE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"STOCKLINE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"STOCKLINE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"STOCKLINE_AUTH_RL_LOGIN_WINDOW" default:"5m"`
	LoginIPLimit    int           `envconfig:"STOCKLINE_AUTH_RL_LOGIN_IP_LIMIT" default:"20"`
	LoginEmailLimit int           `envconfig:"STOCKLINE_AUTH_RL_LOGIN_EMAIL_LIMIT" default:"8"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOCKLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOCKLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOCKLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOCKLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOCKLINE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKLINE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"STOCKLINE_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"STOCKLINE_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"STOCKLINE_PUBSUB_ORDERS_TOPIC" default:"sl-order-events"`
	OrdersSubscription string `envconfig:"STOCKLINE_PUBSUB_ORDERS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"STOCKLINE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"STOCKLINE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"STOCKLINE_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
