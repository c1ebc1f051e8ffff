package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Mongo.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Name         string `envconfig:"LUCKBANK_APP_NAME" default:"Luck Bank API"`
	Description  string `envconfig:"LUCKBANK_APP_DESCRIPTION" default:"Banking customer backend"`
	Env          string `envconfig:"LUCKBANK_APP_ENV" required:"true"`
	Port         string `envconfig:"LUCKBANK_APP_PORT" required:"true"`
	Debug        bool   `envconfig:"LUCKBANK_APP_DEBUG" default:"false"`
	LogLevel     string `envconfig:"LUCKBANK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUCKBANK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type MongoConfig struct {
	URL      string `envconfig:"LUCKBANK_MONGO_URL" required:"true"`
	Database string `envconfig:"LUCKBANK_MONGO_DATABASE" required:"true"`

	TLS    bool   `envconfig:"LUCKBANK_MONGO_TLS" default:"false"`
	CAFile string `envconfig:"LUCKBANK_MONGO_CA_FILE"`
	Direct bool   `envconfig:"LUCKBANK_MONGO_DIRECT" default:"true"`

	ServerSelectionTimeout time.Duration `envconfig:"LUCKBANK_MONGO_SERVER_SELECTION_TIMEOUT" default:"5s"`
	ConnectTimeout         time.Duration `envconfig:"LUCKBANK_MONGO_CONNECT_TIMEOUT" default:"10s"`
}

func (m MongoConfig) validate() error {
	if m.TLS && strings.TrimSpace(m.CAFile) == "" {
		return fmt.Errorf("%s is required when %s is enabled", EnvMongoCAFile, EnvMongoTLS)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"LUCKBANK_REDIS_URL"`
	Address      string        `envconfig:"LUCKBANK_REDIS_ADDR"`
	Password     string        `envconfig:"LUCKBANK_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUCKBANK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUCKBANK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUCKBANK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUCKBANK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUCKBANK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUCKBANK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured. When it is not,
// the API falls back to the in-process revocation store.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret              string `envconfig:"LUCKBANK_JWT_SECRET" required:"true"`
	Issuer              string `envconfig:"LUCKBANK_JWT_ISSUER" required:"true"`
	AccessTokenMinutes  int    `envconfig:"LUCKBANK_ACCESS_TOKEN_EXPIRES_IN" default:"15"`
	RefreshTokenMinutes int    `envconfig:"LUCKBANK_REFRESH_TOKEN_EXPIRES_IN" default:"43200"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.AccessTokenMinutes <= 0 {
		return 0
	}
	return time.Duration(j.AccessTokenMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenMinutes) * time.Minute
}

type PasswordConfig struct {
	MinLength        int `envconfig:"LUCKBANK_PASSWORD_MIN_LENGTH" default:"8"`
	ArgonMemoryKB    int `envconfig:"LUCKBANK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LUCKBANK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LUCKBANK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LUCKBANK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LUCKBANK_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	Origins []string `envconfig:"LUCKBANK_CORS_ORIGINS" default:"http://localhost:3000"`
}
