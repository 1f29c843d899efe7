package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Storage StorageConfig
	Routes  RoutesConfig
}

// BackendConfig points at the authentication/profile backend.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:8081"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

// StorageConfig selects the durable session store.
type StorageConfig struct {
	Backend  string `env:"SESSION_STORAGE, default=file"` // file | redis | memory
	FilePath string `env:"SESSION_FILE,    default=session.json"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RoutesConfig holds the guard's redirect targets.
type RoutesConfig struct {
	LoginPath   string `env:"LOGIN_PATH,   default=/login"`
	LandingPath string `env:"LANDING_PATH, default=/dashboard"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
