package confs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings, parsed from the environment.
type Config struct {
	ServerHost string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort string `env:"SERVER_PORT" envDefault:"8000"`

	// Either DBURL or the discrete DB_* parameters must be set.
	DBURL      string `env:"DB_URL"`
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`

	// RS256 key material for the token issuer/guard pair.
	JWTPrivateKeyPath string        `env:"JWT_PRIVATE_KEY_PATH" envDefault:"keys/jwt_rsa"`
	JWTPublicKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH" envDefault:"keys/jwt_rsa.pub"`
	JWTExpireTime     time.Duration `env:"JWT_EXPIRE_TIME" envDefault:"24h"`
	JWTCookieName     string        `env:"JWT_COOKIE_NAME" envDefault:"jwt"`

	// Interval for flushing buffered telemetry into the readings table.
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"5m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"LOG_DEV" envDefault:"false"`
}

// LoadConfig loads environment variables from a .env file if present
// and parses them into a Config.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		// Only log when the file truly doesn't exist; not an error for runtime
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
