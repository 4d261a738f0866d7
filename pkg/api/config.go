package api

import (
	"fmt"
	"time"
)

type Config struct {
	Host       string `env:"SERVER_HOST,default=localhost"`
	Port       uint16 `env:"SERVER_PORT,default=8080" validate:"required"`
	CORSOrigin string `env:"CORS_ORIGIN,default=*"`
	// CacheTTL memoizes post responses per source and limit. Zero disables the cache.
	CacheTTL time.Duration `env:"SERVER_CACHE_TTL,default=1m" validate:"min=0"`
}

func NewDefaultConfig() Config {
	return Config{
		Host:       "localhost",
		Port:       8080,
		CORSOrigin: "*",
		CacheTTL:   time.Minute,
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
