package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fuseagg/fuse/pkg/api"
	"github.com/fuseagg/fuse/pkg/lib"
	"github.com/fuseagg/fuse/pkg/lib/log"
	"github.com/fuseagg/fuse/pkg/sources/types"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Log       log.Config           `env:""`
	API       api.Config           `env:""`
	Providers types.ProviderConfig `env:""`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := lib.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads variables from the given files (".env" when none are given)
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
