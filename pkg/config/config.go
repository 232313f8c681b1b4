package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrParsingConfig = errors.New("config: failed to parse environment variables")
	ErrNilPointer    = errors.New("config: nil pointer provided to loader")
	ErrEnvFile       = errors.New("config: failed to load env file")
)

// LoadEnv loads dotenv files into the process environment without
// overriding variables that are already set. With no arguments it reads
// ".env" and ignores a missing file; files named explicitly must exist.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Join(ErrEnvFile, err)
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.Join(ErrEnvFile, err)
		}
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v using `env` and `envDefault`
// struct tags. Nested structs are parsed too, so an application config can
// embed the per-package Config types.
//
//	type Config struct {
//	    Addr  string `env:"ADDR" envDefault:":8080"`
//	    Cache cache.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load that panics on failure. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
