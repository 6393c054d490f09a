package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]any)

	defaultEnvOnce sync.Once
)

// LoadEnv loads the named .env files into the process environment before any
// struct parsing. Missing files are an error here, unlike the silent default
// load, because naming a file means you expect it to exist.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFiles, err)
	}
	return nil
}

// Load parses environment variables into the provided struct based on its
// `env` field tags. The default .env file is loaded once per process if
// present. Each struct type is parsed once and cached; later calls for the
// same type return the cached copy, so config reads stay cheap on hot paths.
//
//	type PipelineConfig struct {
//		ImpersonationHeader string        `env:"TENANT_IMPERSONATION_HEADER" envDefault:"X-Tenant-ID"`
//		CacheTTL            time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
//	}
//
//	var cfg PipelineConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	defaultEnvOnce.Do(func() {
		// The default .env is optional.
		_ = godotenv.Load()
	})

	key := typeName[T]()

	cacheMu.RLock()
	cached, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cacheMu.Lock()
	// A copy goes into the cache so callers cannot mutate it afterwards.
	cache[key] = *v
	cacheMu.Unlock()
	return nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the service cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache clears all cached configurations. Intended for tests that
// mutate the process environment between loads.
func ResetCache() {
	cacheMu.Lock()
	cache = make(map[string]any)
	cacheMu.Unlock()
}

func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
