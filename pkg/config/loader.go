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

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into the provided configuration struct
// based on `env` field tags. Each distinct config type is parsed once per
// process and cached; subsequent calls return the cached copy.
//
// The default .env file is loaded lazily on first use. A missing .env file is
// not an error.
//
// Example:
//
//	type WebhookConfig struct {
//		Secret string `env:"WEBHOOK_SECRET,required"`
//	}
//
//	var cfg WebhookConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	name := typeName[T]()

	cacheMu.RLock()
	if cached, ok := cache[name]; ok {
		*v = cached.(T)
		cacheMu.RUnlock()
		return nil
	}
	cacheMu.RUnlock()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cacheMu.Lock()
	// Another goroutine may have raced us here; keep the first stored copy so
	// every caller observes identical configuration.
	if cached, ok := cache[name]; ok {
		*v = cached.(T)
	} else {
		cache[name] = *v
	}
	cacheMu.Unlock()

	return nil
}

// MustLoad works like Load but panics on failure. Intended for configuration
// required at startup, where a broken environment should prevent boot.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv loads one or more env files before any config parsing. Later files
// take precedence over earlier ones.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Overload(path); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}
	return nil
}

// ResetCache clears cached configs. Test helper only.
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
