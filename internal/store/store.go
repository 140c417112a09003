package store

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Slot names for the persisted credential and cart.
const (
	SlotToken = "token"
	SlotCart  = "cart"
)

// Driver identifiers supported by the persistence bridge.
const (
	DriverFile  = "file"
	DriverRedis = "redis"
)

// Store is the persistence bridge: independent named string slots.
// Read reports absent (false) for missing or unreadable data, never an
// error, so consumers fall back to their empty initial state instead
// of failing startup.
type Store interface {
	Read(slot string) (string, bool)
	Write(slot string, value string) error
	Erase(slot string) error
	Close() error
}

type Config struct {
	Driver    string
	Path      string
	Namespace string
	RedisAddr string
	RedisPass string
	RedisDB   int
}

// New creates a store based on the configured driver.
func New(cfg Config, log zerolog.Logger) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFile
	}

	switch driver {
	case DriverFile:
		return NewFile(cfg.Path, log)
	case DriverRedis:
		return NewRedis(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
}
