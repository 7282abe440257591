// Package store persists a small index of known players keyed by SteamID.
//
// Two backends implement Store: SQLite (database/sql with go-sqlite3) and
// Redis (go-redis). Both round-trip identifiers through the steamid codec, so
// a corrupted row or key surfaces as a *steamid.ParseError instead of a bad
// value.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sxyafiq/steamid"
)

// Backend drivers accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

var (
	// ErrNotFound is returned when no player is stored under the identifier.
	ErrNotFound = errors.New("player not found")

	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown store driver")
)

// Player is one entry in the index.
type Player struct {
	SteamID steamid.SteamID `json:"steamid"`
	Name    string          `json:"name"`
	SeenAt  time.Time       `json:"seen_at"`
}

// Store is a player index. Implementations are safe for concurrent use.
type Store interface {
	// Put inserts or replaces the player. The SteamID must be valid.
	Put(ctx context.Context, p Player) error

	// Get returns the player or ErrNotFound.
	Get(ctx context.Context, id steamid.SteamID) (Player, error)

	// List returns every player in ascending SteamID order.
	List(ctx context.Context) ([]Player, error)

	// Delete removes the player or returns ErrNotFound.
	Delete(ctx context.Context, id steamid.SteamID) error

	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	// Driver is DriverSQLite or DriverRedis.
	Driver string

	// DSN is the SQLite data source name (file path or ":memory:").
	DSN string

	// Addr, Password and DB configure the Redis client.
	Addr     string
	Password string
	DB       int

	// Prefix namespaces every Redis key.
	Prefix string
}

// Open connects to the backend selected by opts.Driver.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch opts.Driver {
	case DriverSQLite:
		return OpenSQLite(ctx, opts.DSN, logger)
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
		}
		logger.Debug("Opened redis player index", "addr", opts.Addr, "prefix", opts.Prefix)
		return NewRedis(client, opts.Prefix, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// validate rejects players whose identifier did not come from the codec.
func validate(p Player) error {
	if _, err := steamid.New(p.SteamID.Uint64()); err != nil {
		return fmt.Errorf("invalid player: %w", err)
	}
	return nil
}
