package store

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sxyafiq/steamid"
)

// Redis is a Store backed by Redis.
//
// Layout:
//
//	<prefix>player:<steam64>  hash {name, seen_at}
//	<prefix>players           sorted set of steam64 members scored by community number
//
// The community number is Steam64 - Offset, so the sorted set orders members
// exactly like their packed values.
type Redis struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewRedis wraps an existing client. The caller's client is closed by Close.
func NewRedis(client redis.UniversalClient, prefix string, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{client: client, prefix: prefix, logger: logger}
}

func (r *Redis) playerKey(id steamid.SteamID) string {
	return r.prefix + "player:" + id.String()
}

func (r *Redis) indexKey() string {
	return r.prefix + "players"
}

// Put implements Store.
func (r *Redis) Put(ctx context.Context, p Player) error {
	if err := validate(p); err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.playerKey(p.SteamID),
		"name", p.Name,
		"seen_at", p.SeenAt.UnixMilli())
	pipe.ZAdd(ctx, r.indexKey(), redis.Z{
		Score:  float64(p.SteamID.CommunityNumber()),
		Member: p.SteamID.String(),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store player %s: %w", p.SteamID, err)
	}

	r.logger.Debug("Stored player", "steamid", p.SteamID, "name", p.Name)
	return nil
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, id steamid.SteamID) (Player, error) {
	fields, err := r.client.HGetAll(ctx, r.playerKey(id)).Result()
	if err != nil {
		return Player{}, fmt.Errorf("failed to load player %s: %w", id, err)
	}
	if len(fields) == 0 {
		return Player{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return playerFromHash(id, fields)
}

// List implements Store.
func (r *Redis) List(ctx context.Context) ([]Player, error) {
	members, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	ids := make([]steamid.SteamID, len(members))
	for i, m := range members {
		id, err := steamid.Parse(m)
		if err != nil {
			return nil, fmt.Errorf("corrupt index member %q: %w", m, err)
		}
		ids[i] = id
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, r.playerKey(id))
	}
	if len(cmds) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to list players: %w", err)
		}
	}

	players := make([]Player, 0, len(ids))
	for i, id := range ids {
		fields := cmds[i].Val()
		if len(fields) == 0 {
			r.logger.Warn("Index member without player hash", "steamid", id)
			continue
		}
		p, err := playerFromHash(id, fields)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, id steamid.SteamID) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.playerKey(id))
	pipe.ZRem(ctx, r.indexKey(), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r.logger.Debug("Deleted player", "steamid", id)
	return nil
}

// Close implements Store.
func (r *Redis) Close() error {
	return r.client.Close()
}

func playerFromHash(id steamid.SteamID, fields map[string]string) (Player, error) {
	seenAt, err := strconv.ParseInt(fields["seen_at"], 10, 64)
	if err != nil {
		return Player{}, fmt.Errorf("corrupt seen_at for player %s: %w", id, err)
	}
	return Player{
		SteamID: id,
		Name:    fields["name"],
		SeenAt:  time.UnixMilli(seenAt).UTC(),
	}, nil
}
