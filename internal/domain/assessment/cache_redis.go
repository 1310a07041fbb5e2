package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type dashboardCacheRedis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCacheRedis stores dashboards as JSON under dashboard:<user id>
// and the user's version counter under dashboard:<user id>:version.
func NewDashboardCacheRedis(client *redis.Client, ttl time.Duration) DashboardCache {
	return &dashboardCacheRedis{client: client, ttl: ttl}
}

func dashboardKey(userID uuid.UUID) string {
	return "dashboard:" + userID.String()
}

func dashboardVersionKey(userID uuid.UUID) string {
	return dashboardKey(userID) + ":version"
}

var errStaleDashboard = errors.New("dashboard version changed")

func (c *dashboardCacheRedis) Get(ctx context.Context, userID uuid.UUID) (*Dashboard, int64, error) {
	var data, ver *redis.StringCmd
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		data = pipe.Get(ctx, dashboardKey(userID))
		ver = pipe.Get(ctx, dashboardVersionKey(userID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, err
	}

	version, err := readVersion(ver)
	if err != nil {
		return nil, 0, err
	}
	raw, err := data.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var d Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, 0, err
	}
	return &d, version, nil
}

// Set watches the version key and writes only if it still holds version.
// A lost race is not an error: the next read recomputes.
func (c *dashboardCacheRedis) Set(ctx context.Context, userID uuid.UUID, version int64, d *Dashboard) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	vkey := dashboardVersionKey(userID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(tx.Get(ctx, vkey))
		if err != nil {
			return err
		}
		if current != version {
			return errStaleDashboard
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, dashboardKey(userID), data, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, errStaleDashboard) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate bumps the version before dropping the value, both in one
// transaction.
func (c *dashboardCacheRedis) Invalidate(ctx context.Context, userID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, dashboardVersionKey(userID))
		pipe.Del(ctx, dashboardKey(userID))
		return nil
	})
	return err
}

// readVersion treats a missing counter as version 0.
func readVersion(cmd *redis.StringCmd) (int64, error) {
	v, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}
