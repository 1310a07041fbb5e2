package db

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats represents database connection pool statistics.
type PoolStats struct {
	Driver        string `json:"driver"`
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
	WaitCount     int64  `json:"wait_count"`
	WaitDuration  string `json:"wait_duration"`
	Healthy       bool   `json:"healthy"`
}

// Checker pings a store and reports its pool statistics.
type Checker interface {
	Ping(ctx context.Context) error
	Stats() *PoolStats
}

type pgChecker struct{ pool *pgxpool.Pool }

// PgChecker wraps a pgx pool as a Checker.
func PgChecker(pool *pgxpool.Pool) Checker { return pgChecker{pool: pool} }

func (c pgChecker) Ping(ctx context.Context) error { return c.pool.Ping(ctx) }

func (c pgChecker) Stats() *PoolStats {
	stat := c.pool.Stat()
	return &PoolStats{
		Driver:        "postgres",
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
		WaitCount:     stat.EmptyAcquireCount(),
		WaitDuration:  stat.AcquireDuration().String(),
		Healthy:       stat.TotalConns() > 0,
	}
}

type sqlChecker struct{ db *sql.DB }

// SQLChecker wraps a database/sql handle as a Checker.
func SQLChecker(db *sql.DB) Checker { return sqlChecker{db: db} }

func (c sqlChecker) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c sqlChecker) Stats() *PoolStats {
	stat := c.db.Stats()
	return &PoolStats{
		Driver:        "sqlite",
		TotalConns:    int32(stat.OpenConnections),
		IdleConns:     int32(stat.Idle),
		AcquiredConns: int32(stat.InUse),
		MaxConns:      int32(stat.MaxOpenConnections),
		WaitCount:     stat.WaitCount,
		WaitDuration:  stat.WaitDuration.String(),
		Healthy:       true,
	}
}

// HealthHandler returns a handler for the database health check endpoint.
func HealthHandler(checker Checker) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		err := checker.Ping(ctx)
		stats := checker.Stats()

		if err != nil {
			stats.Healthy = false
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
				"pool":   stats,
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"pool":   stats,
		})
	}
}
