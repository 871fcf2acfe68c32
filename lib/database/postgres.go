package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/config"
)

// InitPostgresPool opens a pgx pool sized for the low-volume analytics
// workload.
func InitPostgresPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(config.GetDBConnectionString())
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	return pgxpool.ConnectConfig(ctx, poolConfig)
}
