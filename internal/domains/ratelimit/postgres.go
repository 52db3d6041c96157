package ratelimit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"microposts-backend/internal/infrastructure/database"
)

// PgxPool is the subset of *pgxpool.Pool the postgres limiter needs
type PgxPool interface {
	database.TxBeginner
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresLimiter stores admitted writes in post_write_events. A
// transaction-scoped advisory lock on the identity serialises concurrent
// consumers so the count-then-insert cannot overshoot the quota.
// Expired rows are removed by Prune, which the worker schedules.
type PostgresLimiter struct {
	pool   PgxPool
	policy Policy
}

func NewPostgresLimiter(pool PgxPool, policy Policy) (*PostgresLimiter, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}
	return &PostgresLimiter{pool: pool, policy: policy}, nil
}

func (l *PostgresLimiter) TryConsume(ctx context.Context, identity string) (bool, error) {
	allowed := false
	windowMs := l.policy.Window.Milliseconds()

	err := database.RunInTx(ctx, l.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, identity); err != nil {
			return fmt.Errorf("lock identity: %w", err)
		}

		var count int
		err := tx.QueryRow(ctx, `
			SELECT COUNT(*)
			FROM post_write_events
			WHERE identity = $1
			AND occurred_at > clock_timestamp() - ($2::bigint * INTERVAL '1 millisecond')
		`, identity, windowMs).Scan(&count)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}

		if count >= l.policy.Quota {
			return nil
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO post_write_events (identity, occurred_at)
			VALUES ($1, clock_timestamp())
		`, identity); err != nil {
			return fmt.Errorf("record event: %w", err)
		}

		allowed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("postgres limiter: %w", err)
	}

	return allowed, nil
}

// Prune deletes events that can no longer affect any decision and returns
// the number of rows removed.
func (l *PostgresLimiter) Prune(ctx context.Context) (int64, error) {
	tag, err := l.pool.Exec(ctx, `
		DELETE FROM post_write_events
		WHERE occurred_at <= clock_timestamp() - ($1::bigint * INTERVAL '1 millisecond')
	`, l.policy.Window.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return tag.RowsAffected(), nil
}
