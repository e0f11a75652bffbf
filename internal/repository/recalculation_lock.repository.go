package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"picktracker/internal/logger"
)

// recalculationLockID is the advisory lock key shared by every process
// that can start a recalculation
const recalculationLockID int64 = 0x70696b73

// RecalculationLockRepository hands out the cross-process recalculation
// lock. ok is false, with a nil error, when another session holds it.
type RecalculationLockRepository interface {
	TryAcquire(ctx context.Context) (release func(), ok bool, err error)
}

type recalculationLockRepositoryHandler struct {
	Db *sql.DB
}

func NewRecalculationLockRepository(db *sql.DB) RecalculationLockRepository {
	return recalculationLockRepositoryHandler{Db: db}
}

func (h recalculationLockRepositoryHandler) TryAcquire(ctx context.Context) (func(), bool, error) {
	// advisory locks belong to a session, so pin one connection for the
	// lifetime of the lock
	conn, err := h.Db.Conn(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get connection for recalculation lock: %w", err)
	}

	var acquired bool
	err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", recalculationLockID).Scan(&acquired)
	if err != nil {
		conn.Close()
		return nil, false, fmt.Errorf("failed to acquire recalculation lock: %w", err)
	}
	if !acquired {
		conn.Close()
		return nil, false, nil
	}

	release := func() {
		// the pass's ctx may already be cancelled here
		unlockCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := conn.ExecContext(unlockCtx, "SELECT pg_advisory_unlock($1)", recalculationLockID)
		if err != nil {
			logger.FromContext(ctx).Warnf("failed to release recalculation lock: %v", err)
		}
		conn.Close()
	}

	return release, true, nil
}
