package aggregates

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

// TxRunner provides a shared transaction boundary primitive for aggregate writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "transaction runner has nil db", nil)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

type retryingTxRunner struct {
	inner    TxRunner
	attempts int
	backoff  time.Duration
}

// NewRetryingTxRunner reruns the whole transaction when it fails with a
// retryable error (serialization failure, deadlock, lock timeout). The body
// must be safe to run more than once, which holds when every write in it is
// an upsert or a single-statement UPDATE.
func NewRetryingTxRunner(inner TxRunner, attempts int, backoff time.Duration) TxRunner {
	if attempts < 1 {
		attempts = 1
	}
	return &retryingTxRunner{inner: inner, attempts: attempts, backoff: backoff}
}

func (r *retryingTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	var err error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		err = r.inner.InTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !domainagg.IsCode(MapError("aggregate.tx", err), domainagg.CodeRetryable) || ctx.Err() != nil {
			return err
		}
		if attempt == r.attempts {
			break
		}
		wait := r.backoff * time.Duration(attempt)
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}
