package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/learnpath-backend/internal/data/aggregates"
	"github.com/yungbote/learnpath-backend/internal/platform/dbctx"
)

// InjectedTxRunner is a TxRunner with failure injection. With DB set the body
// runs inside a real transaction, so an injected commit failure also rolls
// back the body's writes; without DB the body gets a context with no Tx.
type InjectedTxRunner struct {
	mu sync.Mutex

	DB *gorm.DB

	FailBegin  error
	FailCommit error
	// FailCommitTimes limits FailCommit to the first N attempts; 0 means every attempt.
	FailCommitTimes int

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	attempt := r.BeginCalls
	failBegin := r.FailBegin
	failCommit := r.FailCommit
	if r.FailCommitTimes > 0 && attempt > r.FailCommitTimes {
		failCommit = nil
	}
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}

	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return failCommit
	}

	var err error
	if r.DB != nil {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return body(dbctx.Context{Ctx: ctx, Tx: tx})
		})
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}

	r.mu.Lock()
	if err != nil {
		r.RollbackCalls++
	} else {
		r.CommitCalls++
	}
	r.mu.Unlock()
	return err
}

func (r *InjectedTxRunner) Counts() (begin, commit, rollback int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.BeginCalls, r.CommitCalls, r.RollbackCalls
}
