package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
)

// Sentinels for failures raised inside a write transaction, before an
// operation name is known. MapError turns them into coded errors.
var (
	ErrValidation = errors.New("aggregate validation")
	ErrInvariant  = errors.New("aggregate invariant violation")
	ErrConflict   = errors.New("aggregate conflict")
	ErrRetryable  = errors.New("aggregate retryable")
)

func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

func InvariantError(msg string) error {
	return errors.Join(ErrInvariant, errors.New(strings.TrimSpace(msg)))
}

func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

func RetryableError(msg string) error {
	return errors.Join(ErrRetryable, errors.New(strings.TrimSpace(msg)))
}

// MapError maps infrastructure/domain failures into aggregate error codes.
// An *aggregates.Error anywhere in the chain is returned as is.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		if aggErr == err {
			return err
		}
		return domainagg.NewError(aggErr.Code, op, aggErr.Message, err)
	}
	switch {
	case errors.Is(err, ErrValidation):
		return domainagg.Wrap(domainagg.CodeValidation, op, err)
	case errors.Is(err, ErrInvariant):
		return domainagg.Wrap(domainagg.CodeInvariantViolation, op, err)
	case errors.Is(err, ErrConflict):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case errors.Is(err, ErrRetryable):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainagg.Wrap(domainagg.CodeConflict, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.Wrap(domainagg.CodeRetryable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.Wrap(domainagg.CodeConflict, op, err) // unique_violation
		case "23503":
			return domainagg.Wrap(domainagg.CodePreconditionFailed, op, err) // foreign_key_violation
		case "23514":
			return domainagg.Wrap(domainagg.CodeInvariantViolation, op, err) // check_violation
		case "40001", "40P01", "55P03":
			return domainagg.Wrap(domainagg.CodeRetryable, op, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(err.Error())
	for _, m := range messageCodes {
		if strings.Contains(msg, m.needle) {
			return domainagg.Wrap(m.code, op, err)
		}
	}
	return domainagg.Wrap(domainagg.CodeInternal, op, err)
}

// messageCodes classifies driver errors that carry no typed code, mainly
// SQLite in tests and pgx errors that lost their *PgError wrapper.
var messageCodes = []struct {
	needle string
	code   domainagg.ErrorCode
}{
	{"duplicate key", domainagg.CodeConflict},
	{"unique constraint failed", domainagg.CodeConflict},
	{"foreign key constraint failed", domainagg.CodePreconditionFailed},
	{"check constraint failed", domainagg.CodeInvariantViolation},
	{"deadlock", domainagg.CodeRetryable},
	{"could not serialize", domainagg.CodeRetryable},
	{"database is locked", domainagg.CodeRetryable},
	{"database table is locked", domainagg.CodeRetryable},
	{"lock timeout", domainagg.CodeRetryable},
	{"connection reset", domainagg.CodeRetryable},
}
