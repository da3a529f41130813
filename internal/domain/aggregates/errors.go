package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is the failure taxonomy shared by every write boundary and use case.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with a code, keeping it reachable through errors.Is/As.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

func NotFound(op, format string, args ...any) error {
	return NewError(CodeNotFound, op, fmt.Sprintf(format, args...), nil)
}

func Validation(op, format string, args ...any) error {
	return NewError(CodeValidation, op, fmt.Sprintf(format, args...), nil)
}

func Conflict(op, format string, args ...any) error {
	return NewError(CodeConflict, op, fmt.Sprintf(format, args...), nil)
}

func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost *Error in the chain, or "".
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// Message returns the human-readable part without op and code decoration.
func Message(err error) string {
	var aggErr *Error
	if errors.As(err, &aggErr) && strings.TrimSpace(aggErr.Message) != "" {
		return aggErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
