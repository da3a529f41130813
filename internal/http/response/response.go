package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// StatusForCode maps an aggregate error code to its HTTP status.
func StatusForCode(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	case domainagg.CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case domainagg.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError writes err using its aggregate code. Internal failures
// never leak their message to the client.
func RespondDomainError(c *gin.Context, err error) {
	var aggErr *domainagg.Error
	if !errors.As(err, &aggErr) {
		RespondError(c, http.StatusInternalServerError, string(domainagg.CodeInternal), errors.New("internal error"))
		return
	}
	status := StatusForCode(aggErr.Code)
	if status == http.StatusInternalServerError {
		RespondError(c, status, string(domainagg.CodeInternal), errors.New("internal error"))
		return
	}
	RespondError(c, status, string(aggErr.Code), errors.New(domainagg.Message(err)))
}
