package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
)

// requireUser writes a 401 and returns false when the request carries no caller.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID := ctxutil.UserID(c.Request.Context())
	if userID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(c.Param(name)))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, err)
		return 0, false
	}
	return n, true
}

// queryInt returns def when the parameter is absent; junk is a 400.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, err)
		return 0, false
	}
	return n, true
}

func queryBool(c *gin.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
