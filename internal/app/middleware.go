package app

import (
	"github.com/yungbote/learnpath-backend/internal/http/middleware"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{Auth: middleware.NewAuthMiddleware(log, s.Auth)}
}
