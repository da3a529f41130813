package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type LearningPathService interface {
	CreateLearningPath(ctx context.Context, userID uuid.UUID, goal, timeframe string) (*types.LearningPath, error)
	ListLearningPaths(ctx context.Context, userID uuid.UUID) ([]*types.LearningPath, error)
	GetLearningPath(ctx context.Context, userID, pathID uuid.UUID) (*types.LearningPath, error)
	CompleteLearningPathItem(ctx context.Context, userID, pathID uuid.UUID, order int) error
}

type LearningPathHandler struct {
	log *logger.Logger
	svc LearningPathService
}

func NewLearningPathHandler(log *logger.Logger, svc LearningPathService) *LearningPathHandler {
	return &LearningPathHandler{
		log: log.With("handler", "LearningPathHandler"),
		svc: svc,
	}
}

type createLearningPathRequest struct {
	Goal      string `json:"goal" binding:"required,max=200"`
	Timeframe string `json:"timeframe" binding:"omitempty,oneof=short medium long"`
}

// POST /api/recommendations/learning-path
func (h *LearningPathHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req createLearningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	path, err := h.svc.CreateLearningPath(c.Request.Context(), userID, req.Goal, req.Timeframe)
	if err != nil {
		h.log.Warn("create learning path failed", "user_id", userID, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"learning_path": normalizePath(path)})
}

// GET /api/recommendations/learning-paths
func (h *LearningPathHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	paths, err := h.svc.ListLearningPaths(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("list learning paths failed", "user_id", userID, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	out := make([]*types.LearningPath, 0, len(paths))
	for _, p := range paths {
		out = append(out, normalizePath(p))
	}
	response.RespondOK(c, gin.H{"learning_paths": out})
}

// GET /api/recommendations/learning-paths/:id
func (h *LearningPathHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	pathID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.GetLearningPath(c.Request.Context(), userID, pathID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"learning_path": normalizePath(path)})
}

// POST /api/recommendations/learning-paths/:id/items/:order/complete
func (h *LearningPathHandler) CompleteItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	pathID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	order, ok := intParam(c, "order")
	if !ok {
		return
	}
	if err := h.svc.CompleteLearningPathItem(c.Request.Context(), userID, pathID, order); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func normalizePath(p *types.LearningPath) *types.LearningPath {
	if p != nil && p.Items == nil {
		p.Items = []types.LearningPathItem{}
	}
	return p
}
