package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/modules/progress"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type ProgressService interface {
	UpdateContentProgress(ctx context.Context, in progress.ContentUpdate) (domainagg.ApplyContentUpdateResult, error)
	RecordCourseTime(ctx context.Context, userID, courseID uuid.UUID, seconds int64) (domainagg.ApplyContentUpdateResult, error)
	ListCourseProgress(ctx context.Context, userID uuid.UUID) ([]progress.CourseSummary, error)
	NextContent(ctx context.Context, userID, courseID uuid.UUID) (*progress.NextContent, error)
}

type ProgressHandler struct {
	log *logger.Logger
	svc ProgressService
}

func NewProgressHandler(log *logger.Logger, svc ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log: log.With("handler", "ProgressHandler"),
		svc: svc,
	}
}

type contentProgressRequest struct {
	Viewed    *bool  `json:"viewed"`
	Completed *bool  `json:"completed"`
	TimeSpent *int64 `json:"time_spent" binding:"omitempty,min=0"`
}

// POST /api/progress/content/:course_id/:module_order/:content_order
func (h *ProgressHandler) UpdateContent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	courseID, ok := uuidParam(c, "course_id")
	if !ok {
		return
	}
	moduleOrder, ok := intParam(c, "module_order")
	if !ok {
		return
	}
	contentOrder, ok := intParam(c, "content_order")
	if !ok {
		return
	}
	var req contentProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.svc.UpdateContentProgress(c.Request.Context(), progress.ContentUpdate{
		UserID:       userID,
		CourseID:     courseID,
		ModuleOrder:  moduleOrder,
		ContentOrder: contentOrder,
		Viewed:       req.Viewed,
		Completed:    req.Completed,
		TimeSpent:    req.TimeSpent,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": res})
}

type courseTimeRequest struct {
	TimeSpent int64 `json:"time_spent" binding:"min=0"`
}

// POST /api/progress/courses/:course_id/time
func (h *ProgressHandler) RecordCourseTime(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	courseID, ok := uuidParam(c, "course_id")
	if !ok {
		return
	}
	var req courseTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.svc.RecordCourseTime(c.Request.Context(), userID, courseID, req.TimeSpent)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": res})
}

// GET /api/progress/courses
func (h *ProgressHandler) ListCourses(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rows, err := h.svc.ListCourseProgress(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("list course progress failed", "user_id", userID, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	if rows == nil {
		rows = []progress.CourseSummary{}
	}
	response.RespondOK(c, gin.H{"courses": rows})
}

// GET /api/progress/courses/:course_id/next
func (h *ProgressHandler) NextContent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	courseID, ok := uuidParam(c, "course_id")
	if !ok {
		return
	}
	next, err := h.svc.NextContent(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"next": next, "course_completed": next == nil})
}
