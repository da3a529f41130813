package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/modules/recommendation"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type RecommendationService interface {
	RecommendCourses(ctx context.Context, userID uuid.UUID, limit int) ([]recommendation.RecommendedItem, error)
	RecommendExercises(ctx context.Context, userID uuid.UUID, limit int) ([]recommendation.RecommendedItem, error)
	PersistRecommendations(ctx context.Context, userID uuid.UUID, items []recommendation.RecommendedItem) ([]*types.Recommendation, error)
	MarkRecommendation(ctx context.Context, userID, recID uuid.UUID, flag string) error
}

type RecommendationHandler struct {
	log *logger.Logger
	svc RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log: log.With("handler", "RecommendationHandler"),
		svc: svc,
	}
}

type recommendationResponse struct {
	Items []recommendation.RecommendedItem `json:"items"`
	// RecommendationIDs lines up with Items when persist=true.
	RecommendationIDs []uuid.UUID `json:"recommendation_ids,omitempty"`
}

// GET /api/recommendations/courses?limit=&persist=
func (h *RecommendationHandler) RecommendCourses(c *gin.Context) {
	h.recommend(c, "courses", h.svc.RecommendCourses)
}

// GET /api/recommendations/exercises?limit=&persist=
func (h *RecommendationHandler) RecommendExercises(c *gin.Context) {
	h.recommend(c, "exercises", h.svc.RecommendExercises)
}

func (h *RecommendationHandler) recommend(
	c *gin.Context,
	kind string,
	fn func(context.Context, uuid.UUID, int) ([]recommendation.RecommendedItem, error),
) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", recommendation.DefaultLimit)
	if !ok {
		return
	}
	items, err := fn(c.Request.Context(), userID, limit)
	if err != nil {
		h.log.Error("recommend failed", "kind", kind, "user_id", userID, "error", err)
		response.RespondDomainError(c, err)
		return
	}
	if items == nil {
		items = []recommendation.RecommendedItem{}
	}
	out := recommendationResponse{Items: items}
	if queryBool(c, "persist") && len(items) > 0 {
		recs, err := h.svc.PersistRecommendations(c.Request.Context(), userID, items)
		if err != nil {
			h.log.Error("persist recommendations failed", "kind", kind, "user_id", userID, "error", err)
			response.RespondDomainError(c, err)
			return
		}
		for _, r := range recs {
			out.RecommendationIDs = append(out.RecommendationIDs, r.ID)
		}
	}
	response.RespondOK(c, out)
}

// POST /api/recommendations/:id/viewed
func (h *RecommendationHandler) MarkViewed(c *gin.Context) {
	h.mark(c, "viewed")
}

// POST /api/recommendations/:id/clicked
func (h *RecommendationHandler) MarkClicked(c *gin.Context) {
	h.mark(c, "clicked")
}

func (h *RecommendationHandler) mark(c *gin.Context, flag string) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.MarkRecommendation(c.Request.Context(), userID, recID, flag); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
