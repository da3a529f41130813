package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
	"github.com/yungbote/learnpath-backend/internal/modules/recommendation"
)

func recommendationRouter(t *testing.T, userID uuid.UUID, svc RecommendationService) http.Handler {
	h := NewRecommendationHandler(newTestLogger(t), svc)
	r := newTestRouter(userID)
	r.GET("/recommendations/courses", h.RecommendCourses)
	r.GET("/recommendations/exercises", h.RecommendExercises)
	r.POST("/recommendations/:id/viewed", h.MarkViewed)
	r.POST("/recommendations/:id/clicked", h.MarkClicked)
	return r
}

func TestRecommendCoursesHandler(t *testing.T) {
	svc := &fakeRecommendations{items: []recommendation.RecommendedItem{
		{ItemID: uuid.New(), ItemType: "course", Score: 2, Reason: "matches your interest in go (category)"},
		{ItemID: uuid.New(), ItemType: "course", Score: 1},
	}}
	r := recommendationRouter(t, uuid.New(), svc)

	rec := do(t, r, http.MethodGet, "/recommendations/courses?limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.gotLimit != 2 {
		t.Fatalf("limit: want=2 got=%d", svc.gotLimit)
	}
	var body recommendationResponse
	decode(t, rec, &body)
	if len(body.Items) != 2 || body.Items[0].Score != 2 {
		t.Fatalf("unexpected items: %+v", body.Items)
	}
	if len(body.RecommendationIDs) != 0 || svc.persisted != 0 {
		t.Fatalf("nothing should be persisted without persist=true")
	}
}

func TestRecommendPersistReturnsIDs(t *testing.T) {
	svc := &fakeRecommendations{items: []recommendation.RecommendedItem{{ItemID: uuid.New(), ItemType: "exercise", Score: 1}}}
	r := recommendationRouter(t, uuid.New(), svc)

	rec := do(t, r, http.MethodGet, "/recommendations/exercises?persist=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	if svc.gotLimit != recommendation.DefaultLimit {
		t.Fatalf("default limit: want=%d got=%d", recommendation.DefaultLimit, svc.gotLimit)
	}
	var body recommendationResponse
	decode(t, rec, &body)
	if len(body.RecommendationIDs) != 1 || svc.persisted != 1 {
		t.Fatalf("expected one persisted id, got %+v", body.RecommendationIDs)
	}
}

func TestRecommendEmptyListIsArray(t *testing.T) {
	r := recommendationRouter(t, uuid.New(), &fakeRecommendations{})
	rec := do(t, r, http.MethodGet, "/recommendations/courses", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"items":[]}` {
		t.Fatalf("body: got=%s", got)
	}
}

func TestRecommendRejects(t *testing.T) {
	svc := &fakeRecommendations{}
	if rec := do(t, recommendationRouter(t, uuid.Nil, svc), http.MethodGet, "/recommendations/courses", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: want=401 got=%d", rec.Code)
	}
	if rec := do(t, recommendationRouter(t, uuid.New(), svc), http.MethodGet, "/recommendations/courses?limit=ten", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: want=400 got=%d", rec.Code)
	}
}

func TestMarkRecommendationHandler(t *testing.T) {
	svc := &fakeRecommendations{}
	r := recommendationRouter(t, uuid.New(), svc)

	if rec := do(t, r, http.MethodPost, "/recommendations/"+uuid.NewString()+"/viewed", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("viewed: want=204 got=%d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/recommendations/"+uuid.NewString()+"/clicked", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("clicked: want=204 got=%d", rec.Code)
	}
	if len(svc.marked) != 2 || svc.marked[0] != "viewed" || svc.marked[1] != "clicked" {
		t.Fatalf("flags: got=%v", svc.marked)
	}
	if rec := do(t, r, http.MethodPost, "/recommendations/nope/viewed", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: want=400 got=%d", rec.Code)
	}

	svc.markErr = domainagg.NotFound("test", "recommendation missing")
	if rec := do(t, r, http.MethodPost, "/recommendations/"+uuid.NewString()+"/viewed", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing: want=404 got=%d", rec.Code)
	}
}
