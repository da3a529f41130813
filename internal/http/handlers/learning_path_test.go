package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
)

func learningPathRouter(t *testing.T, svc LearningPathService) http.Handler {
	h := NewLearningPathHandler(newTestLogger(t), svc)
	r := newTestRouter(uuid.New())
	r.POST("/recommendations/learning-path", h.Create)
	r.GET("/recommendations/learning-paths", h.List)
	r.GET("/recommendations/learning-paths/:id", h.Get)
	r.POST("/recommendations/learning-paths/:id/items/:order/complete", h.CompleteItem)
	return r
}

func TestCreateLearningPathHandler(t *testing.T) {
	svc := &fakePaths{}
	r := learningPathRouter(t, svc)

	rec := do(t, r, http.MethodPost, "/recommendations/learning-path", map[string]string{"goal": "go", "timeframe": "short"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: want=201 got=%d body=%s", rec.Code, rec.Body.String())
	}
	if svc.gotGoal != "go" || svc.gotTime != "short" {
		t.Fatalf("forwarded args: goal=%q timeframe=%q", svc.gotGoal, svc.gotTime)
	}
	var body struct {
		LearningPath types.LearningPath `json:"learning_path"`
	}
	decode(t, rec, &body)
	if body.LearningPath.Items == nil {
		t.Fatalf("items should serialize as an empty array")
	}
}

func TestCreateLearningPathValidation(t *testing.T) {
	r := learningPathRouter(t, &fakePaths{})
	cases := map[string]any{
		"missing goal":  map[string]string{"timeframe": "short"},
		"bad timeframe": map[string]string{"goal": "go", "timeframe": "forever"},
		"not json":      "goal=go",
	}
	for name, body := range cases {
		if rec := do(t, r, http.MethodPost, "/recommendations/learning-path", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: want=400 got=%d", name, rec.Code)
		}
	}

	svc := &fakePaths{err: domainagg.Validation("test", "goal is required")}
	rec := do(t, learningPathRouter(t, svc), http.MethodPost, "/recommendations/learning-path", map[string]string{"goal": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank goal from service: want=400 got=%d", rec.Code)
	}
}

func TestGetAndListLearningPaths(t *testing.T) {
	id := uuid.New()
	svc := &fakePaths{
		path:  &types.LearningPath{ID: id, Goal: "go"},
		paths: []*types.LearningPath{{ID: id, Goal: "go"}},
	}
	r := learningPathRouter(t, svc)

	if rec := do(t, r, http.MethodGet, "/recommendations/learning-paths/"+id.String(), nil); rec.Code != http.StatusOK {
		t.Fatalf("get: want=200 got=%d", rec.Code)
	}
	rec := do(t, r, http.MethodGet, "/recommendations/learning-paths", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: want=200 got=%d", rec.Code)
	}
	var body struct {
		LearningPaths []types.LearningPath `json:"learning_paths"`
	}
	decode(t, rec, &body)
	if len(body.LearningPaths) != 1 || body.LearningPaths[0].ID != id {
		t.Fatalf("unexpected list: %+v", body.LearningPaths)
	}

	svc.err = domainagg.NotFound("test", "no such path")
	if rec := do(t, r, http.MethodGet, "/recommendations/learning-paths/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing: want=404 got=%d", rec.Code)
	}
}

func TestCompleteLearningPathItemHandler(t *testing.T) {
	svc := &fakePaths{}
	r := learningPathRouter(t, svc)
	base := "/recommendations/learning-paths/" + uuid.NewString() + "/items/"

	if rec := do(t, r, http.MethodPost, base+"2/complete", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("complete: want=204 got=%d", rec.Code)
	}
	if len(svc.completed) != 1 || svc.completed[0] != 2 {
		t.Fatalf("order: got=%v", svc.completed)
	}
	if rec := do(t, r, http.MethodPost, base+"two/complete", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad order: want=400 got=%d", rec.Code)
	}
	svc.completeErr = domainagg.NotFound("test", "no item")
	if rec := do(t, r, http.MethodPost, base+"9/complete", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing item: want=404 got=%d", rec.Code)
	}
}
