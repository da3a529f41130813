package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
	"github.com/yungbote/learnpath-backend/internal/modules/progress"
	"github.com/yungbote/learnpath-backend/internal/modules/recommendation"
	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

// newTestRouter authenticates every request as userID; uuid.Nil leaves it anonymous.
func newTestRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

type fakeRecommendations struct {
	items     []recommendation.RecommendedItem
	err       error
	gotLimit  int
	persisted int
	marked    []string
	markErr   error
}

func (f *fakeRecommendations) RecommendCourses(_ context.Context, _ uuid.UUID, limit int) ([]recommendation.RecommendedItem, error) {
	f.gotLimit = limit
	return f.items, f.err
}

func (f *fakeRecommendations) RecommendExercises(_ context.Context, _ uuid.UUID, limit int) ([]recommendation.RecommendedItem, error) {
	f.gotLimit = limit
	return f.items, f.err
}

func (f *fakeRecommendations) PersistRecommendations(_ context.Context, userID uuid.UUID, items []recommendation.RecommendedItem) ([]*types.Recommendation, error) {
	f.persisted += len(items)
	out := make([]*types.Recommendation, 0, len(items))
	for _, it := range items {
		out = append(out, &types.Recommendation{ID: uuid.New(), UserID: userID, ItemID: it.ItemID, ItemType: it.ItemType})
	}
	return out, nil
}

func (f *fakeRecommendations) MarkRecommendation(_ context.Context, _, _ uuid.UUID, flag string) error {
	f.marked = append(f.marked, flag)
	return f.markErr
}

type fakePaths struct {
	path        *types.LearningPath
	paths       []*types.LearningPath
	err         error
	gotGoal     string
	gotTime     string
	completed   []int
	completeErr error
}

func (f *fakePaths) CreateLearningPath(_ context.Context, userID uuid.UUID, goal, timeframe string) (*types.LearningPath, error) {
	f.gotGoal, f.gotTime = goal, timeframe
	if f.err != nil {
		return nil, f.err
	}
	return &types.LearningPath{ID: uuid.New(), UserID: userID, Goal: goal, Timeframe: timeframe}, nil
}

func (f *fakePaths) ListLearningPaths(context.Context, uuid.UUID) ([]*types.LearningPath, error) {
	return f.paths, f.err
}

func (f *fakePaths) GetLearningPath(context.Context, uuid.UUID, uuid.UUID) (*types.LearningPath, error) {
	return f.path, f.err
}

func (f *fakePaths) CompleteLearningPathItem(_ context.Context, _, _ uuid.UUID, order int) error {
	f.completed = append(f.completed, order)
	return f.completeErr
}

type fakeProgress struct {
	lastUpdate progress.ContentUpdate
	lastTime   int64
	result     domainagg.ApplyContentUpdateResult
	err        error
	summaries  []progress.CourseSummary
	next       *progress.NextContent
}

func (f *fakeProgress) UpdateContentProgress(_ context.Context, in progress.ContentUpdate) (domainagg.ApplyContentUpdateResult, error) {
	f.lastUpdate = in
	return f.result, f.err
}

func (f *fakeProgress) RecordCourseTime(_ context.Context, _, _ uuid.UUID, seconds int64) (domainagg.ApplyContentUpdateResult, error) {
	f.lastTime = seconds
	return f.result, f.err
}

func (f *fakeProgress) ListCourseProgress(context.Context, uuid.UUID) ([]progress.CourseSummary, error) {
	return f.summaries, f.err
}

func (f *fakeProgress) NextContent(context.Context, uuid.UUID, uuid.UUID) (*progress.NextContent, error) {
	return f.next, f.err
}
