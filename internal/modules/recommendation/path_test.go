package recommendation

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/learnpath-backend/internal/domain"
	domainagg "github.com/yungbote/learnpath-backend/internal/domain/aggregates"
)

func TestTimeframeWeeks(t *testing.T) {
	cases := map[string]int{
		"short":  4,
		"medium": 12,
		"long":   24,
		" LONG ": 24,
		"":       12,
		"decade": 12,
	}
	for in, want := range cases {
		if got := TimeframeWeeks(in); got != want {
			t.Fatalf("TimeframeWeeks(%q): want=%d got=%d", in, want, got)
		}
	}
}

func pathCatalog() (*fakeCatalog, map[string][]*types.Course) {
	byTier := map[string][]*types.Course{}
	var all []*types.Course
	// Interleave tiers so the partition has to keep query order per tier.
	for i := 0; i < 3; i++ {
		for _, d := range []string{"advanced", "beginner", "intermediate"} {
			c := course(fmt.Sprintf("%s web %d", d, i), d, "Web Development")
			byTier[d] = append(byTier[d], c)
			all = append(all, c)
		}
	}
	all = append(all, course("cooking", "beginner", "Food"))
	return &fakeCatalog{courses: all}, byTier
}

func assertDenseOrder(t *testing.T, items []types.LearningPathItem) {
	t.Helper()
	for i, it := range items {
		if it.Order != i {
			t.Fatalf("order at %d: got %d (%+v)", i, it.Order, items)
		}
		if it.Completed {
			t.Fatalf("new path item %d should not be completed", i)
		}
		if it.ItemType != "course" {
			t.Fatalf("item type: got %q", it.ItemType)
		}
	}
}

func TestSynthesizeShortIsBeginnerOnly(t *testing.T) {
	cat, byTier := pathCatalog()
	uc := New(UsecasesDeps{Catalog: cat})
	path, err := uc.SynthesizeLearningPath(context.Background(), uuid.New(), "web", "short")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if path.EstimatedDuration != 4 || len(path.Items) != 2 {
		t.Fatalf("short path: weeks=%d items=%d", path.EstimatedDuration, len(path.Items))
	}
	assertDenseOrder(t, path.Items)
	for i, it := range path.Items {
		if it.ItemID != byTier["beginner"][i].ID {
			t.Fatalf("item %d should be beginner #%d", i, i)
		}
		if it.EstimatedTime != 120 {
			t.Fatalf("beginner default time: got %d", it.EstimatedTime)
		}
	}
}

func TestSynthesizeMediumAddsIntermediate(t *testing.T) {
	cat, byTier := pathCatalog()
	uc := New(UsecasesDeps{Catalog: cat})
	path, err := uc.SynthesizeLearningPath(context.Background(), uuid.New(), "WEB", "medium")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if path.EstimatedDuration != 12 || len(path.Items) != 4 {
		t.Fatalf("medium path: weeks=%d items=%d", path.EstimatedDuration, len(path.Items))
	}
	assertDenseOrder(t, path.Items)
	if path.Items[2].ItemID != byTier["intermediate"][0].ID || path.Items[3].EstimatedTime != 180 {
		t.Fatalf("intermediate tier misplaced: %+v", path.Items)
	}
}

func TestSynthesizeLongCapsEachTierAtTwo(t *testing.T) {
	cat, byTier := pathCatalog()
	uc := New(UsecasesDeps{Catalog: cat})
	path, err := uc.SynthesizeLearningPath(context.Background(), uuid.New(), "web", "long")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(path.Items) != 6 {
		t.Fatalf("long path: want 6 items, got %d", len(path.Items))
	}
	assertDenseOrder(t, path.Items)
	want := []uuid.UUID{
		byTier["beginner"][0].ID, byTier["beginner"][1].ID,
		byTier["intermediate"][0].ID, byTier["intermediate"][1].ID,
		byTier["advanced"][0].ID, byTier["advanced"][1].ID,
	}
	for i, id := range want {
		if path.Items[i].ItemID != id {
			t.Fatalf("item %d: unexpected course", i)
		}
	}
	if path.Items[5].EstimatedTime != 240 {
		t.Fatalf("advanced default time: got %d", path.Items[5].EstimatedTime)
	}
}

func TestSynthesizeUsesCourseDuration(t *testing.T) {
	d := 95
	c := course("Rust for web", "beginner", "Systems")
	c.EstimatedDuration = &d
	uc := New(UsecasesDeps{Catalog: &fakeCatalog{courses: []*types.Course{c}}})
	path, err := uc.SynthesizeLearningPath(context.Background(), uuid.New(), "rust", "")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(path.Items) != 1 || path.Items[0].EstimatedTime != 95 {
		t.Fatalf("want course duration 95, got %+v", path.Items)
	}
}

func TestSynthesizeNoMatchIsEmptyPath(t *testing.T) {
	cat, _ := pathCatalog()
	userID := uuid.New()
	uc := New(UsecasesDeps{Catalog: cat})
	path, err := uc.SynthesizeLearningPath(context.Background(), userID, "quantum basket weaving", "long")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if path == nil || path.Items == nil || len(path.Items) != 0 {
		t.Fatalf("want empty non-nil items, got %+v", path)
	}
	if path.UserID != userID || path.Goal != "quantum basket weaving" || path.EstimatedDuration != 24 {
		t.Fatalf("path header: %+v", path)
	}
}

func TestSynthesizeRequiresGoal(t *testing.T) {
	uc := New(UsecasesDeps{Catalog: &fakeCatalog{}})
	_, err := uc.SynthesizeLearningPath(context.Background(), uuid.New(), "   ", "short")
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}
