package recommendation

import (
	"fmt"
	"strings"

	types "github.com/yungbote/learnpath-backend/internal/domain"
)

// Score is one scored candidate. Value is unbounded and >= 0 for valid weights.
type Score struct {
	Value  float64
	Reason string
}

// Scorer is the rule-based relevance function. It is pure: the same profile,
// candidate and history always produce the same Score.
type Scorer struct {
	w Weights
}

func NewScorer(w Weights) Scorer { return Scorer{w: w} }

func (s Scorer) Weights() Weights { return s.w }

// ScoreCourse adds one style bonus per matching content item across all
// modules, and per interest independent category and tag bonuses. The sum is
// scaled by the in-progress penalty when the user already started the course.
func (s Scorer) ScoreCourse(u *types.User, c *types.Course, inProgress bool) Score {
	if c == nil {
		return Score{}
	}
	score := s.w.Base
	var reasons []string

	style := profileStyle(u)
	if style != "" {
		matched := 0
		for _, m := range c.Modules {
			for _, item := range m.ContentItems {
				if item.LearningStyle == style {
					matched++
				}
			}
		}
		if matched > 0 {
			score += float64(matched) * s.w.LearningStyleMatch
			reasons = append(reasons, styleReason(matched, style))
		}
	}

	category := strings.ToLower(c.Category)
	for _, interest := range profileInterests(u) {
		var via []string
		if category != "" && strings.Contains(category, interest) {
			score += s.w.CategoryMatch
			via = append(via, "category")
		}
		if hasTag(c.Tags, interest) {
			score += s.w.TagMatch
			via = append(via, "tag")
		}
		if len(via) > 0 {
			reasons = append(reasons, fmt.Sprintf("matches your interest in %s (%s)", interest, strings.Join(via, ", ")))
		}
	}

	if inProgress {
		score *= s.w.InProgressPenalty
		reasons = append(reasons, "continue where you left off")
	}
	return Score{Value: score, Reason: joinReasons(reasons, c.Difficulty)}
}

// ScoreExercise grants the topic bonus once, on the first interest that is a
// substring of the topic.
func (s Scorer) ScoreExercise(u *types.User, e *types.Exercise) Score {
	if e == nil {
		return Score{}
	}
	score := s.w.Base
	var reasons []string
	topic := strings.ToLower(e.Topic)
	if topic != "" {
		for _, interest := range profileInterests(u) {
			if strings.Contains(topic, interest) {
				score += s.w.TopicMatch
				reasons = append(reasons, fmt.Sprintf("matches your interest in %s", interest))
				break
			}
		}
	}
	return Score{Value: score, Reason: joinReasons(reasons, e.Difficulty)}
}

func profileStyle(u *types.User) string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.LearningStyle)
}

// profileInterests lowercases and drops blank interests; a blank needle would
// otherwise match every category.
func profileInterests(u *types.User) []string {
	if u == nil || len(u.Interests) == 0 {
		return nil
	}
	out := make([]string, 0, len(u.Interests))
	for _, raw := range u.Interests {
		if v := strings.ToLower(strings.TrimSpace(raw)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func hasTag(tags []string, interest string) bool {
	for _, tag := range tags {
		if strings.ToLower(strings.TrimSpace(tag)) == interest {
			return true
		}
	}
	return false
}

func styleReason(n int, style string) string {
	if n == 1 {
		return fmt.Sprintf("1 item matches your %s learning style", style)
	}
	return fmt.Sprintf("%d items match your %s learning style", n, style)
}

func joinReasons(reasons []string, difficulty string) string {
	if len(reasons) > 0 {
		return strings.Join(reasons, "; ")
	}
	if d := strings.TrimSpace(difficulty); d != "" {
		return "popular in " + d
	}
	return "recommended for you"
}
