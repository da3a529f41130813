package recommendation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Weights are the scoring constants. Zero-config deployments use DefaultWeights.
type Weights struct {
	Base               float64 `yaml:"base"`
	LearningStyleMatch float64 `yaml:"learning_style_match"`
	CategoryMatch      float64 `yaml:"category_match"`
	TagMatch           float64 `yaml:"tag_match"`
	TopicMatch         float64 `yaml:"topic_match"`
	InProgressPenalty  float64 `yaml:"in_progress_penalty"`
}

func DefaultWeights() Weights {
	return Weights{
		Base:               0.5,
		LearningStyleMatch: 0.5,
		CategoryMatch:      1.0,
		TagMatch:           1.0,
		TopicMatch:         1.0,
		InProgressPenalty:  0.7,
	}
}

// Validate keeps scores non-negative: every bonus must be >= 0 and the
// in-progress multiplier must lie in [0, 1].
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"base":                 w.Base,
		"learning_style_match": w.LearningStyleMatch,
		"category_match":       w.CategoryMatch,
		"tag_match":            w.TagMatch,
		"topic_match":          w.TopicMatch,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s must be >= 0, got %v", name, v)
		}
	}
	if w.InProgressPenalty < 0 || w.InProgressPenalty > 1 {
		return fmt.Errorf("weight in_progress_penalty must be within [0,1], got %v", w.InProgressPenalty)
	}
	return nil
}

// LoadWeights reads a YAML override file. Keys missing from the file keep
// their default value; an empty path returns the defaults.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	path = strings.TrimSpace(path)
	if path == "" {
		return w, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read scoring weights: %w", err)
	}
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return DefaultWeights(), fmt.Errorf("parse scoring weights %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return DefaultWeights(), fmt.Errorf("scoring weights %s: %w", path, err)
	}
	return w, nil
}
