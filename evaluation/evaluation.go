// Package evaluation scores a produced answer against its retrieved context
// for factual grounding. The evaluator contract mirrors the external scoring
// service: a table of named metrics with percentage scores, of which the
// "Overall Accuracy" row is mandatory. Score converts that percentage to a
// unit-interval float.
package evaluation

import (
	"context"
	"errors"
	"fmt"
)

// OverallAccuracy is the metric row Score depends on. Its absence from an
// evaluator report is a hard error with no defined recovery.
const OverallAccuracy = "Overall Accuracy"

// ErrMetricMissing signals that the evaluator's report lacks the mandatory
// Overall Accuracy row.
var ErrMetricMissing = errors.New("overall accuracy metric missing from evaluation report")

// Metric is one named score reported by an evaluator, as a percentage.
type Metric struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// Report is the ordered metric table returned by an evaluator.
type Report struct {
	Metrics []Metric `json:"metrics"`
}

// Accuracy extracts the Overall Accuracy row and converts the percentage to
// a float in [0,1]. Percentages outside [0,100] are rejected.
func (r *Report) Accuracy() (float64, error) {
	for _, m := range r.Metrics {
		if m.Name != OverallAccuracy {
			continue
		}
		if m.Percent < 0 || m.Percent > 100 {
			return 0, fmt.Errorf("overall accuracy %.2f%% outside [0,100]", m.Percent)
		}
		return m.Percent / 100.0, nil
	}
	return 0, ErrMetricMissing
}

// Evaluator produces a metric report for an answer given the question and
// the retrieved context it was grounded on.
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer, context string) (*Report, error)
}

// Service wraps an Evaluator behind the single Score operation the pipeline
// consumes.
type Service struct {
	evaluator Evaluator
}

// NewService constructs the scoring service.
func NewService(e Evaluator) *Service {
	return &Service{evaluator: e}
}

// Score evaluates the answer and returns its overall accuracy in [0,1].
// A missing metric row or evaluator failure is returned as an error; the
// answer itself remains usable to the caller.
func (s *Service) Score(ctx context.Context, question, answer, context string) (float64, error) {
	report, err := s.evaluator.Evaluate(ctx, question, answer, context)
	if err != nil {
		return 0, fmt.Errorf("evaluate answer: %w", err)
	}
	return report.Accuracy()
}
