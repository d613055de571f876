package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/mailgraph/mailgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `| Metric | Score (%) |
|---|---|
| Relevance | 95 |
| Groundedness | 92.5 |
| Completeness | 90% |
| Overall Accuracy | 93 |`

func TestParseReport(t *testing.T) {
	report := ParseReport(sampleTable)
	require.Len(t, report.Metrics, 4)
	assert.Equal(t, Metric{Name: "Relevance", Percent: 95}, report.Metrics[0])
	assert.Equal(t, Metric{Name: "Groundedness", Percent: 92.5}, report.Metrics[1])
	assert.Equal(t, Metric{Name: "Completeness", Percent: 90}, report.Metrics[2])
	assert.Equal(t, Metric{Name: OverallAccuracy, Percent: 93}, report.Metrics[3])
}

func TestParseReportIgnoresSurroundingProse(t *testing.T) {
	out := "Here is my grading:\n\n" + sampleTable + "\n\nLet me know if you need more detail."
	report := ParseReport(out)
	assert.Len(t, report.Metrics, 4)
}

func TestParseReportSkipsUnparsableRows(t *testing.T) {
	out := `| Metric | Score (%) |
|---|---|
| Relevance | high |
| Overall Accuracy | 80 |`

	report := ParseReport(out)
	require.Len(t, report.Metrics, 1)
	assert.Equal(t, OverallAccuracy, report.Metrics[0].Name)
}

func TestParseReportNoTable(t *testing.T) {
	report := ParseReport("I cannot grade this answer.")
	assert.Empty(t, report.Metrics)
}

func TestReportAccuracy(t *testing.T) {
	report := ParseReport(sampleTable)
	accuracy, err := report.Accuracy()
	require.NoError(t, err)
	assert.InDelta(t, 0.93, accuracy, 1e-9)
}

func TestReportAccuracyBounds(t *testing.T) {
	for _, pct := range []float64{0, 100} {
		report := &Report{Metrics: []Metric{{Name: OverallAccuracy, Percent: pct}}}
		accuracy, err := report.Accuracy()
		require.NoError(t, err)
		assert.InDelta(t, pct/100, accuracy, 1e-9)
	}
	for _, pct := range []float64{-1, 100.5, 250} {
		report := &Report{Metrics: []Metric{{Name: OverallAccuracy, Percent: pct}}}
		_, err := report.Accuracy()
		assert.Error(t, err, "percent: %v", pct)
	}
}

func TestReportAccuracyMissingMetric(t *testing.T) {
	report := &Report{Metrics: []Metric{{Name: "Relevance", Percent: 90}}}
	_, err := report.Accuracy()
	assert.ErrorIs(t, err, ErrMetricMissing)
}

func TestLLMEvaluatorEvaluate(t *testing.T) {
	mock := model.NewMockModel("grader")
	mock.Enqueue(sampleTable)

	eval := NewLLMEvaluator(mock)
	report, err := eval.Evaluate(context.Background(), "who?", "Alice.", "Alice sent it.")
	require.NoError(t, err)
	assert.Len(t, report.Metrics, 4)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[0].Content
	assert.Contains(t, prompt, "who?")
	assert.Contains(t, prompt, "Alice.")
	assert.Contains(t, prompt, "Alice sent it.")
}

func TestServiceScore(t *testing.T) {
	mock := model.NewMockModel("grader")
	mock.Enqueue(sampleTable)

	svc := NewService(NewLLMEvaluator(mock))
	accuracy, err := svc.Score(context.Background(), "q", "a", "ctx")
	require.NoError(t, err)
	assert.InDelta(t, 0.93, accuracy, 1e-9)
}

func TestServiceScoreMissingMetric(t *testing.T) {
	mock := model.NewMockModel("grader")
	mock.Enqueue("no table here")

	svc := NewService(NewLLMEvaluator(mock))
	_, err := svc.Score(context.Background(), "q", "a", "ctx")
	assert.ErrorIs(t, err, ErrMetricMissing)
}

func TestServiceScoreEvaluatorFailure(t *testing.T) {
	mock := model.NewMockModel("grader")
	mock.Fail(errors.New("grader down"))

	svc := NewService(NewLLMEvaluator(mock))
	_, err := svc.Score(context.Background(), "q", "a", "ctx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluate answer")
}
