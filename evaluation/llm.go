package evaluation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mailgraph/mailgraph/internal/util"
	"github.com/mailgraph/mailgraph/model"
)

const gradeTemplate = `You are grading an assistant's answer for factual grounding against the retrieved context.

Question:
{{.question}}

Answer:
{{.answer}}

Retrieved context:
{{.context}}

Score each metric from 0 to 100 based only on how well the answer is supported by the retrieved context. Respond with exactly this markdown table and nothing else:

| Metric | Score (%) |
|---|---|
| Relevance | <score> |
| Groundedness | <score> |
| Completeness | <score> |
| Overall Accuracy | <score> |`

// LLMEvaluator grades answers with a separate scoring prompt and parses the
// metric table out of the completion.
type LLMEvaluator struct {
	model model.Model
}

// NewLLMEvaluator constructs an evaluator over the given model. The grading
// model may differ from the one that produced the answer.
func NewLLMEvaluator(m model.Model) *LLMEvaluator {
	return &LLMEvaluator{model: m}
}

// Evaluate implements Evaluator.
func (e *LLMEvaluator) Evaluate(ctx context.Context, question, answer, retrievedContext string) (*Report, error) {
	prompt, err := util.RenderTemplate(gradeTemplate, map[string]any{
		"question": question,
		"answer":   answer,
		"context":  retrievedContext,
	})
	if err != nil {
		return nil, fmt.Errorf("render grading prompt: %w", err)
	}

	out, err := e.model.Complete(ctx, model.UserRequest("", prompt))
	if err != nil {
		return nil, fmt.Errorf("grading completion: %w", err)
	}
	return ParseReport(out), nil
}

// ParseReport extracts metric rows from a markdown table. Rows that do not
// parse as "| name | percent |" are skipped, so a missing Overall Accuracy
// row surfaces later via Report.Accuracy.
func ParseReport(out string) *Report {
	report := &Report{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		if len(cells) < 2 {
			continue
		}
		name := strings.TrimSpace(cells[0])
		if name == "" || name == "Metric" || strings.HasPrefix(name, "---") || strings.Trim(name, "-") == "" {
			continue
		}
		pct, err := parsePercent(cells[1])
		if err != nil {
			continue
		}
		report.Metrics = append(report.Metrics, Metric{Name: name, Percent: pct})
	}
	return report
}

func parsePercent(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	return strconv.ParseFloat(s, 64)
}
