package answer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/internal/util"
	"github.com/mailgraph/mailgraph/logging"
	"github.com/mailgraph/mailgraph/model"
)

const composeTemplate = `A query against the email database for the question below returned these raw records:
{{.records}}

User's original question:
{{.question}}

You are a database expert providing information about an email database.
Be as helpful as possible and return as much information as possible.
Do not answer any questions that do not relate to the email database, sender, or receiver.
Always include relevant IDs and dates provided in the context for reference.
Do not answer using your pre-trained knowledge, only use the information provided in the records.
Do not simply dump the full content; weave the metadata like IDs and timestamps into your answer.

Answer:`

// Options configure the composer.
type Options struct {
	Logger logging.Logger
}

// Composer asks the model to produce a narrative answer from raw records.
type Composer struct {
	model model.Model
	opts  Options
}

// NewComposer constructs a composer over the given model.
func NewComposer(m model.Model, optFns ...func(o *Options)) *Composer {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Composer{model: m, opts: opts}
}

// Compose renders the records into the prompt and returns the model's
// narrative. Callers must not pass an empty record set; the fallback path
// belongs to them.
func (c *Composer) Compose(ctx context.Context, question string, records core.RecordSet) (string, error) {
	if records.Empty() {
		return "", fmt.Errorf("compose: empty record set")
	}

	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("compose: marshal records: %w", err)
	}

	prompt, err := util.RenderTemplate(composeTemplate, map[string]any{
		"records":  string(raw),
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("compose: render prompt: %w", err)
	}

	out, err := c.model.Complete(ctx, model.UserRequest("", prompt))
	if err != nil {
		return "", fmt.Errorf("compose: %w", err)
	}

	c.opts.Logger.Debug("composed answer from records", "records", len(records))
	return out, nil
}
