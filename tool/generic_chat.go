package tool

import (
	"context"

	"github.com/mailgraph/mailgraph/model"
)

// GenericChat is the last-resort capability: a direct completion with the
// database-expert instructions and no retrieval.
type GenericChat struct {
	model model.Model
}

// NewGenericChat wires a model into the fallback chat capability.
func NewGenericChat(m model.Model) *GenericChat {
	return &GenericChat{model: m}
}

// Name implements Tool.
func (t *GenericChat) Name() string { return NameGenericChat }

// Description implements Tool.
func (t *GenericChat) Description() string {
	return "Fallback chat when no other capability applies."
}

// Call implements Tool.
func (t *GenericChat) Call(ctx context.Context, input string) (string, error) {
	return t.model.Complete(ctx, model.UserRequest(SystemInstructions, input))
}
