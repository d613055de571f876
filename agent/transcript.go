package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/internal/util"
	"github.com/mailgraph/mailgraph/tool"
)

const reactTemplate = `You are a database expert providing information about an email database.
Be as helpful as possible and return as much information as possible.
Do not answer any questions that do not relate to the email database, sender, or receiver.
Always include relevant IDs and dates provided in the context for reference.
Do not answer any questions using your pre-trained knowledge, only use the information provided in the context.

TOOLS:
------
You have access to the following tools:

{{.tools}}

Context:
{{.context}}

To use a tool, please use the following format:
Thought: Do I need to use a tool? Yes
Action: one of [{{.toolNames}}]
Action Input: the input to the action
Observation: the result of the action

Tool usage rules:
1. Always try "StructuredQuery" first.
2. If that yields no result, use "SemanticSearch".
3. Use "GenericChat" only if neither tool helps.

When you have the final answer (or decide no tool is needed), use:
Thought: Do I need to use a tool? No
Final Answer: [your response here]

Conversation history:
{{.history}}

New question: {{.input}}
{{.scratchpad}}`

const finalAnswerMarker = "Final Answer:"

var (
	actionRe      = regexp.MustCompile(`(?m)^\s*Action\s*:\s*(.+?)\s*$`)
	actionInputRe = regexp.MustCompile(`(?m)^\s*Action\s+Input\s*:\s*(.*?)\s*$`)
)

// decision is one parsed model output: either a capability invocation or a
// final answer.
type decision struct {
	Action string
	Input  string
	Final  bool
	Answer string
}

// ParseError reports model output that matches neither the tool invocation
// format nor the final answer format.
type ParseError struct {
	Output string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed reasoning output: %q", truncate(e.Output, 120))
}

// parseDecision extracts the next decision from raw model output. A final
// answer takes precedence over a trailing action block so a model that emits
// both still terminates.
func parseDecision(out string) (decision, error) {
	if idx := strings.Index(out, finalAnswerMarker); idx >= 0 {
		answer := strings.TrimSpace(out[idx+len(finalAnswerMarker):])
		return decision{Final: true, Answer: answer}, nil
	}

	action := actionRe.FindStringSubmatch(out)
	input := actionInputRe.FindStringSubmatch(out)
	if action == nil || input == nil {
		return decision{}, &ParseError{Output: out}
	}
	return decision{
		Action: strings.Trim(action[1], `"' `),
		Input:  strings.TrimSpace(input[1]),
	}, nil
}

// transcript accumulates the working memory of one question: the static
// prompt preamble plus the growing Thought/Action/Observation scratchpad.
type transcript struct {
	tools      []tool.Tool
	context    string
	history    []core.Turn
	question   string
	scratchpad strings.Builder
}

func newTranscript(tools []tool.Tool, context string, history []core.Turn, question string) *transcript {
	return &transcript{tools: tools, context: context, history: history, question: question}
}

// prompt renders the full transcript for the next model call.
func (t *transcript) prompt() (string, error) {
	names := make([]string, 0, len(t.tools))
	lines := make([]string, 0, len(t.tools))
	for _, tl := range t.tools {
		names = append(names, tl.Name())
		lines = append(lines, fmt.Sprintf("%s: %s", tl.Name(), tl.Description()))
	}

	context := t.context
	if context == "" {
		context = "(no retrieved context)"
	}

	return util.RenderTemplate(reactTemplate, map[string]any{
		"tools":      strings.Join(lines, "\n"),
		"toolNames":  strings.Join(names, ", "),
		"context":    context,
		"history":    renderHistory(t.history),
		"input":      t.question,
		"scratchpad": t.scratchpad.String(),
	})
}

// appendStep records a completed capability invocation.
func (t *transcript) appendStep(action, input, observation string) {
	fmt.Fprintf(&t.scratchpad,
		"Thought: Do I need to use a tool? Yes\nAction: %s\nAction Input: %s\nObservation: %s\n",
		action, input, observation)
}

// appendParseError feeds the malformed output back with a corrective
// observation so the model can retry in the expected format.
func (t *transcript) appendParseError(raw string) {
	fmt.Fprintf(&t.scratchpad,
		"%s\nObservation: Invalid format. Provide 'Action:' and 'Action Input:' lines, or 'Final Answer:'.\n",
		strings.TrimSpace(raw))
}

func renderHistory(turns []core.Turn) string {
	if len(turns) == 0 {
		return "(no previous conversation)"
	}
	var sb strings.Builder
	for _, turn := range turns {
		switch turn.Role {
		case core.RoleUser:
			fmt.Fprintf(&sb, "Human: %s\n", turn.Content)
		case core.RoleAssistant:
			fmt.Fprintf(&sb, "Assistant: %s\n", turn.Content)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
