package core

import (
	"fmt"
	"sort"
	"strings"
)

// Passage is one semantic search hit: the matched email content, its
// similarity score and the identifying metadata attached at retrieval time
// (subject, sender id, receiver ids, timestamp, email id, document id).
type Passage struct {
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// MetadataSummary renders the metadata as a "key=value; key=value" line with
// deterministic key order, suitable for appending to a tool observation.
func (p Passage) MetadataSummary() string {
	if len(p.Metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p.Metadata))
	for k := range p.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, p.Metadata[k]))
	}
	return strings.Join(parts, "; ")
}
