// Package answer implements the composer that turns raw graph records into a
// narrative answer. The prompt instructs the model to weave identifying
// metadata (email ids, timestamps) into prose instead of dumping records
// verbatim. Whether to fall back when records are empty is the caller's
// decision, not the composer's.
package answer
