package core

import "context"

// Record is a single row returned by a graph query. Keys mirror the RETURN
// clause of the executed statement; values are opaque driver types. Records
// from the email schema are expected (not enforced) to carry an emailId and
// timeReceived property.
type Record map[string]any

// RecordSet is an ordered sequence of records.
type RecordSet []Record

// Empty reports whether the set contains no records.
func (rs RecordSet) Empty() bool { return len(rs) == 0 }

// GraphRunner abstracts query execution against the graph database. Run
// executes a read statement, Write a mutating one; both return the resulting
// rows in order. Implementations must be safe for concurrent use.
type GraphRunner interface {
	Run(ctx context.Context, query string, params map[string]any) (RecordSet, error)
	Write(ctx context.Context, query string, params map[string]any) (RecordSet, error)
}
