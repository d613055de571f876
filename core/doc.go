// Package core holds the domain contracts shared by every mailgraph
// component: graph records, retrieved passages, conversation turns and the
// reasoning trace. Interfaces live here so higher level packages (tools,
// agent, façade) depend on contracts instead of concrete storage or model
// implementations.
package core
