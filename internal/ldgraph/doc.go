// Package ldgraph is the query adapter over DFC linked-data graphs.
//
// Input graphs are loosely structured: a relation may hold an embedded
// node, a {"@id": ...} reference, a bare identifier string, or a
// single-element array of any of those. Graph flattens the document
// through a ports.GraphProcessor, indexes the resulting nodes by @id and
// exposes typed accessors that always return either a concrete node or a
// typed absence.
package ldgraph
