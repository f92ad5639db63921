// Copyright 2025 Certen Protocol

package query

import "fmt"

// SyntaxError reports a query parse failure at a specific byte offset,
// naming the offending span.
type SyntaxError struct {
	Query  string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("query: %s at offset %d in %q", e.Msg, e.Offset, e.Query)
}

func syntaxErrorf(query string, offset int, format string, args ...any) error {
	return &SyntaxError{Query: query, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
