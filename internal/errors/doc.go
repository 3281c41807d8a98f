// Package errors provides structured, actionable error messages for vtree.
//
// Every error raised by the host tree, the reconciler, the config loader and
// the wire protocol carries a stable code (e.g., "E100") that maps to:
//   - A category (host, render, config, input, protocol)
//   - A short message describing the error
//   - A detailed explanation
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail("insertBefore(#4, #9): #9 is a child of #2").
//	    WithSuggestion("Read the reference node from the same parent")
//
//	fmt.Println(err.Format())
//
// Errors created from the same code compare equal under errors.Is, so
// packages can export sentinels:
//
//	var ErrStaleNode = errors.New("E100")
//
//	if stderrors.Is(err, host.ErrStaleNode) { ... }
package errors
