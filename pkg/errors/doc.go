// Package errors provides the coded error type used across slinky.
//
// Codes are grouped the way a run treats them: setup errors (bad root,
// bad pattern) abort before the walk starts, while classification,
// precondition and mutation errors are attached to a single link's
// result and never stop the batch.
package errors
