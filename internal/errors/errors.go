package errors

import "fmt"

var (
	// ErrNotFound will be used when a resource (e.g: a chart on a document) doesn't exist.
	ErrNotFound = fmt.Errorf("resource not found")
	// ErrRequired will be used when a required value is missing.
	ErrRequired = fmt.Errorf("required")
	// ErrNotValid will be used when a value is present but not valid.
	ErrNotValid = fmt.Errorf("not valid")
)
