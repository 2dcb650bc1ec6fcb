package main

import "fmt"

// Layout error codes. The taxonomy is fixed; callers switch on Code rather
// than on message text.
const (
	ErrCodeIndexOutOfBounds = "INDEX_OUT_OF_BOUNDS"
	ErrCodeInvalidPosition  = "INVALID_POSITION"
	ErrCodePageNotFound     = "PAGE_NOT_FOUND"
	ErrCodeConfigError      = "CONFIG_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// LayoutError is the only error type the layout engine returns. None of the
// local failure modes are transient, so Retryable is false for all of them;
// the field exists so callers can treat engine errors uniformly with
// retryable errors from the decode pipeline.
type LayoutError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errIndexOutOfBounds(index, total int) *LayoutError {
	return &LayoutError{
		Code:    ErrCodeIndexOutOfBounds,
		Message: fmt.Sprintf("index %d out of range [0, %d)", index, total),
	}
}

func errInvalidPosition(pos PagePosition) *LayoutError {
	return &LayoutError{
		Code:    ErrCodeInvalidPosition,
		Message: fmt.Sprintf("invalid position: index=%d part=%d", pos.Index, pos.Part),
	}
}

func errPageNotFound(index int) *LayoutError {
	return &LayoutError{
		Code:    ErrCodePageNotFound,
		Message: fmt.Sprintf("page %d no longer exists in the catalog", index),
	}
}

func errConfig(reason string) *LayoutError {
	return &LayoutError{
		Code:    ErrCodeConfigError,
		Message: reason,
	}
}

func errInternal(reason string) *LayoutError {
	return &LayoutError{
		Code:    ErrCodeInternalError,
		Message: reason,
	}
}

// LayoutErrorCode extracts the taxonomy code from an error, or "" if err is
// not a LayoutError.
func LayoutErrorCode(err error) string {
	if le, ok := err.(*LayoutError); ok {
		return le.Code
	}
	return ""
}
