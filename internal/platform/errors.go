package platform

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes platform errors.
type ErrorCode string

const (
	// CodeInvalidHandle indicates a handle that is empty, too long or contains whitespace.
	CodeInvalidHandle ErrorCode = "INVALID_HANDLE"

	// CodeHandleAlreadyExists indicates the handle belongs to another live account.
	CodeHandleAlreadyExists ErrorCode = "HANDLE_ALREADY_EXISTS"

	// CodeHandleNotRecognised indicates no live account has the handle.
	CodeHandleNotRecognised ErrorCode = "HANDLE_NOT_RECOGNISED"

	// CodeAccountIDNotRecognised indicates no live account has the id.
	CodeAccountIDNotRecognised ErrorCode = "ACCOUNT_ID_NOT_RECOGNISED"

	// CodePostIDNotRecognised indicates no live post has the id.
	CodePostIDNotRecognised ErrorCode = "POST_ID_NOT_RECOGNISED"

	// CodeNotActionablePost indicates the post is an endorsement and cannot be
	// endorsed, commented or rendered as a reply tree.
	CodeNotActionablePost ErrorCode = "NOT_ACTIONABLE_POST"

	// CodeInvalidPost indicates a message that is empty or too long.
	CodeInvalidPost ErrorCode = "INVALID_POST"

	// CodeNoPostsExist indicates an aggregate was requested over an empty repository.
	CodeNoPostsExist ErrorCode = "NO_POSTS_EXIST"

	// CodeStorageIO indicates a snapshot could not be written, read or decoded.
	CodeStorageIO ErrorCode = "STORAGE_IO_ERROR"
)

// Error is the error type returned by every Platform operation.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrInvalidHandle          = &Error{Code: CodeInvalidHandle, Message: "invalid handle"}
	ErrHandleAlreadyExists    = &Error{Code: CodeHandleAlreadyExists, Message: "handle already exists"}
	ErrHandleNotRecognised    = &Error{Code: CodeHandleNotRecognised, Message: "handle not recognised"}
	ErrAccountIDNotRecognised = &Error{Code: CodeAccountIDNotRecognised, Message: "account id not recognised"}
	ErrPostIDNotRecognised    = &Error{Code: CodePostIDNotRecognised, Message: "post id not recognised"}
	ErrNotActionablePost      = &Error{Code: CodeNotActionablePost, Message: "post is not actionable"}
	ErrInvalidPost            = &Error{Code: CodeInvalidPost, Message: "invalid post"}
	ErrNoPostsExist           = &Error{Code: CodeNoPostsExist, Message: "no posts exist"}
	ErrStorageIO              = &Error{Code: CodeStorageIO, Message: "storage error"}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the ErrorCode from err, or "" if err is not a platform error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}
