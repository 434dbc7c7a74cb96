package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(what string) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf("%s not found", what), StatusCode: http.StatusNotFound}
}

func Forbidden(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

func Validation(message string) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf("Validation error: %s", message), StatusCode: http.StatusBadRequest}
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func hasStatus(err error, code int) bool {
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.StatusCode == code
}

// StorageError is a failure of the storage or identity collaborators.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s", e.Err.Error())
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err into StorageError unless it already carries a status code.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var withCode *ErrorWithStatusCode
	if errors.As(err, &withCode) {
		return err
	}
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &StorageError{Err: err}
}
