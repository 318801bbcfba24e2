// Package errors contains helper functions and types to work with errors
package errors

import (
	"errors"
	"net/http"
)

// Category defines error category
type Category int

const (
	// CategoryNoError means the operation completed without error.
	CategoryNoError Category = iota
	// CategoryDataError The client sent some invalid data in the request,
	// for example a malformed address or amount.
	CategoryDataError
	// CategoryCreationNotFound A creation transaction was mined but the
	// expected creation event was not present in the receipt.
	CategoryCreationNotFound
	// CategoryResourceNotFound The client is attempting to access a resource that does not exist
	CategoryResourceNotFound
	// CategoryDiscoveryUnavailable A factory instance-enumeration query failed
	// because the remote node could not be reached.
	CategoryDiscoveryUnavailable
	// CategoryGeneralError The service failed in an unexpected way
	CategoryGeneralError
)

func (c Category) String() string {
	switch c {
	case CategoryDataError:
		return "CategoryDataError"
	case CategoryCreationNotFound:
		return "CategoryCreationNotFound"
	case CategoryResourceNotFound:
		return "CategoryResourceNotFound"
	case CategoryDiscoveryUnavailable:
		return "CategoryDiscoveryUnavailable"
	default:
		return "CategoryGeneralError"
	}
}

// ServiceError represents service specific type that
// is used all over the services.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

// Error method to comply with error interface
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Category == cat {
		return true
	}
	return false
}

// GeneralError returns a general service error
// the error message sent to the user is "Internal Server Error"
func GeneralError(err error) error {
	if err == nil {
		err = errors.New("internal server error")
	}
	return &ServiceError{
		Category: CategoryGeneralError,
		Message:  "Internal Server Error",
		Err:      err,
	}
}

// BadRequestError returns an error with category DataError
// the error message provided is returned to the user
func BadRequestError(err error, message string) error {
	if err == nil {
		err = errors.New("bad request:" + message)
	}
	return &ServiceError{
		Category: CategoryDataError,
		Message:  message,
		Err:      err,
	}
}

// ResourceNotFoundError returns an error with category ResourceNotFound
// the error message provided is returned to the user
func ResourceNotFoundError(err error, message string) error {
	if err == nil {
		err = errors.New("resource not found:" + message)
	}
	return &ServiceError{
		Category: CategoryResourceNotFound,
		Message:  message,
		Err:      err,
	}
}

// CreationNotFoundError returns an error with category CreationNotFound
// the error message provided is returned to the user
func CreationNotFoundError(err error, message string) error {
	if err == nil {
		err = errors.New("creation not found:" + message)
	}
	return &ServiceError{
		Category: CategoryCreationNotFound,
		Message:  message,
		Err:      err,
	}
}

// DiscoveryUnavailableError returns an error with category DiscoveryUnavailable
// the error message provided is returned to the user
func DiscoveryUnavailableError(err error, message string) error {
	if err == nil {
		err = errors.New("discovery unavailable:" + message)
	}
	return &ServiceError{
		Category: CategoryDiscoveryUnavailable,
		Message:  message,
		Err:      err,
	}
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryResourceNotFound:
		return http.StatusNotFound
	case CategoryCreationNotFound:
		return http.StatusUnprocessableEntity
	case CategoryDiscoveryUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
