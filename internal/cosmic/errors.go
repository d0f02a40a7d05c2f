package cosmic

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx outcome from the content store.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content store returned %d: %s", e.Status, e.Message)
}

// ErrorKind classifies provider failures for the read/write policies built
// on top of the client.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindServerError
	KindValidation
)

// ClassifyError maps any error coming out of the client onto the error
// taxonomy. Transport failures and everything unrecognized are Unknown.
func ClassifyError(err error) ErrorKind {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return KindUnknown
	}
	switch {
	case apiErr.Status == http.StatusNotFound:
		return KindNotFound
	case apiErr.Status >= 500:
		return KindServerError
	case apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindUnknown
	}
}

func IsNotFound(err error) bool {
	return ClassifyError(err) == KindNotFound
}

func IsServerError(err error) bool {
	return ClassifyError(err) == KindServerError
}
