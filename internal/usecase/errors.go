package usecase

import (
	"errors"
	"fmt"
)

// handler側でstatusとJSONに変換するエラー。
// CodeとDetailsはAPIレスポンスの {error, code?, details?} に乗る。
type HTTPError struct {
	Status  int
	Message string
	Code    string
	Details string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func NewHTTPErrorWithCode(status int, message string, code string, details string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Code:    code,
		Details: details,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
