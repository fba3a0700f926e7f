package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that knows its HTTP status. Reason, when set, is the
// machine-readable code clients switch on, e.g. "slot_unavailable".
type Failure struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Is matches another failure with the same code and reason, so a failure rebuilt
// from an event or a cache still satisfies errors.Is against the package variable.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) || e.Reason == "" {
		return false
	}

	return e.Code == other.Code && e.Reason == other.Reason
}

func WithReason(code int, reason, msg string) *Failure {
	return &Failure{Code: code, Reason: reason, Message: msg}
}

// BadRequest turns err into a 400 carrying its message. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Message: msg}
}

// GetCode returns the status of the first Failure in err's chain, 500 otherwise.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the reason of the first Failure in err's chain, if any.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}
