package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"roomslot/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const (
	ReasonMissingFields = "missing_fields"
	ReasonInvalidField  = "invalid_field"
	ReasonInvalidBody   = "invalid_body"
)

// Enum is implemented by closed value sets such as booking windows or decisions.
// The "enum" tag accepts the field only when Valid reports true.
type Enum interface {
	Valid() bool
}

// Reasoner lets a field type pick the failure reason reported when it is invalid.
type Reasoner interface {
	InvalidReason() string
}

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("enum", func(fl val.FieldLevel) bool {
		enum, ok := fl.Field().Interface().(Enum)

		return ok && enum.Valid()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("notblank", func(fl val.FieldLevel) bool {
		return !isBlank(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate decodes a JSON body into data and validates it with the validator package.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(data); err != nil {
		return failure.WithReason(http.StatusBadRequest, ReasonInvalidBody, fmt.Sprintf("failed to decode request body: %s", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		reason, msg := describe(err)

		return failure.WithReason(http.StatusBadRequest, reason, msg)
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		reason, msg := describe(err)

		return failure.WithReason(http.StatusBadRequest, reason, msg)
	}

	return nil
}
