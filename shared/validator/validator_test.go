package validator_test

import (
	"strings"
	"testing"

	"roomslot/shared/failure"
	"roomslot/shared/validator"

	"github.com/stretchr/testify/assert"
)

type level int

func (l level) Valid() bool           { return l >= 1 && l <= 3 }
func (l level) InvalidReason() string { return "invalid_level" }

type request struct {
	Name   string `json:"name"   validate:"required,notblank,max=10"`
	Level  level  `json:"level"  validate:"required,enum"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Choice string `json:"choice" validate:"omitempty,oneof=a b"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		data   request
		reason string
		msg    string
	}{
		{name: "valid", data: request{Name: "room", Level: 2}},
		{name: "missing name", data: request{Level: 2}, reason: validator.ReasonMissingFields, msg: "Name is required"},
		{name: "blank name", data: request{Name: "   ", Level: 2}, reason: validator.ReasonMissingFields, msg: "Name is required"},
		{name: "missing level", data: request{Name: "room"}, reason: validator.ReasonMissingFields, msg: "Level is required"},
		{name: "level out of range uses its own reason", data: request{Name: "room", Level: 7}, reason: "invalid_level", msg: "Level has an unsupported value"},
		{name: "bad email", data: request{Name: "room", Level: 1, Email: "nope"}, reason: validator.ReasonInvalidField, msg: "Email must be a valid email address"},
		{name: "bad choice", data: request{Name: "room", Level: 1, Choice: "c"}, reason: validator.ReasonInvalidField, msg: "Choice must be one of a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.reason == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, 400, failure.GetCode(err))
			assert.Equal(t, tt.reason, failure.GetReason(err))
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestValidate(t *testing.T) {
	var ok request
	assert.NoError(t, validator.Validate(strings.NewReader(`{"name":"room","level":1}`), &ok))
	assert.Equal(t, "room", ok.Name)

	var broken request
	err := validator.Validate(strings.NewReader(`{"name":`), &broken)
	assert.Equal(t, validator.ReasonInvalidBody, failure.GetReason(err))

	var unknown request
	err = validator.Validate(strings.NewReader(`{"name":"room","level":1,"extra":true}`), &unknown)
	assert.Equal(t, validator.ReasonInvalidBody, failure.GetReason(err))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2024-01-02", "datetime=2006-01-02"))

	err := validator.ValidateVar("02/01/2024", "datetime=2006-01-02")
	assert.Equal(t, validator.ReasonInvalidField, failure.GetReason(err))

	err = validator.ValidateVar("", "required")
	assert.Equal(t, validator.ReasonMissingFields, failure.GetReason(err))
}
