package validator

import (
	"errors"
	"strings"
	"unicode"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"notblank": "{field} is required",
		"enum":     "{field} has an unsupported value",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"uuid":     "{field} must be a valid UUID",
		"datetime": "{field} must match {param}",
	}

	missingTags = map[string]bool{
		"required": true,
		"notblank": true,
	}
)

// describe turns the first failing rule into a failure reason and a readable message.
func describe(err error) (string, string) {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return ReasonInvalidField, err.Error()
	}

	valErr := valErrors[0]

	reason := ReasonInvalidField
	if missingTags[valErr.Tag()] {
		reason = ReasonMissingFields
	} else if r, ok := valErr.Value().(Reasoner); ok {
		reason = r.InvalidReason()
	}

	msg, ok := messages[valErr.Tag()]
	if !ok {
		return reason, valErrors.Error()
	}

	msg = strings.ReplaceAll(msg, "{field}", valErr.Field())
	msg = strings.ReplaceAll(msg, "{param}", valErr.Param())

	return reason, msg
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
