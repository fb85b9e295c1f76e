package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo so typed
// request structs are checked by tag instead of framework introspection.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// fieldErrors flattens validator failures into the field->message map
// carried by the validation error envelope.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = "invalid request body"
		return out
	}
	for _, fe := range errs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", fe.Field())
	case "email":
		return fmt.Sprintf("the %s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("the %s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("the %s may not be greater than %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("the %s field is invalid", fe.Field())
	}
}
