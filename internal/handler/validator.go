package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog-service/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs validator/v10 into echo's Validate step
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a RequestValidator that reports fields by their JSON name
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate returns an apperror.ErrValidation describing every failed field
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", apperror.ErrValidation, strings.Join(msgs, "; "))
}
