package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// formValidator checks bound forms and reports problems using each field's
// label tag, so messages read like the form the user filled in.
type formValidator struct {
	v *validator.Validate
}

// NewValidator returns the validator assigned to echo.Echo.Validator.
func NewValidator() *formValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return strings.ToLower(f.Name)
	})
	return &formValidator{v: v}
}

func (fv *formValidator) Validate(i any) error {
	err := fv.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	problems := make(formErrors, 0, len(ve))
	for _, fe := range ve {
		problems = append(problems, fieldProblem{tag: fe.Tag(), msg: describe(fe)})
	}
	return problems
}

type fieldProblem struct {
	tag string
	msg string
}

// formErrors lists every rejected field of one submission.
type formErrors []fieldProblem

func (fe formErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, p := range fe {
		msgs[i] = p.msg
	}
	return strings.Join(msgs, " ")
}

func describe(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "datetime":
		return label + " must be a date in YYYY-MM-DD form."
	default:
		return label + " is not valid."
	}
}

// inlineError is the message shown above a rejected form. Empty fields alone
// get the generic prompt; anything else names the offending fields.
func inlineError(err error) string {
	var fe formErrors
	if !errors.As(err, &fe) {
		return msgMissingFields
	}
	for _, p := range fe {
		if p.tag != "required" {
			return fe.Error()
		}
	}
	return msgMissingFields
}
