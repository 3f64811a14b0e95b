package middleware

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// NewValidator wraps the shared validate instance for echo. Field names in
// binding errors come from the json/form/query tags.
func NewValidator(validate *validator.Validate) *Validator {
	return &Validator{validate: validate}
}

func NewValidate() *validator.Validate {
	validate := validator.New()

	commonTags := []string{
		"json",
		"form",
		"param",
		"query",
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range commonTags {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	return validate
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
