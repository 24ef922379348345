// Package schema defines the create/update inputs for every portfolio
// resource and validates them before anything reaches the store.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report issues under the JSON names clients actually send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if f, ok := field.Interface().(presenceField); ok {
			return f.validationValue()
		}
		return nil
	},
		Optional[string]{}, Optional[int]{}, Optional[bool]{}, Optional[Date]{}, Optional[[]string]{},
		Nullable[string]{}, Nullable[Date]{}, Nullable[float64]{},
	)
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return time.Time{}
	}, Date{})

	v.RegisterStructValidation(rejectNulls,
		UpdateContactInfoInput{},
		UpdateSkillInput{},
		UpdateExperienceInput{},
		UpdateProjectInput{},
		UpdateEducationInput{},
	)
	return v
}

// rejectNulls reports every explicit null sent for a NOT NULL column.
func rejectNulls(sl validator.StructLevel) {
	current := sl.Current()
	typ := current.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		f, ok := current.Field(i).Interface().(presenceField)
		if !ok || f.nullAllowed() || !f.IsNull() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		sl.ReportError(nil, name, sf.Name, "notnull", "")
	}
}

// Validate checks in against its struct tags and returns a *ValidationError
// describing every failing field.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Issues = append(verr.Issues, Issue{
			Path:    fe.Field(),
			Message: issueMessage(fe),
		})
	}
	return verr
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String && fe.Param() == "1" {
			return "must not be empty"
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "notnull":
		return "must not be null"
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

// Decode unmarshals a JSON input into dst. An empty body decodes as {}.
// Malformed JSON and type mismatches come back as *ValidationError.
func Decode(data []byte, dst any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	err := json.Unmarshal(data, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{Issues: []Issue{{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}}}
	}
	return &ValidationError{Issues: []Issue{{Message: err.Error()}}}
}
