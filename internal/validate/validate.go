// Package validate turns request payloads into the client-facing validation
// messages the API reports: always the first offending field, quoted, with a
// short reason. Unknown keys and type mismatches are rejected at decode time
// so malformed input never reaches the store layer.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct runs the `validate` tags of in. The returned error message is safe
// to send to clients.
func Struct(in any) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(fieldMessage(verrs[0]))
	}
	return errors.New("invalid payload")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "min":
		if kindOf(fe) == reflect.String {
			return fmt.Sprintf("%q must be at least %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%q must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}

func kindOf(fe validator.FieldError) reflect.Kind {
	k := fe.Kind()
	if k == reflect.Ptr {
		return fe.Type().Elem().Kind()
	}
	return k
}

// DecodeBody decodes a JSON request body into out. Keys outside the target
// struct and type mismatches both fail with a per-field message.
func DecodeBody(r io.Reader, out any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errors.New(decodeMessage(err))
	}
	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%q must be %s", typeErr.Field, typeName(typeErr.Type))
	}
	// encoding/json has no typed error for unknown fields.
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		name := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return fmt.Sprintf("%q is not allowed", name)
	}
	return "invalid JSON body"
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "a number"
	default:
		return "of type " + t.String()
	}
}
