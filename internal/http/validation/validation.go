package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError turns a gin bind/validation error into a field->message
// map keyed by the json tag of the bound struct.
// dst: pointer to the struct that was bound (used to read tags)
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldKey(dst, fe)] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	// other bind errors (type mismatch, malformed body)
	out["_"] = "Invalid request body."
	return out
}

// fieldKey walks the error's struct namespace (e.g.
// "checkoutReq.Address.FullName") through dst's type so nested fields
// resolve to their own json tag, not a lowercased Go name.
func fieldKey(dst any, fe validator.FieldError) string {
	key := strings.ToLower(fe.StructField())
	t := reflect.TypeOf(dst)

	path := strings.Split(fe.StructNamespace(), ".")
	if len(path) > 1 {
		path = path[1:] // drop the root struct name
	}
	for _, name := range path {
		// "Items[2]" -> "Items"
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		for t != nil && (t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice ||
			t.Kind() == reflect.Array || t.Kind() == reflect.Map) {
			t = t.Elem()
		}
		if t == nil || t.Kind() != reflect.Struct {
			return key
		}
		f, ok := t.FieldByName(name)
		if !ok {
			return key
		}
		t = f.Type
		if tag := jsonName(f); tag != "" {
			key = tag
		} else {
			key = strings.ToLower(f.Name)
		}
	}
	return key
}

// json:"email,omitempty" -> "email"; "-" and empty mean no usable tag.
func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "-" {
		return ""
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + param + " characters."
	case "max":
		return "Must be at most " + param + " characters."
	case "gt":
		return "Must be greater than " + param + "."
	case "gte":
		return "Must be at least " + param + "."
	case "oneof":
		return "Must be one of: " + param + "."
	case "uuid":
		return "Must be a valid identifier."
	default:
		return "Invalid value."
	}
}
