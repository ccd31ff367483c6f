package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
			v.RegisterAlias("pwd", "min=6") // password minimum length
		}
	})
}

// BindJSON decodes the request body into dst and validates it. It returns the
// ordered list of violations, or nil when dst is valid. An empty body is
// validated as an empty object and a field of the wrong JSON type is reported
// together with every other violation.
func BindJSON(c *gin.Context, dst any) []string {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return Messages(binding.Validator.ValidateStruct(dst))
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		// encoding/json keeps decoding the other fields after a type error
		return withTypeError(dst, ute, binding.Validator.ValidateStruct(dst))
	}
	return Messages(err)
}

// Messages converts validation/binding errors into human-readable messages,
// one per violated field, in struct field order.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if ute.Field == "" {
			return []string{"payload must be a JSON object"}
		}
		return []string{typeMessage(ute)}
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return []string{"payload must be valid JSON"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fe.Field()+" "+formatFieldError(fe))
		}
		return out
	}

	// Fallback
	return []string{"payload is invalid"}
}

// withTypeError merges the type message for ute.Field into the struct
// violations, in field order. The mistyped field is only reported once.
func withTypeError(dst any, ute *json.UnmarshalTypeError, verr error) []string {
	byField := make(map[string][]string)
	var verrs validator.ValidationErrors
	if errors.As(verr, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == ute.Field {
				continue
			}
			byField[fe.Field()] = append(byField[fe.Field()], fe.Field()+" "+formatFieldError(fe))
		}
	}

	out := make([]string, 0, len(verrs)+1)
	placed := false
	for _, name := range jsonFields(dst) {
		if name == ute.Field {
			out = append(out, typeMessage(ute))
			placed = true
		}
		out = append(out, byField[name]...)
	}
	if !placed {
		out = append([]string{typeMessage(ute)}, out...)
	}
	return out
}

func typeMessage(ute *json.UnmarshalTypeError) string {
	return ute.Field + " must be a " + jsonKind(ute.Type)
}

// jsonFields lists the JSON names of dst's top-level fields in declaration order.
func jsonFields(dst any) []string {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}

func jsonKind(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "value"
	}
	switch {
	case isNumberKind(t.Kind()):
		return "number"
	case t.Kind() == reflect.String:
		return "string"
	case t.Kind() == reflect.Bool:
		return "boolean"
	}
	return t.Kind().String()
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"

	// ===== SIZE/LENGTH VALIDATIONS =====
	case "min", "pwd":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"

	default:
		if param != "" {
			return fmt.Sprintf("failed validation '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("failed validation '%s'", tag)
	}
}

// Helper functions
func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
