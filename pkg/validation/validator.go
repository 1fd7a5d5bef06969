package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/internal/domain/entity"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the goalstatus alias.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("goalstatus", "oneof="+strings.Join(goalStatusNames(), " "))
	}
}

// ToDetails turns a binding error, a validator error or a domain Validation
// error into the field -> message map of an error response.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	if ae, ok := apperror.As(err); ok && ae.Kind == apperror.KindValidation {
		field := ae.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: ae.Message}
	}

	return map[string]string{"payload": "invalid payload"}
}

// fieldMessages renders a validator tag as client-facing text. numeric is
// true when the failing field is a number rather than a string or slice.
var fieldMessages = map[string]func(param string, numeric bool) string{
	"required": func(string, bool) string { return "is required" },
	"email":    func(string, bool) string { return "must be a valid email" },
	"uuid":     func(string, bool) string { return "must be a valid UUID" },
	"len": func(p string, _ bool) string {
		return fmt.Sprintf("must be exactly %s characters long", p)
	},
	"min": func(p string, numeric bool) string {
		if numeric {
			return "must be at least " + p
		}
		return "must be at least " + p + " characters long"
	},
	"max": func(p string, numeric bool) string {
		if numeric {
			return "must be at most " + p
		}
		return "must be at most " + p + " characters long"
	},
	"oneof": func(p string, _ bool) string {
		return "must be one of: " + strings.Join(strings.Fields(p), ", ")
	},
	"goalstatus": func(string, bool) string {
		return "must be one of: " + strings.Join(goalStatusNames(), ", ")
	},
}

func formatFieldError(fe validator.FieldError) string {
	if render, ok := fieldMessages[fe.Tag()]; ok {
		return render(fe.Param(), isNumberKind(fe.Kind()))
	}
	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}

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

func goalStatusNames() []string {
	out := make([]string, 0, len(entity.GoalStatuses))
	for _, st := range entity.GoalStatuses {
		out = append(out, string(st))
	}
	return out
}
