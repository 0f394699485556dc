package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"aspiro/internal/delivery/http/middleware"
	"aspiro/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// RequestValidator decodes JSON bodies and reports every rejected field as
// a 422 with a list of issues located by their JSON names.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Bind(c fiber.Ctx, dst interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return unprocessable(response.ValidationIssue{
			Loc:  []interface{}{"body"},
			Msg:  "Field required",
			Type: "missing",
		})
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return unprocessable(decodeIssue(err))
	}

	if err := rv.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		issues := make([]response.ValidationIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, fieldIssue(fe))
		}
		return unprocessable(issues...)
	}
	return nil
}

func unprocessable(issues ...response.ValidationIssue) error {
	return middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageUnprocessableEntity, issues, nil)
}

func decodeIssue(err error) response.ValidationIssue {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return response.ValidationIssue{
				Loc:  []interface{}{"body"},
				Msg:  "Input should be a valid dictionary",
				Type: "model_attributes_type",
			}
		}
		loc := []interface{}{"body"}
		for _, part := range strings.Split(typeErr.Field, ".") {
			loc = append(loc, part)
		}
		msg, typ := kindIssue(typeErr.Type)
		return response.ValidationIssue{Loc: loc, Msg: msg, Type: typ}
	}

	var syntaxErr *json.SyntaxError
	offset := int64(0)
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	return response.ValidationIssue{
		Loc:  []interface{}{"body", offset},
		Msg:  "JSON decode error",
		Type: "json_invalid",
	}
}

func kindIssue(t reflect.Type) (string, string) {
	if t == nil {
		return "Input has the wrong type", "type_error"
	}
	switch t.Kind() {
	case reflect.String:
		return "Input should be a valid string", "string_type"
	case reflect.Bool:
		return "Input should be a valid boolean", "bool_type"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Input should be a valid integer", "int_type"
	case reflect.Slice, reflect.Array:
		return "Input should be a valid list", "list_type"
	default:
		return "Input has the wrong type", "type_error"
	}
}

func fieldIssue(fe validator.FieldError) response.ValidationIssue {
	loc := []interface{}{"body"}
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for _, p := range parts {
		loc = append(loc, p)
	}

	switch fe.Tag() {
	case "required":
		return response.ValidationIssue{Loc: loc, Msg: "Field required", Type: "missing"}
	case "email":
		return response.ValidationIssue{Loc: loc, Msg: "value is not a valid email address", Type: "value_error"}
	default:
		return response.ValidationIssue{Loc: loc, Msg: fmt.Sprintf("failed on the %q rule", fe.Tag()), Type: "value_error"}
	}
}
