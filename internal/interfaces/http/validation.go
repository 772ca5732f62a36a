package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/shopspring/decimal"
)

// ValidationError request que no pasa el parseo o las reglas `validate`; se responde 422.
type ValidationError struct {
	Details []dto.ValidationErrorDetail
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation error"
	}
	return "validation error: " + strings.Join(e.Details[0].Loc, ".") + ": " + e.Details[0].Msg
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	// decimal y Date se validan por su valor (gt=0, required).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(dto.Date); ok && !d.IsZero() {
			return d.Format(dto.DateLayout)
		}
		return ""
	}, dto.Date{})
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		panic(err)
	}
	return v
}

// validatePhone sólo dígitos, entre 9 y 15.
func validatePhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 9 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseBody decodifica el JSON del body en out y lo valida.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &ValidationError{Details: []dto.ValidationErrorDetail{{
			Loc:  []string{"body"},
			Msg:  "Invalid request body",
			Type: "json_invalid",
		}}}
	}
	return validateStruct("body", out)
}

// parseQuery decodifica los query params en out y los valida.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return &ValidationError{Details: []dto.ValidationErrorDetail{{
			Loc:  []string{"query"},
			Msg:  err.Error(),
			Type: "parsing",
		}}}
	}
	return validateStruct("query", out)
}

func validateStruct(location string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	details := make([]dto.ValidationErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dto.ValidationErrorDetail{
			Loc:  fieldLoc(location, fe.Namespace()),
			Msg:  validationMessage(fe),
			Type: fe.Tag(),
		})
	}
	return &ValidationError{Details: details}
}

// fieldLoc "OrderCreateRequest.products[0].quantity" -> ["body", "products[0]", "quantity"].
func fieldLoc(location, namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return append([]string{location}, parts...)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "email":
		return "value is not a valid email address"
	case "uuid":
		return "Input should be a valid UUID"
	case "phone":
		return "Phone must be between 9 and 15 digits"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("List should have at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("String should have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("String should have at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("String should have exactly %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Input should be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Input should be one of: %s", fe.Param())
	case "numeric":
		return "String should contain only digits"
	case "datetime":
		return "Input should be a valid date (YYYY-MM-DD)"
	case "latitude", "longitude":
		return fmt.Sprintf("Input should be a valid %s", fe.Tag())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
