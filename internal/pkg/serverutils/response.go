package serverutils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kommo-tools-be/internal/pkg/apperr"
)

func SuccessResponse[T any](message string, data T) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"error":   true,
		"message": message,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json name so messages match the wire contract
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRequest runs struct validation and converts the first failure into
// a 400 AppError naming the offending field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return err
	}

	fe := fieldErrors[0]
	if fe.Tag() == "required" {
		return apperr.NewValidation(fmt.Sprintf("%s é obrigatório", fe.Field()))
	}
	return apperr.NewValidation(fmt.Sprintf("%s é inválido", fe.Field()))
}
