package http

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator devuelve la instancia compartida; los errores usan el nombre del tag json.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// parseAndValidate decodifica el body JSON y aplica los tags validate del DTO.
// Responde 400 (INVALID_BODY o VALIDATION) y devuelve false si la entrada no sirve.
func parseAndValidate(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := Validator().Struct(out); err != nil {
		return false, badRequest(c, "VALIDATION", validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " es requerido"
	case "email":
		return e.Field() + " debe ser un email válido"
	case "min":
		return e.Field() + " debe tener al menos " + e.Param() + " caracteres"
	case "max":
		return e.Field() + " admite como máximo " + e.Param() + " caracteres"
	case "oneof":
		return e.Field() + " debe ser uno de: " + e.Param()
	}
	return e.Field() + " inválido (" + e.Tag() + ")"
}
