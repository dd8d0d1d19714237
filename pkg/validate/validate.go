// Package validate envuelve go-playground/validator con mensajes legibles.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida las etiquetas `validate` de s y devuelve un error
// con los campos inválidos concatenados, apto para la respuesta HTTP.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("el campo %s es obligatorio", fe.Field())
	case "gt":
		return fmt.Sprintf("el campo %s debe ser mayor que %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("el campo %s debe ser al menos %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("el campo %s supera el máximo de %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("el campo %s no es un correo válido", fe.Field())
	case "oneof":
		return fmt.Sprintf("el campo %s debe ser uno de: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("el campo %s no cumple la regla %s", fe.Field(), fe.Tag())
	}
}
