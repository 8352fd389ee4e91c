package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse descreve um campo reprovado.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Mensagens usam o nome JSON do campo (precoVenda, dataRecebimento...).
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct valida as tags `validate` e devolve os campos reprovados.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "payload", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range validationErrors {
			errors = append(errors, &ErrorResponse{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Param(),
			})
		}
	}
	return errors
}

// Message resume os campos reprovados numa frase para o cliente.
func Message(errs []*ErrorResponse) string {
	if len(errs) == 0 {
		return ""
	}
	var required, others []string
	for _, e := range errs {
		if e.Tag == "required" {
			required = append(required, e.FailedField)
			continue
		}
		others = append(others, fmt.Sprintf("%s (%s)", e.FailedField, e.Tag))
	}

	parts := make([]string, 0, 2)
	if len(required) > 0 {
		parts = append(parts, "Campos obrigatórios ausentes: "+strings.Join(required, ", "))
	}
	if len(others) > 0 {
		parts = append(parts, "Campos inválidos: "+strings.Join(others, ", "))
	}
	return strings.Join(parts, ". ") + "."
}
