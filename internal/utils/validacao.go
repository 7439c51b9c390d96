package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Mensagens usam o nome do campo no JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		nome := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if nome == "-" || nome == "" {
			return f.Name
		}
		return nome
	})
	return v
}

// ErroValidacao carrega a mensagem pronta para o cliente (HTTP 400).
type ErroValidacao struct {
	Mensagem string
}

func (e *ErroValidacao) Error() string { return e.Mensagem }

// Validar aplica as tags `validate` e devolve *ErroValidacao com o primeiro campo inválido.
func Validar(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ErroValidacao{Mensagem: mensagemCampo(ve[0])}
	}
	return err
}

func mensagemCampo(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "email":
		return fmt.Sprintf("%s deve ser um email válido", fe.Field())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s deve ter ao menos %s caracteres", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s inválido", fe.Field())
	}
}

// DecodificarJSON lê o corpo da requisição em dst. Corpo vazio vira objeto vazio.
func DecodificarJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return &ErroValidacao{Mensagem: "JSON inválido"}
	}
	return nil
}
