package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type pedidoTeste struct {
	Nome  string  `json:"nome_vendedor" validate:"required"`
	Email string  `json:"email" validate:"omitempty,email"`
	Valor float64 `json:"valor_venda" validate:"gt=0"`
}

func TestValidar(t *testing.T) {
	err := Validar(pedidoTeste{Valor: 1})
	var ev *ErroValidacao
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "nome_vendedor é obrigatório", ev.Mensagem)

	err = Validar(pedidoTeste{Nome: "Ana", Email: "x", Valor: 1})
	assert.EqualError(t, err, "email deve ser um email válido")

	err = Validar(pedidoTeste{Nome: "Ana"})
	assert.EqualError(t, err, "valor_venda deve ser maior que 0")

	assert.NoError(t, Validar(pedidoTeste{Nome: "Ana", Email: "ana@exemplo.com", Valor: 10}))
}

func TestDecodificarJSON(t *testing.T) {
	var dst pedidoTeste

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nome_vendedor":"Ana"}`))
	require.NoError(t, DecodificarJSON(r, &dst))
	assert.Equal(t, "Ana", dst.Nome)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, DecodificarJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.EqualError(t, DecodificarJSON(r, &dst), "JSON inválido")
}

func TestResponderFalha(t *testing.T) {
	casos := []struct {
		err    error
		status int
		corpo  string
	}{
		{&ErroValidacao{Mensagem: "campo inválido"}, http.StatusBadRequest, `{"erro":"campo inválido"}`},
		{gorm.ErrRecordNotFound, http.StatusNotFound, `{"erro":"Venda não encontrada"}`},
		{errors.New("disk I/O error"), http.StatusInternalServerError, `{"erro":"disk I/O error"}`},
	}
	for _, c := range casos {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/vendas/1", nil)

		ResponderFalha(w, r, c.err, "Venda não encontrada")

		assert.Equal(t, c.status, w.Code)
		assert.JSONEq(t, c.corpo, w.Body.String())
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	}
}
