package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"gorm.io/gorm"
)

// Erro é o corpo padrão de todas as respostas de erro.
type Erro struct {
	Erro string `json:"erro"`
}

// Mensagem é o corpo das respostas que só confirmam uma ação.
type Mensagem struct {
	Mensagem string `json:"mensagem"`
}

func ResponderJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func ResponderErro(w http.ResponseWriter, status int, msg string) {
	ResponderJSON(w, status, Erro{Erro: msg})
}

func ResponderMensagem(w http.ResponseWriter, status int, msg string) {
	ResponderJSON(w, status, Mensagem{Mensagem: msg})
}

// ResponderFalha traduz err para o status adequado:
// *ErroValidacao → 400, gorm.ErrRecordNotFound → 404 (com naoEncontrado),
// qualquer outro → 500 com o texto do erro, registrado no log da requisição.
func ResponderFalha(w http.ResponseWriter, r *http.Request, err error, naoEncontrado string) {
	var ev *ErroValidacao
	switch {
	case errors.As(err, &ev):
		ResponderErro(w, http.StatusBadRequest, ev.Mensagem)
	case errors.Is(err, gorm.ErrRecordNotFound):
		ResponderErro(w, http.StatusNotFound, naoEncontrado)
	default:
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("erro interno")
		ResponderErro(w, http.StatusInternalServerError, err.Error())
	}
}
