package middleware

import (
	"net/http"
	"time"

	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/go-chi/httprate"
)

// LimitarPorIP limita requisições por IP na janela de um minuto.
// porMinuto <= 0 desliga o limite.
func LimitarPorIP(porMinuto int) func(http.Handler) http.Handler {
	if porMinuto <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		porMinuto,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.ResponderErro(w, http.StatusTooManyRequests, "Muitas tentativas. Tente novamente em instantes")
		}),
	)
}
