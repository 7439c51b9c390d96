package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/rs/zerolog/hlog"
)

// Recuperar transforma um panic do handler em 500 {"erro": ...}.
func Recuperar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic no handler")
			utils.ResponderErro(w, http.StatusInternalServerError, fmt.Sprint(rec))
		}()
		next.ServeHTTP(w, r)
	})
}
