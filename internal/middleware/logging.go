package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const HeaderRequestID = "X-Request-ID"

type ctxKey string

const ctxRequestID ctxKey = "request_id"

// Logging coloca o logger na requisição, atribui um request id e registra
// uma linha de acesso ao final.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	comLogger := hlog.NewHandler(logger)
	acesso := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("requisição")
	})
	return func(next http.Handler) http.Handler {
		return comLogger(RequestID(acesso(next)))
	}
}

// RequestID reaproveita o X-Request-ID recebido ou gera um novo, devolve no
// cabeçalho da resposta e anexa ao logger da requisição.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		log := hlog.FromRequest(r).With().Str("request_id", id).Logger()
		ctx := context.WithValue(r.Context(), ctxRequestID, id)
		ctx = log.WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDDoContexto devolve o id atribuído por RequestID.
func RequestIDDoContexto(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}
