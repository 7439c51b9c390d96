package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/rs/zerolog/hlog"
)

type ctxKey string

const CtxVendedor ctxKey = "vendedor"

// HandlerComVendedor recebe o vendedor já autenticado.
type HandlerComVendedor func(w http.ResponseWriter, r *http.Request, v *models.Vendedor)

// BuscadorVendedor resolve o id do token para um vendedor.
type BuscadorVendedor interface {
	BuscarPorID(id uint) (*models.Vendedor, error)
}

// Gate protege rotas exigindo "Authorization: Bearer <token>" de um vendedor ativo.
type Gate struct {
	Tokens     *Tokens
	Vendedores BuscadorVendedor
}

// Proteger autentica a requisição e chama next com o vendedor resolvido.
func (g *Gate) Proteger(next HandlerComVendedor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, msg := extrairBearer(r.Header.Get("Authorization"))
		if msg != "" {
			utils.ResponderErro(w, http.StatusUnauthorized, msg)
			return
		}

		claims, err := g.Tokens.Validar(raw)
		if err != nil {
			hlog.FromRequest(r).Debug().Err(err).Msg("token rejeitado")
			utils.ResponderErro(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}

		v, err := g.Vendedores.BuscarPorID(claims.VendedorID)
		if err != nil || !v.Ativo {
			utils.ResponderErro(w, http.StatusUnauthorized, "Vendedor não encontrado ou inativo")
			return
		}

		ctx := context.WithValue(r.Context(), CtxVendedor, v)
		next(w, r.WithContext(ctx), v)
	}
}

// VendedorDoContexto devolve o vendedor injetado por Proteger.
func VendedorDoContexto(ctx context.Context) (*models.Vendedor, bool) {
	v, ok := ctx.Value(CtxVendedor).(*models.Vendedor)
	return v, ok
}

// extrairBearer devolve o token ou a mensagem de erro para o cliente.
func extrairBearer(h string) (string, string) {
	if h == "" {
		return "", "Token de acesso necessário"
	}
	partes := strings.Split(h, " ")
	if len(partes) < 2 || !strings.EqualFold(partes[0], "Bearer") {
		return "", "Token malformado"
	}
	if partes[1] == "" {
		return "", "Token de acesso necessário"
	}
	return partes[1], ""
}
