package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KromaEnergia/api-vendas/internal/config"
	"github.com/KromaEnergia/api-vendas/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoServidor(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		HTTP:    config.HTTPConfig{CORSOrigens: []string{"http://localhost:5173"}},
		JWT:     config.JWTConfig{Secret: "segredo", Expiracao: time.Hour},
		TempDir: t.TempDir(),
	}
	return New(testutil.NovoBanco(t), cfg, zerolog.Nop())
}

func chamar(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestFluxoCompleto(t *testing.T) {
	h := novoServidor(t)

	rec := chamar(h, http.MethodPost, "/api/auth/registro", "", `{"nome_vendedor":"Ana Silva","email":"ana@x.com","senha":"123456"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = chamar(h, http.MethodPost, "/api/comissoes", "", `{"id_vendedor":1,"nome_tabela":"Gold","porcentagem_comissao":10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = chamar(h, http.MethodPost, "/api/vendas", "", `{"cpf_cliente":"12345678901","nome_cliente":"Maria","valor_venda":1000,"id_vendedor_comissao":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = chamar(h, http.MethodPost, "/api/auth/login", "", `{"email":"ana@x.com","senha":"123456"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = chamar(h, http.MethodGet, "/api/auth/dashboard", login.Token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var painel struct {
		Estatisticas struct {
			TotalComissoes float64 `json:"total_comissoes"`
		} `json:"estatisticas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &painel))
	assert.InDelta(t, 100.0, painel.Estatisticas.TotalComissoes, 1e-9)

	rec = chamar(h, http.MethodGet, "/api/auth/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"erro":"Token de acesso necessário"}`, rec.Body.String())

	rec = chamar(h, http.MethodGet, "/api/vendedores/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nome_tabela":"Gold"`)

	rec = chamar(h, http.MethodDelete, "/api/vendedores/1", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := chamar(novoServidor(t), http.MethodGet, "/api/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRotaInexistente(t *testing.T) {
	rec := chamar(novoServidor(t), http.MethodGet, "/api/nao-existe", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"erro":"Rota não encontrada"}`, rec.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	h := novoServidor(t)
	r := httptest.NewRequest(http.MethodOptions, "/api/auth/perfil", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", "GET")
	r.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, r)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Less(t, rec.Code, 300)
}
