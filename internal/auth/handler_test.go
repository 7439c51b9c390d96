package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/KromaEnergia/api-vendas/internal/testutil"
	"github.com/KromaEnergia/api-vendas/internal/venda"
	"github.com/KromaEnergia/api-vendas/internal/vendedor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func novoHandler(t *testing.T) (*gorm.DB, *Handler) {
	t.Helper()
	db := testutil.NovoBanco(t)
	return db, NewHandler(NewTokens("segredo-teste", time.Hour), vendedor.NewRepository(db), venda.NewRepository(db))
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func comToken(method, target, token, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func login(t *testing.T, h *Handler, email, senha string) string {
	t.Helper()
	rec := post(h.Login, `{"email":"`+email+`","senha":"`+senha+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestLogin(t *testing.T) {
	db, h := novoHandler(t)
	testutil.CriarVendedor(t, db, "Ana", "ana@x.com", "123456")

	rec := post(h.Login, `{"email":"ana@x.com","senha":"123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Login realizado com sucesso", out.Mensagem)
	assert.Equal(t, "ana@x.com", out.Vendedor.Email)
	assert.NotContains(t, rec.Body.String(), "senha_hash")

	claims, err := h.Tokens.Validar(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Vendedor.ID, claims.VendedorID)
}

func TestLogin_Falhas(t *testing.T) {
	db, h := novoHandler(t)
	testutil.CriarVendedor(t, db, "Ana", "ana@x.com", "123456")
	inativo := testutil.CriarVendedor(t, db, "Bia", "bia@x.com", "123456")
	require.NoError(t, db.Model(inativo).Update("ativo", false).Error)

	casos := []struct {
		nome   string
		body   string
		status int
		erro   string
	}{
		{"sem senha", `{"email":"ana@x.com"}`, http.StatusBadRequest, "Email e senha são obrigatórios"},
		{"senha errada", `{"email":"ana@x.com","senha":"x"}`, http.StatusUnauthorized, "Email ou senha incorretos"},
		{"email desconhecido", `{"email":"zz@x.com","senha":"123456"}`, http.StatusUnauthorized, "Email ou senha incorretos"},
		{"conta inativa", `{"email":"bia@x.com","senha":"123456"}`, http.StatusUnauthorized, "Conta desativada. Entre em contato com o administrador"},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			rec := post(h.Login, c.body)
			assert.Equal(t, c.status, rec.Code)
			assert.JSONEq(t, `{"erro":"`+c.erro+`"}`, rec.Body.String())
		})
	}
}

func TestRegistro(t *testing.T) {
	_, h := novoHandler(t)

	rec := post(h.Registro, `{"nome_vendedor":"Ana","email":"ana@x.com","senha":"123456"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	login(t, h, "ana@x.com", "123456")

	rec = post(h.Registro, `{"nome_vendedor":"Outra","email":"ana@x.com","senha":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"erro":"Email já cadastrado"}`, rec.Body.String())

	rec = post(h.Registro, `{"nome_vendedor":"Sem Senha","email":"s@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"erro":"senha é obrigatório"}`, rec.Body.String())

	rec = post(h.Registro, `{"nome_vendedor":"Email Ruim","email":"sem-arroba","senha":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPerfil_ComToken(t *testing.T) {
	db, h := novoHandler(t)
	v := testutil.CriarVendedor(t, db, "Ana", "ana@x.com", "123456")
	testutil.CriarTabela(t, db, v.ID, "Gold", 10)
	token := login(t, h, "ana@x.com", "123456")

	rec := httptest.NewRecorder()
	h.Gate().Proteger(h.Perfil)(rec, comToken(http.MethodGet, "/auth/perfil", token, ""))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out models.VendedorDetalhe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, v.ID, out.ID)
	require.Len(t, out.Comissoes, 1)
	assert.Equal(t, "Gold", out.Comissoes[0].NomeTabela)
}

func TestDashboard(t *testing.T) {
	db, h := novoHandler(t)
	ana := testutil.CriarVendedor(t, db, "Ana", "ana@x.com", "123456")
	bruno := testutil.CriarVendedor(t, db, "Bruno", "", "")
	gold := testutil.CriarTabela(t, db, ana.ID, "Gold", 10)
	outra := testutil.CriarTabela(t, db, bruno.ID, "Gold", 10)
	hoje := time.Now()
	testutil.CriarVenda(t, db, gold, 1000, hoje, true)
	testutil.CriarVenda(t, db, gold, 2000, hoje, false)
	testutil.CriarVenda(t, db, outra, 9000, hoje, false)
	token := login(t, h, "ana@x.com", "123456")

	rec := httptest.NewRecorder()
	h.Gate().Proteger(h.Dashboard)(rec, comToken(http.MethodGet, "/auth/dashboard", token, ""))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, ana.ID, out.Vendedor.ID)
	assert.Len(t, out.Vendas, 2)
	e := out.Estatisticas
	assert.Equal(t, 2, e.TotalVendas)
	assert.InDelta(t, 3000.0, e.TotalValorVendas, 1e-9)
	assert.InDelta(t, 300.0, e.TotalComissoes, 1e-9)
	assert.InDelta(t, 100.0, e.ComissoesPagas, 1e-9)
	assert.InDelta(t, 200.0, e.ComissoesPendentes, 1e-9)

	rec = httptest.NewRecorder()
	h.Gate().Proteger(h.Dashboard)(rec, comToken(http.MethodGet, "/auth/dashboard?comissao_paga=true", token, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Estatisticas.TotalVendas)
}

func TestAlterarSenha(t *testing.T) {
	db, h := novoHandler(t)
	testutil.CriarVendedor(t, db, "Ana", "ana@x.com", "antiga")
	token := login(t, h, "ana@x.com", "antiga")
	alterar := h.Gate().Proteger(h.AlterarSenha)

	rec := httptest.NewRecorder()
	alterar(rec, comToken(http.MethodPut, "/auth/alterar-senha", token, `{"senha_atual":"errada","nova_senha":"nova"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"erro":"Senha atual incorreta"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	alterar(rec, comToken(http.MethodPut, "/auth/alterar-senha", token, `{"senha_atual":"antiga"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	alterar(rec, comToken(http.MethodPut, "/auth/alterar-senha", token, `{"senha_atual":"antiga","nova_senha":"nova"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	login(t, h, "ana@x.com", "nova")
	rec = post(h.Login, `{"email":"ana@x.com","senha":"antiga"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
