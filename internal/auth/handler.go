package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/KromaEnergia/api-vendas/internal/venda"
	"github.com/KromaEnergia/api-vendas/internal/vendedor"
	"github.com/rs/zerolog/hlog"
	"gorm.io/gorm"
)

const msgNaoEncontrado = "Vendedor não encontrado"

type Handler struct {
	Tokens     *Tokens
	Vendedores *vendedor.Repository
	Vendas     *venda.Repository
}

func NewHandler(tokens *Tokens, vendedores *vendedor.Repository, vendas *venda.Repository) *Handler {
	return &Handler{Tokens: tokens, Vendedores: vendedores, Vendas: vendas}
}

// Gate devolve o middleware de autenticação ligado aos mesmos repositórios.
func (h *Handler) Gate() *Gate {
	return &Gate{Tokens: h.Tokens, Vendedores: h.Vendedores}
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := utils.DecodificarJSON(r, &in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Senha == "" {
		utils.ResponderErro(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	v, err := h.Vendedores.BuscarPorEmail(in.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	if v == nil || !v.VerificarSenha(in.Senha) {
		utils.ResponderErro(w, http.StatusUnauthorized, "Email ou senha incorretos")
		return
	}
	if !v.Ativo {
		utils.ResponderErro(w, http.StatusUnauthorized, "Conta desativada. Entre em contato com o administrador")
		return
	}

	token, err := h.Tokens.Gerar(v.ID)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	hlog.FromRequest(r).Info().Uint("vendedor_id", v.ID).Msg("login realizado")

	utils.ResponderJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Vendedor: v.Publico(),
		Mensagem: "Login realizado com sucesso",
	})
}

// POST /auth/registro
func (h *Handler) Registro(w http.ResponseWriter, r *http.Request) {
	var in registroRequest
	if err := utils.DecodificarJSON(r, &in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	in.NomeVendedor = strings.TrimSpace(in.NomeVendedor)
	in.Email = strings.TrimSpace(in.Email)
	if err := utils.Validar(in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}

	v := &models.Vendedor{NomeVendedor: in.NomeVendedor, Email: &in.Email, Ativo: true}
	if err := v.DefinirSenha(in.Senha); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}

	tx := h.Vendedores.DB.Begin()
	if tx.Error != nil {
		utils.ResponderFalha(w, r, tx.Error, msgNaoEncontrado)
		return
	}
	repo := h.Vendedores.WithDB(tx)

	emUso, err := repo.EmailEmUso(in.Email, 0)
	if err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	if emUso {
		_ = tx.Rollback()
		utils.ResponderErro(w, http.StatusBadRequest, vendedor.ErrEmailJaCadastrado.Error())
		return
	}
	if err := repo.Criar(v); err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}

	utils.ResponderJSON(w, http.StatusCreated, RegistroResponse{
		Vendedor: v.Publico(),
		Mensagem: "Vendedor cadastrado com sucesso",
	})
}

// GET /auth/perfil
func (h *Handler) Perfil(w http.ResponseWriter, r *http.Request, v *models.Vendedor) {
	tabelas, err := h.Vendedores.ListarTabelas(v.ID)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, v.Detalhe(tabelas))
}

// GET /auth/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request, v *models.Vendedor) {
	f, err := venda.FiltrosDaQuery(r.URL.Query())
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	vendas, err := h.Vendas.ListarDoVendedor(v.ID, f)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}

	utils.ResponderJSON(w, http.StatusOK, DashboardResponse{
		Vendedor:     v.Publico(),
		Vendas:       models.VendasDTO(vendas),
		Estatisticas: venda.CalcularEstatisticas(vendas),
	})
}

// PUT /auth/alterar-senha
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request, v *models.Vendedor) {
	var in alterarSenhaRequest
	if err := utils.DecodificarJSON(r, &in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	if in.SenhaAtual == "" || in.NovaSenha == "" {
		utils.ResponderErro(w, http.StatusBadRequest, "Senha atual e nova senha são obrigatórias")
		return
	}
	if !v.VerificarSenha(in.SenhaAtual) {
		utils.ResponderErro(w, http.StatusBadRequest, "Senha atual incorreta")
		return
	}
	if err := v.DefinirSenha(in.NovaSenha); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}

	tx := h.Vendedores.DB.Begin()
	if tx.Error != nil {
		utils.ResponderFalha(w, r, tx.Error, msgNaoEncontrado)
		return
	}
	if err := tx.Model(&models.Vendedor{}).Where("id = ?", v.ID).Update("senha_hash", v.SenhaHash).Error; err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	utils.ResponderMensagem(w, http.StatusOK, "Senha alterada com sucesso")
}
