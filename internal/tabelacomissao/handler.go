package tabelacomissao

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/gorilla/mux"
)

const msgNaoEncontrada = "Tabela de comissão não encontrada"

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type criarTabelaRequest struct {
	IDVendedor          uint     `json:"id_vendedor" validate:"required"`
	NomeTabela          string   `json:"nome_tabela" validate:"required"`
	PorcentagemComissao *float64 `json:"porcentagem_comissao" validate:"required,gte=0"`
}

type atualizarTabelaRequest struct {
	NomeTabela          *string  `json:"nome_tabela"`
	PorcentagemComissao *float64 `json:"porcentagem_comissao" validate:"omitempty,gte=0"`
}

// GET /comissoes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListarTodas()
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, dtos(list))
}

// GET /vendedores/{id}/comissoes
func (h *Handler) ListarPorVendedor(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	existe, err := h.Repo.VendedorExiste(id)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if !existe {
		utils.ResponderErro(w, http.StatusNotFound, "Vendedor não encontrado")
		return
	}

	list, err := h.Repo.ListarPorVendedor(id)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, dtos(list))
}

// GET /comissoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	t, err := h.Repo.BuscarPorID(id)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, t.DTO())
}

// POST /comissoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in criarTabelaRequest
	if err := utils.DecodificarJSON(r, &in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	in.NomeTabela = strings.TrimSpace(in.NomeTabela)
	if err := utils.Validar(in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		utils.ResponderFalha(w, r, tx.Error, msgNaoEncontrada)
		return
	}
	repo := h.Repo.WithDB(tx)

	existe, err := repo.VendedorExiste(in.IDVendedor)
	if err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if !existe {
		_ = tx.Rollback()
		utils.ResponderErro(w, http.StatusBadRequest, "Vendedor não encontrado")
		return
	}

	t := &models.VendedorComissao{
		IDVendedor:          in.IDVendedor,
		NomeTabela:          in.NomeTabela,
		PorcentagemComissao: *in.PorcentagemComissao,
	}
	if err := repo.Criar(t); err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	criada, err := repo.BuscarPorID(t.ID)
	if err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, criada.DTO())
}

// PUT /comissoes/{id}
// Vendas já gravadas mantêm o valor de comissão calculado na criação.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	var in atualizarTabelaRequest
	if err := utils.DecodificarJSON(r, &in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if err := utils.Validar(in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		utils.ResponderFalha(w, r, tx.Error, msgNaoEncontrada)
		return
	}
	repo := h.Repo.WithDB(tx)

	t, err := repo.BuscarPorID(id)
	if err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if in.NomeTabela != nil {
		nome := strings.TrimSpace(*in.NomeTabela)
		if nome == "" {
			_ = tx.Rollback()
			utils.ResponderErro(w, http.StatusBadRequest, "nome_tabela é obrigatório")
			return
		}
		t.NomeTabela = nome
	}
	if in.PorcentagemComissao != nil {
		t.PorcentagemComissao = *in.PorcentagemComissao
	}

	if err := repo.Atualizar(t); err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, t.DTO())
}

// DELETE /comissoes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		utils.ResponderFalha(w, r, tx.Error, msgNaoEncontrada)
		return
	}
	if err := h.Repo.WithDB(tx).Deletar(id); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, ErrTabelaComVendas) {
			utils.ResponderErro(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderMensagem(w, http.StatusOK, "Tabela de comissão excluída com sucesso")
}

func dtos(list []models.VendedorComissao) []models.VendedorComissaoDTO {
	out := make([]models.VendedorComissaoDTO, 0, len(list))
	for _, t := range list {
		out = append(out, t.DTO())
	}
	return out
}

func idDaRota(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return uint(id), true
}
