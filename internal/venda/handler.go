package venda

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const (
	msgNaoEncontrada       = "Venda não encontrada"
	msgTabelaNaoEncontrada = "Tabela de comissão não encontrada"
	usuarioPadrao          = "Sistema"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /vendas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f, err := FiltrosDaQuery(r.URL.Query())
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	vendas, err := h.Repo.Listar(f)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, models.VendasDTO(vendas))
}

// GET /relatorio/vendas
func (h *Handler) Relatorio(w http.ResponseWriter, r *http.Request) {
	f, err := FiltrosDaQuery(r.URL.Query())
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	vendas, err := h.Repo.Listar(f)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, RelatorioResponse{
		Vendas: models.VendasDTO(vendas),
		Resumo: CalcularEstatisticas(vendas),
	})
}

// GET /vendas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	v, err := h.Repo.BuscarPorID(id)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, v.DTO())
}

// POST /vendas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in criarVendaRequest
	if err := utils.DecodificarJSON(r, &in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	in.NomeCliente = strings.TrimSpace(in.NomeCliente)
	if err := utils.Validar(in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	cpf, err := utils.FormatarCPF(in.CPFCliente)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "CPF inválido")
		return
	}

	v := &models.Venda{
		CPFCliente:         cpf,
		NomeCliente:        in.NomeCliente,
		ValorVenda:         *in.ValorVenda,
		IDVendedorComissao: in.IDVendedorComissao,
		ComissaoPaga:       in.ComissaoPaga,
		UsuarioCadastro:    in.UsuarioCadastro,
	}
	if v.UsuarioCadastro == "" {
		v.UsuarioCadastro = usuarioPadrao
	}
	if in.DataVenda != "" {
		d, err := models.ParseData(in.DataVenda)
		if err != nil {
			utils.ResponderErro(w, http.StatusBadRequest, "data_venda inválida, use o formato AAAA-MM-DD")
			return
		}
		v.DataVenda = d
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		utils.ResponderFalha(w, r, tx.Error, msgNaoEncontrada)
		return
	}
	repo := h.Repo.WithDB(tx)

	tab, err := repo.BuscarTabela(v.IDVendedorComissao)
	if err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, naoEncontradaComo400(err), msgNaoEncontrada)
		return
	}
	v.VendedorComissao = tab
	v.CalcularComissao()

	if err := repo.Criar(v); err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, v.DTO())
}

// PUT /vendas/{id}
// A comissão só é recalculada quando valor_venda ou a tabela mudam.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	var in atualizarVendaRequest
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

	v, err := repo.BuscarPorID(id)
	if err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}

	if err := aplicarAtualizacao(v, in); err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}

	recalcular := false
	if in.ValorVenda != nil && *in.ValorVenda != v.ValorVenda {
		v.ValorVenda = *in.ValorVenda
		recalcular = true
	}
	if in.IDVendedorComissao != nil && *in.IDVendedorComissao != v.IDVendedorComissao {
		tab, err := repo.BuscarTabela(*in.IDVendedorComissao)
		if err != nil {
			_ = tx.Rollback()
			utils.ResponderFalha(w, r, naoEncontradaComo400(err), msgNaoEncontrada)
			return
		}
		v.IDVendedorComissao = tab.ID
		v.VendedorComissao = tab
		recalcular = true
	}
	if recalcular {
		v.CalcularComissao()
	}

	if err := repo.Atualizar(v); err != nil {
		_ = tx.Rollback()
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, v.DTO())
}

// PATCH /vendas/{id}/comissao-paga
func (h *Handler) MarcarComissaoPaga(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	var in comissaoPagaRequest
	if err := utils.DecodificarJSON(r, &in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if err := utils.Validar(in); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}

	v, err := h.Repo.BuscarPorID(id)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	if err := h.Repo.DB.Model(&models.Venda{}).Where("id = ?", id).
		Update("comissao_paga", *in.ComissaoPaga).Error; err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	v.ComissaoPaga = *in.ComissaoPaga
	utils.ResponderJSON(w, http.StatusOK, v.DTO())
}

// DELETE /vendas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Deletar(id); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrada)
		return
	}
	utils.ResponderMensagem(w, http.StatusOK, "Venda excluída com sucesso")
}

/* ============================== Utilidades ============================== */

// aplicarAtualizacao copia os campos simples; valor e tabela ficam com o handler.
func aplicarAtualizacao(v *models.Venda, in atualizarVendaRequest) error {
	if in.CPFCliente != nil {
		cpf, err := utils.FormatarCPF(*in.CPFCliente)
		if err != nil {
			return &utils.ErroValidacao{Mensagem: "CPF inválido"}
		}
		v.CPFCliente = cpf
	}
	if in.NomeCliente != nil {
		nome := strings.TrimSpace(*in.NomeCliente)
		if nome == "" {
			return &utils.ErroValidacao{Mensagem: "nome_cliente é obrigatório"}
		}
		v.NomeCliente = nome
	}
	if in.DataVenda != nil {
		d, err := models.ParseData(*in.DataVenda)
		if err != nil {
			return &utils.ErroValidacao{Mensagem: "data_venda inválida, use o formato AAAA-MM-DD"}
		}
		v.DataVenda = d
	}
	if in.ComissaoPaga != nil {
		v.ComissaoPaga = *in.ComissaoPaga
	}
	if in.UsuarioCadastro != nil {
		v.UsuarioCadastro = *in.UsuarioCadastro
	}
	return nil
}

// Tabela inexistente no corpo da requisição é erro do cliente, não 404.
func naoEncontradaComo400(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &utils.ErroValidacao{Mensagem: msgTabelaNaoEncontrada}
	}
	return err
}

func idDaRota(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return uint(id), true
}
