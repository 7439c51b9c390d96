package vendedor

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

const msgNaoEncontrado = "Vendedor não encontrado"

// Handler expõe o CRUD de vendedores (rotas abertas, sem token).
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /vendedores
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	vendedores, err := h.Repo.ListarTodos()
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	tabelas, err := h.Repo.TabelasPorVendedor()
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}

	out := make([]models.VendedorDetalhe, 0, len(vendedores))
	for _, v := range vendedores {
		out = append(out, v.Detalhe(tabelas[v.ID]))
	}
	utils.ResponderJSON(w, http.StatusOK, out)
}

// GET /vendedores/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}

	v, err := h.Repo.BuscarPorID(id)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	tabelas, err := h.Repo.ListarTabelas(id)
	if err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, v.Detalhe(tabelas))
}

// POST /vendedores
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarVendedorRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	req.NomeVendedor = strings.TrimSpace(req.NomeVendedor)
	req.Email = strings.TrimSpace(req.Email)
	if req.NomeVendedor == "" {
		utils.ResponderErro(w, http.StatusBadRequest, "Nome do vendedor é obrigatório")
		return
	}
	if err := utils.Validar(req); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}

	v := models.Vendedor{NomeVendedor: req.NomeVendedor, Ativo: true}
	if req.Ativo != nil {
		v.Ativo = *req.Ativo
	}
	if req.Email != "" {
		v.Email = &req.Email
	}
	if req.Senha != "" {
		if err := v.DefinirSenha(req.Senha); err != nil {
			utils.ResponderFalha(w, r, err, msgNaoEncontrado)
			return
		}
	}

	err := h.Repo.DB.Transaction(func(tx *gorm.DB) error {
		repo := h.Repo.WithDB(tx)
		if v.Email != nil {
			emUso, err := repo.EmailEmUso(*v.Email, 0)
			if err != nil {
				return err
			}
			if emUso {
				return ErrEmailJaCadastrado
			}
		}
		return repo.Criar(&v)
	})
	if err != nil {
		h.responderErro(w, r, err)
		return
	}

	utils.ResponderJSON(w, http.StatusCreated, v.Detalhe(nil))
}

// PUT /vendedores/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}

	var req atualizarVendedorRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}
	if req.Email != nil {
		*req.Email = strings.TrimSpace(*req.Email)
	}
	if err := utils.Validar(req); err != nil {
		utils.ResponderFalha(w, r, err, msgNaoEncontrado)
		return
	}

	var atualizado *models.Vendedor
	var tabelas []models.VendedorComissao
	err := h.Repo.DB.Transaction(func(tx *gorm.DB) error {
		repo := h.Repo.WithDB(tx)
		v, err := repo.BuscarPorID(id)
		if err != nil {
			return err
		}

		if req.NomeVendedor != nil {
			nome := strings.TrimSpace(*req.NomeVendedor)
			if nome == "" {
				return &utils.ErroValidacao{Mensagem: "Nome do vendedor é obrigatório"}
			}
			v.NomeVendedor = nome
		}
		if req.Email != nil {
			if *req.Email == "" {
				v.Email = nil
			} else {
				emUso, err := repo.EmailEmUso(*req.Email, id)
				if err != nil {
					return err
				}
				if emUso {
					return ErrEmailJaCadastrado
				}
				v.Email = req.Email
			}
		}
		if req.Ativo != nil {
			v.Ativo = *req.Ativo
		}

		if err := repo.Atualizar(v); err != nil {
			return err
		}
		atualizado = v
		tabelas, err = repo.ListarTabelas(id)
		return err
	})
	if err != nil {
		h.responderErro(w, r, err)
		return
	}

	utils.ResponderJSON(w, http.StatusOK, atualizado.Detalhe(tabelas))
}

// DELETE /vendedores/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}

	err := h.Repo.DB.Transaction(func(tx *gorm.DB) error {
		return h.Repo.WithDB(tx).Deletar(id)
	})
	if err != nil {
		h.responderErro(w, r, err)
		return
	}
	utils.ResponderMensagem(w, http.StatusOK, "Vendedor excluído com sucesso")
}

func (h *Handler) responderErro(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrVendedorComTabelas) || errors.Is(err, ErrEmailJaCadastrado) {
		utils.ResponderErro(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.ResponderFalha(w, r, err, msgNaoEncontrado)
}

func idDaRota(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return uint(id), true
}
