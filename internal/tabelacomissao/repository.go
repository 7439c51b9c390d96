// internal/tabelacomissao/repository.go
package tabelacomissao

import (
	"errors"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"gorm.io/gorm"
)

var ErrTabelaComVendas = errors.New("Não é possível excluir tabela de comissão com vendas associadas")

// Repository encapsula o acesso a dados das tabelas de comissão.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

/* ========================= CRUD ========================= */

func (r *Repository) Criar(t *models.VendedorComissao) error {
	return r.DB.Omit("Vendedor").Create(t).Error
}

// BuscarPorID carrega a tabela já com o vendedor.
func (r *Repository) BuscarPorID(id uint) (*models.VendedorComissao, error) {
	var t models.VendedorComissao
	if err := r.DB.Preload("Vendedor").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListarTodas() ([]models.VendedorComissao, error) {
	var list []models.VendedorComissao
	err := r.DB.Preload("Vendedor").Order("id ASC").Find(&list).Error
	return list, err
}

func (r *Repository) ListarPorVendedor(vendedorID uint) ([]models.VendedorComissao, error) {
	var list []models.VendedorComissao
	err := r.DB.Preload("Vendedor").
		Where("id_vendedor = ?", vendedorID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *Repository) Atualizar(t *models.VendedorComissao) error {
	return r.DB.Omit("Vendedor").Save(t).Error
}

// Deletar remove a tabela se nenhuma venda a referenciar.
func (r *Repository) Deletar(id uint) error {
	if _, err := r.BuscarPorID(id); err != nil {
		return err
	}
	var n int64
	if err := r.DB.Model(&models.Venda{}).Where("id_vendedor_comissao = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrTabelaComVendas
	}
	return r.DB.Delete(&models.VendedorComissao{}, id).Error
}

/* ========================= Consultas auxiliares ========================= */

func (r *Repository) VendedorExiste(id uint) (bool, error) {
	var n int64
	err := r.DB.Model(&models.Vendedor{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// BuscarPorVendedorETabela resolve o par (nome do vendedor, nome da tabela)
// usado na importação. Comparação exata, sem normalização.
func (r *Repository) BuscarPorVendedorETabela(nomeVendedor, nomeTabela string) (*models.VendedorComissao, error) {
	var t models.VendedorComissao
	err := r.DB.Preload("Vendedor").
		Joins("JOIN vendedor ON vendedor.id = vendedor_comissao.id_vendedor").
		Where("vendedor.nome_vendedor = ? AND vendedor_comissao.nome_tabela = ?", nomeVendedor, nomeTabela).
		Order("vendedor_comissao.id ASC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
