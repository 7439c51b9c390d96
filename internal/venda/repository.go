// internal/venda/repository.go
package venda

import (
	"strings"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de vendas.
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

// Criar grava a venda sem tocar na tabela de comissão associada.
func (r *Repository) Criar(v *models.Venda) error {
	return r.DB.Omit("VendedorComissao").Create(v).Error
}

func (r *Repository) Atualizar(v *models.Venda) error {
	return r.DB.Omit("VendedorComissao").Save(v).Error
}

func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&models.Venda{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BuscarPorID carrega a venda com tabela de comissão e vendedor.
func (r *Repository) BuscarPorID(id uint) (*models.Venda, error) {
	var v models.Venda
	if err := r.DB.Preload("VendedorComissao.Vendedor").First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// BuscarTabela carrega a tabela de comissão (com vendedor) usada no cálculo.
func (r *Repository) BuscarTabela(id uint) (*models.VendedorComissao, error) {
	var t models.VendedorComissao
	if err := r.DB.Preload("Vendedor").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

/* ========================= Consultas ========================= */

// Listar aplica os filtros e ordena da venda mais recente para a mais antiga.
func (r *Repository) Listar(f Filtros) ([]models.Venda, error) {
	q := r.DB.Model(&models.Venda{}).
		Joins("JOIN vendedor_comissao ON vendedor_comissao.id = venda.id_vendedor_comissao").
		Joins("JOIN vendedor ON vendedor.id = vendedor_comissao.id_vendedor").
		Preload("VendedorComissao.Vendedor")

	if f.DataInicio != nil {
		q = q.Where("venda.data_venda >= ?", *f.DataInicio)
	}
	if f.DataFim != nil {
		q = q.Where("venda.data_venda <= ?", *f.DataFim)
	}
	if f.ComissaoPaga != nil {
		q = q.Where("venda.comissao_paga = ?", *f.ComissaoPaga)
	}
	if f.IDVendedor != nil {
		q = q.Where("vendedor.id = ?", *f.IDVendedor)
	}
	if f.NomeVendedor != "" {
		q = q.Where("LOWER(vendedor.nome_vendedor) LIKE ?", "%"+strings.ToLower(f.NomeVendedor)+"%")
	}

	var vendas []models.Venda
	err := q.Order("venda.data_venda DESC").Order("venda.id DESC").Find(&vendas).Error
	return vendas, err
}

// ListarDoVendedor devolve as vendas de todas as tabelas do vendedor.
func (r *Repository) ListarDoVendedor(vendedorID uint, f Filtros) ([]models.Venda, error) {
	f.IDVendedor = &vendedorID
	f.NomeVendedor = ""
	return r.Listar(f)
}
