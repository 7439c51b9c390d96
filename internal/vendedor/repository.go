package vendedor

import (
	"errors"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"gorm.io/gorm"
)

var (
	ErrVendedorComTabelas = errors.New("Não é possível excluir vendedor com configurações de comissão associadas")
	ErrEmailJaCadastrado  = errors.New("Email já cadastrado")
)

// Repository encapsula o acesso a dados de vendedores.
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

func (r *Repository) Criar(v *models.Vendedor) error {
	return r.DB.Create(v).Error
}

func (r *Repository) BuscarPorID(id uint) (*models.Vendedor, error) {
	var v models.Vendedor
	if err := r.DB.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) BuscarPorEmail(email string) (*models.Vendedor, error) {
	var v models.Vendedor
	if err := r.DB.Where("email = ?", email).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// EmailEmUso informa se outro vendedor (diferente de exceto) já usa o email.
func (r *Repository) EmailEmUso(email string, exceto uint) (bool, error) {
	var n int64
	err := r.DB.Model(&models.Vendedor{}).
		Where("email = ? AND id <> ?", email, exceto).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) ListarTodos() ([]models.Vendedor, error) {
	var list []models.Vendedor
	err := r.DB.Order("id ASC").Find(&list).Error
	return list, err
}

// Atualizar salva todos os campos do vendedor (Save exige PK).
func (r *Repository) Atualizar(v *models.Vendedor) error {
	return r.DB.Save(v).Error
}

// Deletar remove o vendedor se ele não possuir tabelas de comissão.
func (r *Repository) Deletar(id uint) error {
	if _, err := r.BuscarPorID(id); err != nil {
		return err
	}
	n, err := r.ContarTabelas(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrVendedorComTabelas
	}
	return r.DB.Delete(&models.Vendedor{}, id).Error
}

func (r *Repository) ContarTabelas(id uint) (int64, error) {
	var n int64
	err := r.DB.Model(&models.VendedorComissao{}).Where("id_vendedor = ?", id).Count(&n).Error
	return n, err
}

// ListarTabelas busca as tabelas de comissão de um vendedor.
func (r *Repository) ListarTabelas(id uint) ([]models.VendedorComissao, error) {
	var list []models.VendedorComissao
	err := r.DB.Where("id_vendedor = ?", id).Order("id ASC").Find(&list).Error
	return list, err
}

// TabelasPorVendedor agrupa todas as tabelas de comissão por id do vendedor.
func (r *Repository) TabelasPorVendedor() (map[uint][]models.VendedorComissao, error) {
	var list []models.VendedorComissao
	if err := r.DB.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(map[uint][]models.VendedorComissao)
	for _, t := range list {
		out[t.IDVendedor] = append(out[t.IDVendedor], t)
	}
	return out, nil
}
