package db

import (
	"github.com/KromaEnergia/api-vendas/internal/models"
	"gorm.io/gorm"
)

// Migrate cria/atualiza as tabelas vendedor, vendedor_comissao e venda.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.Todos()...)
}
