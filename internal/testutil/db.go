// Package testutil monta bancos sqlite em memória e dados de apoio para os testes.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NovoBanco abre um sqlite em memória exclusivo do teste, já migrado.
// Uma única conexão mantém o banco vivo durante o teste.
func NovoBanco(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "falha ao abrir sqlite em memória")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.Todos()...))
	return db
}

// CriarVendedor grava um vendedor ativo; senha vazia deixa o vendedor sem login.
func CriarVendedor(t *testing.T, db *gorm.DB, nome, email, senha string) *models.Vendedor {
	t.Helper()

	v := &models.Vendedor{NomeVendedor: nome, Ativo: true}
	if email != "" {
		v.Email = &email
	}
	if senha != "" {
		require.NoError(t, v.DefinirSenha(senha))
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

func CriarTabela(t *testing.T, db *gorm.DB, vendedorID uint, nome string, pct float64) *models.VendedorComissao {
	t.Helper()

	tab := &models.VendedorComissao{IDVendedor: vendedorID, NomeTabela: nome, PorcentagemComissao: pct}
	require.NoError(t, db.Create(tab).Error)
	return tab
}

// CriarVenda grava uma venda com a comissão já calculada pela tabela informada.
func CriarVenda(t *testing.T, db *gorm.DB, tab *models.VendedorComissao, valor float64, data time.Time, paga bool) *models.Venda {
	t.Helper()

	v := &models.Venda{
		CPFCliente:         "123.456.789-01",
		NomeCliente:        "Cliente Teste",
		DataVenda:          data,
		ValorVenda:         valor,
		IDVendedorComissao: tab.ID,
		VendedorComissao:   tab,
		ComissaoPaga:       paga,
		UsuarioCadastro:    "teste",
	}
	v.CalcularComissao()
	require.NoError(t, db.Omit("VendedorComissao").Create(v).Error)
	return v
}

// ContarVendas devolve o total de linhas na tabela venda.
func ContarVendas(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Venda{}).Count(&n).Error)
	return n
}
