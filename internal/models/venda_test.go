package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularComissao(t *testing.T) {
	v := Venda{
		ValorVenda:       2000,
		VendedorComissao: &VendedorComissao{PorcentagemComissao: 10},
	}

	assert.InDelta(t, 200.0, v.CalcularComissao(), 1e-9)
	assert.InDelta(t, 200.0, v.CalcularComissao(), 1e-9, "recalcular não acumula")
	assert.InDelta(t, 200.0, v.ValorComissao, 1e-9)
}

func TestCalcularComissao_SemTabela(t *testing.T) {
	v := Venda{ValorVenda: 2000, ValorComissao: 42}

	assert.Equal(t, 42.0, v.CalcularComissao())
}

func TestVendaDTO(t *testing.T) {
	v := Venda{
		ID:          7,
		CPFCliente:  "123.456.789-01",
		NomeCliente: "Maria",
		DataVenda:   time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC),
		ValorVenda:  1000,
		VendedorComissao: &VendedorComissao{
			NomeTabela:          "Gold",
			PorcentagemComissao: 10,
			Vendedor:            &Vendedor{NomeVendedor: "Ana Silva"},
		},
	}

	dto := v.DTO()
	require.NotNil(t, dto.DataVenda)
	assert.Equal(t, "2025-06-29", *dto.DataVenda)
	require.NotNil(t, dto.NomeVendedor)
	assert.Equal(t, "Ana Silva", *dto.NomeVendedor)
	assert.Equal(t, "Gold", *dto.NomeTabela)
	assert.Equal(t, 10.0, *dto.PorcentagemComissao)
}

func TestParseData(t *testing.T) {
	d, err := ParseData("2025-06-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseData("29/06/2025")
	assert.Error(t, err)
}

func TestVendedorPublico_SemEmail(t *testing.T) {
	v := Vendedor{ID: 1, NomeVendedor: "Ana", Ativo: true}
	assert.Equal(t, "", v.Publico().Email)
}
