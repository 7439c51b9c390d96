package venda

import "github.com/KromaEnergia/api-vendas/internal/models"

type criarVendaRequest struct {
	CPFCliente         string   `json:"cpf_cliente" validate:"required"`
	NomeCliente        string   `json:"nome_cliente" validate:"required"`
	DataVenda          string   `json:"data_venda"`
	ValorVenda         *float64 `json:"valor_venda" validate:"required,gt=0"`
	IDVendedorComissao uint     `json:"id_vendedor_comissao" validate:"required"`
	ComissaoPaga       bool     `json:"comissao_paga"`
	UsuarioCadastro    string   `json:"usuario_cadastro"`
}

// Campos ausentes no JSON não são alterados.
type atualizarVendaRequest struct {
	CPFCliente         *string  `json:"cpf_cliente"`
	NomeCliente        *string  `json:"nome_cliente"`
	DataVenda          *string  `json:"data_venda"`
	ValorVenda         *float64 `json:"valor_venda" validate:"omitempty,gt=0"`
	IDVendedorComissao *uint    `json:"id_vendedor_comissao"`
	ComissaoPaga       *bool    `json:"comissao_paga"`
	UsuarioCadastro    *string  `json:"usuario_cadastro"`
}

type comissaoPagaRequest struct {
	ComissaoPaga *bool `json:"comissao_paga" validate:"required"`
}

// RelatorioResponse é o corpo de GET /relatorio/vendas.
type RelatorioResponse struct {
	Vendas []models.VendaDTO `json:"vendas"`
	Resumo Estatisticas      `json:"resumo"`
}
