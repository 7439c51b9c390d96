package venda

import "github.com/KromaEnergia/api-vendas/internal/models"

// Estatisticas resume um conjunto de vendas.
// ComissoesPendentes é sempre TotalComissoes - ComissoesPagas.
type Estatisticas struct {
	TotalVendas        int     `json:"total_vendas"`
	TotalValorVendas   float64 `json:"total_valor_vendas"`
	TotalComissoes     float64 `json:"total_comissoes"`
	ComissoesPagas     float64 `json:"comissoes_pagas"`
	ComissoesPendentes float64 `json:"comissoes_pendentes"`
}

func CalcularEstatisticas(vendas []models.Venda) Estatisticas {
	e := Estatisticas{TotalVendas: len(vendas)}
	for _, v := range vendas {
		e.TotalValorVendas += v.ValorVenda
		e.TotalComissoes += v.ValorComissao
		if v.ComissaoPaga {
			e.ComissoesPagas += v.ValorComissao
		}
	}
	e.ComissoesPendentes = e.TotalComissoes - e.ComissoesPagas
	return e
}
