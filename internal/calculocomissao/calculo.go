// Package calculocomissao concentra a regra de comissão sobre vendas.
package calculocomissao

// Calcular devolve a comissão de uma venda: valor * (porcentagem / 100).
// Não há arredondamento; o valor é gravado como calculado.
func Calcular(valorVenda, porcentagem float64) float64 {
	return valorVenda * (porcentagem / 100)
}
