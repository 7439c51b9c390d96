package importacao

import (
	"fmt"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	AbaVendas     = "Vendas"
	AbaInstrucoes = "Instruções"
	AbaVendedores = "Vendedores_Disponíveis"

	ArquivoTemplate = "template_vendas.xlsx"
	DataExemplo     = "2025-06-29"
)

var cabecalhoVendas = []interface{}{
	"cpf_cliente", "nome_cliente", "data_venda", "valor_venda", "vendedor", "tabela_comissao", "usuario_cadastro",
}

var instrucoes = [][]interface{}{
	{"Campo", "Descrição", "Obrigatório", "Exemplo"},
	{"cpf_cliente", "CPF do cliente (formato: XXX.XXX.XXX-XX ou apenas números)", "Sim", "123.456.789-00"},
	{"nome_cliente", "Nome completo do cliente", "Sim", "João Silva"},
	{"data_venda", "Data da venda (formato: AAAA-MM-DD)", "Sim", "2025-06-29"},
	{"valor_venda", "Valor da venda (formato: 1000.50)", "Sim", "1500.00"},
	{"vendedor", "Nome exato do vendedor (deve existir no sistema)", "Sim", "Ana Silva"},
	{"tabela_comissao", "Nome da tabela de comissão (deve existir para o vendedor)", "Sim", "Gold"},
	{"usuario_cadastro", "Usuário que está cadastrando (opcional)", "Não", "admin"},
}

// GerarTemplate monta a planilha modelo. As linhas de exemplo usam as três
// primeiras tabelas cadastradas; sem tabelas, uma linha genérica.
// As tabelas precisam vir com Vendedor carregado.
func GerarTemplate(tabelas []models.VendedorComissao) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := preencherTemplate(f, tabelas); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func preencherTemplate(f *excelize.File, tabelas []models.VendedorComissao) error {
	if err := f.SetSheetName("Sheet1", AbaVendas); err != nil {
		return err
	}

	if err := escreverLinha(f, AbaVendas, 1, cabecalhoVendas); err != nil {
		return err
	}
	exemplos := linhasExemplo(tabelas)
	for i, linha := range exemplos {
		if err := escreverLinha(f, AbaVendas, i+2, linha); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(AbaVendas, "A", "G", 20); err != nil {
		return err
	}

	if _, err := f.NewSheet(AbaInstrucoes); err != nil {
		return err
	}
	for i, linha := range instrucoes {
		if err := escreverLinha(f, AbaInstrucoes, i+1, linha); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(AbaInstrucoes, "B", "B", 60); err != nil {
		return err
	}

	if _, err := f.NewSheet(AbaVendedores); err != nil {
		return err
	}
	if err := escreverLinha(f, AbaVendedores, 1, []interface{}{"Vendedor", "Tabela_Comissao", "Porcentagem"}); err != nil {
		return err
	}
	for i, t := range tabelas {
		linha := []interface{}{nomeVendedor(t), t.NomeTabela, fmt.Sprintf("%g%%", t.PorcentagemComissao)}
		if err := escreverLinha(f, AbaVendedores, i+2, linha); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return nil
}

func linhasExemplo(tabelas []models.VendedorComissao) [][]interface{} {
	if len(tabelas) == 0 {
		return [][]interface{}{
			{"123.456.789-00", "Cliente Exemplo", DataExemplo, 1000.00, "Nome do Vendedor", "Nome da Tabela", "admin"},
		}
	}
	n := len(tabelas)
	if n > 3 {
		n = 3
	}
	out := make([][]interface{}, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, []interface{}{
			fmt.Sprintf("123.456.789-%02d", i),
			fmt.Sprintf("Cliente Exemplo %d", i+1),
			DataExemplo,
			1000.00 * float64(i+1),
			nomeVendedor(tabelas[i]),
			tabelas[i].NomeTabela,
			"admin",
		})
	}
	return out
}

func nomeVendedor(t models.VendedorComissao) string {
	if t.Vendedor == nil {
		return ""
	}
	return t.Vendedor.NomeVendedor
}

func escreverLinha(f *excelize.File, aba string, linha int, valores []interface{}) error {
	cel, err := excelize.CoordinatesToCellName(1, linha)
	if err != nil {
		return err
	}
	return f.SetSheetRow(aba, cel, &valores)
}
