package importacao

import (
	"context"
	"errors"
	"fmt"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/KromaEnergia/api-vendas/internal/tabelacomissao"
	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/KromaEnergia/api-vendas/internal/venda"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const UsuarioPadrao = "Importação Excel"

type VendaImportada struct {
	Linha    int     `json:"linha"`
	Cliente  string  `json:"cliente"`
	Valor    float64 `json:"valor"`
	Comissao float64 `json:"comissao"`
	Vendedor string  `json:"vendedor"`
	Tabela   string  `json:"tabela"`
}

type Detalhes struct {
	Vendas []VendaImportada `json:"vendas"`
	Erros  []string         `json:"erros"`
}

type Resultado struct {
	Mensagem         string   `json:"mensagem"`
	VendasCriadas    int      `json:"vendas_criadas"`
	ErrosEncontrados int      `json:"erros_encontrados"`
	Detalhes         Detalhes `json:"detalhes"`
}

// Importador grava as linhas de uma planilha como vendas.
type Importador struct {
	DB *gorm.DB
}

func NewImportador(db *gorm.DB) *Importador {
	return &Importador{DB: db}
}

// Importar processa todas as linhas numa única transação. Linhas com erro
// entram no resultado e não interrompem as demais; cada linha roda sob um
// savepoint. A transação só é confirmada se ao menos uma venda foi criada.
func (i *Importador) Importar(ctx context.Context, p *Planilha) (*Resultado, error) {
	log := zerolog.Ctx(ctx)
	res := &Resultado{
		Mensagem: "Importação concluída",
		Detalhes: Detalhes{Vendas: []VendaImportada{}, Erros: []string{}},
	}

	tx := i.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	tabelas := tabelacomissao.NewRepository(tx)
	vendas := venda.NewRepository(tx)

	for _, l := range p.Linhas {
		sp := fmt.Sprintf("linha_%d", l.Numero)
		if err := tx.SavePoint(sp).Error; err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		importada, err := importarLinha(tabelas, vendas, l)
		if err != nil {
			if rbErr := tx.RollbackTo(sp).Error; rbErr != nil {
				_ = tx.Rollback()
				return nil, rbErr
			}
			res.Detalhes.Erros = append(res.Detalhes.Erros, fmt.Sprintf("Linha %d: %s", l.Numero, err.Error()))
			continue
		}
		res.Detalhes.Vendas = append(res.Detalhes.Vendas, *importada)
	}

	if len(res.Detalhes.Vendas) > 0 {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	} else {
		_ = tx.Rollback()
	}

	res.VendasCriadas = len(res.Detalhes.Vendas)
	res.ErrosEncontrados = len(res.Detalhes.Erros)
	log.Info().
		Int("linhas", len(p.Linhas)).
		Int("vendas_criadas", res.VendasCriadas).
		Int("erros", res.ErrosEncontrados).
		Msg("importação de vendas processada")
	return res, nil
}

// importarLinha valida e grava uma linha. O erro devolvido vira a mensagem
// da linha no resultado.
func importarLinha(tabelas *tabelacomissao.Repository, vendas *venda.Repository, l Linha) (*VendaImportada, error) {
	cpfBruto := l.Valor("cpf_cliente")
	nome := l.Valor("nome_cliente")
	valorBruto := l.Valor("valor_venda")
	if cpfBruto == "" || nome == "" || valorBruto == "" {
		return nil, errors.New("Dados obrigatórios faltantes")
	}

	cpf, err := utils.FormatarCPF(cpfBruto)
	if err != nil {
		return nil, fmt.Errorf("CPF inválido (%s)", cpfBruto)
	}

	valor, err := parseValor(valorBruto)
	if err != nil {
		return nil, err
	}

	nomeVendedor, nomeTabela := l.Valor("vendedor"), l.Valor("tabela_comissao")
	tab, err := tabelas.BuscarPorVendedorETabela(nomeVendedor, nomeTabela)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Vendedor \"%s\" com tabela \"%s\" não encontrado", nomeVendedor, nomeTabela)
	}
	if err != nil {
		return nil, fmt.Errorf("Erro ao processar - %w", err)
	}

	data, err := parseDataVenda(l.Valor("data_venda"), l.Tipo("data_venda"))
	if err != nil {
		return nil, err
	}

	usuario := l.Valor("usuario_cadastro")
	if usuario == "" {
		usuario = UsuarioPadrao
	}

	v := &models.Venda{
		CPFCliente:         cpf,
		NomeCliente:        nome,
		DataVenda:          data,
		ValorVenda:         valor,
		IDVendedorComissao: tab.ID,
		UsuarioCadastro:    usuario,
	}
	if err := vendas.Criar(v); err != nil {
		return nil, fmt.Errorf("Erro ao processar - %w", err)
	}

	// Comissão calculada depois de gravar, com a tabela resolvida.
	v.VendedorComissao = tab
	v.CalcularComissao()
	if err := vendas.DB.Model(v).Update("valor_comissao", v.ValorComissao).Error; err != nil {
		return nil, fmt.Errorf("Erro ao processar - %w", err)
	}

	nomeResolvido := nomeVendedor
	if tab.Vendedor != nil {
		nomeResolvido = tab.Vendedor.NomeVendedor
	}
	return &VendaImportada{
		Linha:    l.Numero,
		Cliente:  v.NomeCliente,
		Valor:    v.ValorVenda,
		Comissao: v.ValorComissao,
		Vendedor: nomeResolvido,
		Tabela:   tab.NomeTabela,
	}, nil
}
