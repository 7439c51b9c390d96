package importacao

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Colunas que o cabeçalho da planilha precisa conter.
var ColunasObrigatorias = []string{
	"cpf_cliente", "nome_cliente", "data_venda", "valor_venda", "vendedor", "tabela_comissao",
}

// ErrColunasFaltantes indica cabeçalho incompleto.
type ErrColunasFaltantes struct {
	Colunas []string
}

func (e *ErrColunasFaltantes) Error() string {
	return "Colunas obrigatórias faltantes: " + strings.Join(e.Colunas, ", ")
}

var ErrPlanilhaVazia = errors.New("planilha sem cabeçalho")

// Linha guarda os valores crus de uma linha, indexados pelo nome da coluna.
// Numero é o número da linha no Excel (cabeçalho = 1).
type Linha struct {
	Numero  int
	Valores map[string]string
	Tipos   map[string]excelize.CellType
}

func (l Linha) Valor(coluna string) string {
	return strings.TrimSpace(l.Valores[coluna])
}

// Tipo devolve o tipo da célula; CellTypeUnset quando ausente.
func (l Linha) Tipo(coluna string) excelize.CellType {
	return l.Tipos[coluna]
}

func (l Linha) vazia() bool {
	for _, v := range l.Valores {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type Planilha struct {
	Colunas []string
	Linhas  []Linha
}

// LerPlanilha lê a aba ativa de um .xlsx. Células vêm sem formatação
// (datas como número serial do Excel, valores sem separador de milhar).
func LerPlanilha(r io.Reader) (*Planilha, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha: %w", err)
	}
	defer f.Close()

	aba := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(aba, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("ler aba %q: %w", aba, err)
	}
	if len(rows) == 0 {
		return nil, ErrPlanilhaVazia
	}

	p := &Planilha{}
	indices := make(map[string]int)
	for i, cel := range rows[0] {
		nome := strings.TrimSpace(cel)
		if nome == "" {
			continue
		}
		if _, ok := indices[nome]; !ok {
			indices[nome] = i
			p.Colunas = append(p.Colunas, nome)
		}
	}

	var faltantes []string
	for _, c := range ColunasObrigatorias {
		if _, ok := indices[c]; !ok {
			faltantes = append(faltantes, c)
		}
	}
	if len(faltantes) > 0 {
		return nil, &ErrColunasFaltantes{Colunas: faltantes}
	}

	for n, row := range rows[1:] {
		l := Linha{
			Numero:  n + 2,
			Valores: make(map[string]string, len(indices)),
			Tipos:   make(map[string]excelize.CellType, len(indices)),
		}
		for nome, i := range indices {
			if i < len(row) {
				l.Valores[nome] = row[i]
			}
		}
		if l.vazia() {
			continue
		}
		for nome, i := range indices {
			if l.Valores[nome] == "" {
				continue
			}
			cel, err := excelize.CoordinatesToCellName(i+1, l.Numero)
			if err != nil {
				return nil, err
			}
			tipo, err := f.GetCellType(aba, cel)
			if err != nil {
				return nil, fmt.Errorf("ler tipo de %s: %w", cel, err)
			}
			l.Tipos[nome] = tipo
		}
		p.Linhas = append(p.Linhas, l)
	}
	return p, nil
}
