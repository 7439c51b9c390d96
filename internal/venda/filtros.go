package venda

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/KromaEnergia/api-vendas/internal/utils"
)

// Filtros restringe a listagem de vendas. Campos nil não filtram.
type Filtros struct {
	DataInicio   *time.Time
	DataFim      *time.Time
	ComissaoPaga *bool
	IDVendedor   *uint
	NomeVendedor string
}

// FiltrosDaQuery lê data_inicio, data_fim, comissao_paga, id_vendedor e
// nome_vendedor. comissao_paga presente vale true só para "true"
// (sem diferenciar maiúsculas); qualquer outro valor filtra as não pagas.
func FiltrosDaQuery(q url.Values) (Filtros, error) {
	var f Filtros

	if s := q.Get("data_inicio"); s != "" {
		d, err := models.ParseData(s)
		if err != nil {
			return f, &utils.ErroValidacao{Mensagem: "data_inicio inválida, use o formato AAAA-MM-DD"}
		}
		f.DataInicio = &d
	}
	if s := q.Get("data_fim"); s != "" {
		d, err := models.ParseData(s)
		if err != nil {
			return f, &utils.ErroValidacao{Mensagem: "data_fim inválida, use o formato AAAA-MM-DD"}
		}
		f.DataFim = &d
	}
	if q.Has("comissao_paga") {
		paga := strings.ToLower(q.Get("comissao_paga")) == "true"
		f.ComissaoPaga = &paga
	}
	if s := q.Get("id_vendedor"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return f, &utils.ErroValidacao{Mensagem: "id_vendedor inválido"}
		}
		v := uint(id)
		f.IDVendedor = &v
	}
	f.NomeVendedor = strings.TrimSpace(q.Get("nome_vendedor"))
	return f, nil
}
