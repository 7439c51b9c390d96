package importacao

import (
	"errors"
	"strconv"
	"time"

	"github.com/KromaEnergia/api-vendas/internal/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	errValorInvalido    = errors.New("Valor da venda inválido")
	errValorNaoPositivo = errors.New("Valor da venda deve ser maior que zero")
	errDataInvalida     = errors.New("Data inválida (use formato AAAA-MM-DD)")
)

// parseValor aceita o valor cru da célula ("1500", "1500.5").
func parseValor(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errValorInvalido
	}
	if !d.IsPositive() {
		return 0, errValorNaoPositivo
	}
	v, _ := d.Float64()
	return v, nil
}

// parseDataVenda aceita texto AAAA-MM-DD ou o número serial de uma célula
// numérica ou de data. Texto nunca é lido como serial.
// Vazio devolve zero, e a venda fica com a data do dia.
func parseDataVenda(s string, tipo excelize.CellType) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := models.ParseData(s); err == nil {
		return d, nil
	}
	switch tipo {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
	default:
		return time.Time{}, errDataInvalida
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial <= 0 {
		return time.Time{}, errDataInvalida
	}
	d, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, errDataInvalida
	}
	return models.SomenteData(d), nil
}
