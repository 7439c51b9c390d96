package models

import (
	"time"

	"github.com/KromaEnergia/api-vendas/internal/calculocomissao"
	"gorm.io/gorm"
)

// FormatoData é o formato de data aceito e devolvido pela API (AAAA-MM-DD).
const FormatoData = "2006-01-02"

// Venda pertence a uma tabela de comissão; o vendedor é alcançado através dela.
type Venda struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	CPFCliente         string            `gorm:"column:cpf_cliente;size:14;not null" json:"cpf_cliente"`
	NomeCliente        string            `gorm:"size:100;not null" json:"nome_cliente"`
	DataVenda          time.Time         `gorm:"type:date;not null" json:"data_venda"`
	ValorVenda         float64           `gorm:"not null" json:"valor_venda"`
	ValorComissao      float64           `gorm:"not null;default:0" json:"valor_comissao"`
	ComissaoPaga       bool              `gorm:"not null;default:false" json:"comissao_paga"`
	IDVendedorComissao uint              `gorm:"column:id_vendedor_comissao;not null;index" json:"id_vendedor_comissao"`
	VendedorComissao   *VendedorComissao `gorm:"foreignKey:IDVendedorComissao" json:"-"`
	UsuarioCadastro    string            `gorm:"size:100" json:"usuario_cadastro"`
}

func (Venda) TableName() string { return "venda" }

// BeforeCreate aplica a data do dia quando a venda chega sem data.
func (v *Venda) BeforeCreate(tx *gorm.DB) error {
	if v.DataVenda.IsZero() {
		v.DataVenda = Hoje()
	}
	v.DataVenda = SomenteData(v.DataVenda)
	return nil
}

// CalcularComissao recalcula ValorComissao a partir da tabela carregada em
// VendedorComissao. Sem tabela carregada o valor atual é mantido.
func (v *Venda) CalcularComissao() float64 {
	if v.VendedorComissao != nil {
		v.ValorComissao = calculocomissao.Calcular(v.ValorVenda, v.VendedorComissao.PorcentagemComissao)
	}
	return v.ValorComissao
}

type VendaDTO struct {
	ID                  uint     `json:"id"`
	CPFCliente          string   `json:"cpf_cliente"`
	NomeCliente         string   `json:"nome_cliente"`
	DataVenda           *string  `json:"data_venda"`
	ValorVenda          float64  `json:"valor_venda"`
	ValorComissao       float64  `json:"valor_comissao"`
	ComissaoPaga        bool     `json:"comissao_paga"`
	IDVendedorComissao  uint     `json:"id_vendedor_comissao"`
	NomeVendedor        *string  `json:"nome_vendedor"`
	NomeTabela          *string  `json:"nome_tabela"`
	PorcentagemComissao *float64 `json:"porcentagem_comissao"`
	UsuarioCadastro     string   `json:"usuario_cadastro"`
}

func (v Venda) DTO() VendaDTO {
	dto := VendaDTO{
		ID:                 v.ID,
		CPFCliente:         v.CPFCliente,
		NomeCliente:        v.NomeCliente,
		ValorVenda:         v.ValorVenda,
		ValorComissao:      v.ValorComissao,
		ComissaoPaga:       v.ComissaoPaga,
		IDVendedorComissao: v.IDVendedorComissao,
		UsuarioCadastro:    v.UsuarioCadastro,
	}
	if !v.DataVenda.IsZero() {
		d := v.DataVenda.Format(FormatoData)
		dto.DataVenda = &d
	}
	if vc := v.VendedorComissao; vc != nil {
		nomeTabela, pct := vc.NomeTabela, vc.PorcentagemComissao
		dto.NomeTabela = &nomeTabela
		dto.PorcentagemComissao = &pct
		if vc.Vendedor != nil {
			nome := vc.Vendedor.NomeVendedor
			dto.NomeVendedor = &nome
		}
	}
	return dto
}

func VendasDTO(vendas []Venda) []VendaDTO {
	out := make([]VendaDTO, 0, len(vendas))
	for _, v := range vendas {
		out = append(out, v.DTO())
	}
	return out
}

// Hoje devolve a data corrente (UTC) sem horário.
func Hoje() time.Time {
	return SomenteData(time.Now().UTC())
}

// SomenteData zera o horário mantendo ano, mês e dia, em UTC.
func SomenteData(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseData interpreta uma data no formato AAAA-MM-DD.
func ParseData(s string) (time.Time, error) {
	t, err := time.Parse(FormatoData, s)
	if err != nil {
		return time.Time{}, err
	}
	return SomenteData(t), nil
}
