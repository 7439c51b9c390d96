package models

// VendedorComissao é uma tabela de comissão nomeada (ex.: "Gold") de um único vendedor.
// O par (vendedor, nome da tabela) identifica a tabela na importação de vendas.
type VendedorComissao struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	IDVendedor          uint      `gorm:"column:id_vendedor;not null;index" json:"id_vendedor"`
	Vendedor            *Vendedor `gorm:"foreignKey:IDVendedor" json:"-"`
	NomeTabela          string    `gorm:"size:100;not null" json:"nome_tabela"`
	PorcentagemComissao float64   `gorm:"not null" json:"porcentagem_comissao"`
}

func (VendedorComissao) TableName() string { return "vendedor_comissao" }

type VendedorComissaoDTO struct {
	ID                  uint    `json:"id"`
	IDVendedor          uint    `json:"id_vendedor"`
	NomeVendedor        *string `json:"nome_vendedor"`
	NomeTabela          string  `json:"nome_tabela"`
	PorcentagemComissao float64 `json:"porcentagem_comissao"`
}

func (c VendedorComissao) DTO() VendedorComissaoDTO {
	dto := VendedorComissaoDTO{
		ID:                  c.ID,
		IDVendedor:          c.IDVendedor,
		NomeTabela:          c.NomeTabela,
		PorcentagemComissao: c.PorcentagemComissao,
	}
	if c.Vendedor != nil {
		nome := c.Vendedor.NomeVendedor
		dto.NomeVendedor = &nome
	}
	return dto
}
