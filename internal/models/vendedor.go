package models

import (
	"time"

	"github.com/KromaEnergia/api-vendas/internal/utils"
)

// Vendedor é a pessoa que realiza vendas e, com email e senha, acessa o próprio painel.
type Vendedor struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	NomeVendedor string    `gorm:"size:100;not null" json:"nome_vendedor"`
	Email        *string   `gorm:"size:120;uniqueIndex" json:"email"`
	SenhaHash    string    `gorm:"size:128" json:"-"`
	Ativo        bool      `gorm:"not null" json:"ativo"`
	DataCriacao  time.Time `gorm:"autoCreateTime" json:"data_criacao"`
}

func (Vendedor) TableName() string { return "vendedor" }

// DefinirSenha grava o hash bcrypt da nova senha.
func (v *Vendedor) DefinirSenha(senha string) error {
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	v.SenhaHash = hash
	return nil
}

func (v *Vendedor) VerificarSenha(senha string) bool {
	return utils.VerificarSenha(v.SenhaHash, senha)
}

// VendedorPublico é a visão do vendedor devolvida no login e no painel.
type VendedorPublico struct {
	ID           uint      `json:"id"`
	NomeVendedor string    `json:"nome_vendedor"`
	Email        string    `json:"email"`
	Ativo        bool      `json:"ativo"`
	DataCriacao  time.Time `json:"data_criacao"`
}

func (v Vendedor) Publico() VendedorPublico {
	p := VendedorPublico{
		ID:           v.ID,
		NomeVendedor: v.NomeVendedor,
		Ativo:        v.Ativo,
		DataCriacao:  v.DataCriacao,
	}
	if v.Email != nil {
		p.Email = *v.Email
	}
	return p
}

// VendedorDetalhe inclui as tabelas de comissão, buscadas à parte.
type VendedorDetalhe struct {
	VendedorPublico
	Comissoes []VendedorComissaoDTO `json:"comissoes"`
}

func (v Vendedor) Detalhe(tabelas []VendedorComissao) VendedorDetalhe {
	d := VendedorDetalhe{
		VendedorPublico: v.Publico(),
		Comissoes:       make([]VendedorComissaoDTO, 0, len(tabelas)),
	}
	for _, t := range tabelas {
		if t.Vendedor == nil {
			t.Vendedor = &v
		}
		d.Comissoes = append(d.Comissoes, t.DTO())
	}
	return d
}
