// Package models reúne os modelos gorm compartilhados entre os pacotes de rota.
// Cada entidade guarda apenas a referência ao pai; buscas reversas são consultas
// explícitas nos repositórios.
package models

// Todos lista os modelos na ordem de migração.
func Todos() []interface{} {
	return []interface{}{
		&Vendedor{},
		&VendedorComissao{},
		&Venda{},
	}
}
