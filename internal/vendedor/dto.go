package vendedor

type criarVendedorRequest struct {
	NomeVendedor string `json:"nome_vendedor" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Senha        string `json:"senha"`
	Ativo        *bool  `json:"ativo"`
}

// Campos ausentes no JSON não são alterados.
type atualizarVendedorRequest struct {
	NomeVendedor *string `json:"nome_vendedor"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Ativo        *bool   `json:"ativo"`
}
